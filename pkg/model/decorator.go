package model

import "github.com/goliatone/go-formschema/pkg/schema"

// Decorator adjusts a fragment after it has been encoded. name is the
// property name the fragment will be stored under, empty for single fields.
type Decorator interface {
	Decorate(name string, frag *schema.Fragment) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(name string, frag *schema.Fragment) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(name string, frag *schema.Fragment) error {
	return fn(name, frag)
}
