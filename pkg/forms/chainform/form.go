package chainform

import (
	"fmt"

	"github.com/goliatone/go-formschema/pkg/formlib"
)

// Form is an ordered field declaration list.
type Form struct {
	fields []formlib.NamedField
	index  map[string]*Field
}

func NewForm() *Form {
	return &Form{index: make(map[string]*Field)}
}

// Add appends a named field.
func (f *Form) Add(name string, field *Field) error {
	switch {
	case name == "":
		return fmt.Errorf("chainform: field name is required")
	case field == nil:
		return fmt.Errorf("chainform: field %q is nil", name)
	}
	if _, exists := f.index[name]; exists {
		return fmt.Errorf("chainform: duplicate field %q", name)
	}
	f.index[name] = field
	f.fields = append(f.fields, formlib.NamedField{Name: name, Field: field})
	return nil
}

func (f *Form) Field(name string) (*Field, bool) {
	field, ok := f.index[name]
	return field, ok
}

func (f *Form) Fields() []formlib.NamedField {
	return append([]formlib.NamedField(nil), f.fields...)
}

func (f *Form) Library() string { return Name }
