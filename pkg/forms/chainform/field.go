// Package chainform models a form library whose fields are declared by type
// and whose constraints live in an ordered validator chain. Only the label,
// description, default and choices are stored on the field itself.
package chainform

import (
	"fmt"

	"github.com/goliatone/go-formschema/pkg/model"
)

// Type names a declared field type.
type Type string

const (
	BooleanField        Type = "BooleanField"
	StringField         Type = "StringField"
	TextField           Type = "TextField"
	TextAreaField       Type = "TextAreaField"
	PasswordField       Type = "PasswordField"
	HiddenField         Type = "HiddenField"
	DecimalField        Type = "DecimalField"
	FloatField          Type = "FloatField"
	IntegerField        Type = "IntegerField"
	SelectField         Type = "SelectField"
	RadioField          Type = "RadioField"
	SelectMultipleField Type = "SelectMultipleField"
	DateField           Type = "DateField"
	DateTimeField       Type = "DateTimeField"

	// FileField has no schema translation.
	FileField Type = "FileField"
)

type typeInfo struct {
	kind    model.Kind
	widget  Widget
	choices bool
}

var types = map[Type]typeInfo{
	BooleanField:        {kind: model.KindBoolean, widget: CheckboxInput},
	StringField:         {kind: model.KindStringShort, widget: TextInput},
	TextField:           {kind: model.KindStringShort, widget: TextInput},
	TextAreaField:       {kind: model.KindStringLong, widget: TextArea},
	PasswordField:       {kind: model.KindStringShort, widget: PasswordInput},
	HiddenField:         {kind: model.KindStringShort, widget: HiddenInput},
	DecimalField:        {kind: model.KindDecimal, widget: NumberInput},
	FloatField:          {kind: model.KindFloat, widget: NumberInput},
	IntegerField:        {kind: model.KindInteger, widget: NumberInput},
	SelectField:         {kind: model.KindChoiceSingle, widget: Select, choices: true},
	RadioField:          {kind: model.KindChoiceSingle, widget: RadioList, choices: true},
	SelectMultipleField: {kind: model.KindChoiceMultiple, widget: SelectMultiple, choices: true},
	DateField:           {kind: model.KindDate, widget: DateInput},
	DateTimeField:       {kind: model.KindDateTime, widget: DateTimeInput},
	FileField:           {widget: FileInput},
}

// Field is an unbound field declaration.
type Field struct {
	Type        Type
	Label       string
	Description string
	Default     any
	Choices     []any
	Widget      Widget
	Validators  []Validator
}

type Option func(*Field)

func WithDescription(text string) Option {
	return func(f *Field) { f.Description = text }
}

func WithDefault(value any) Option {
	return func(f *Field) { f.Default = value }
}

func WithChoices(choices ...any) Option {
	return func(f *Field) { f.Choices = append([]any{}, choices...) }
}

func WithWidget(widget Widget) Option {
	return func(f *Field) { f.Widget = widget }
}

// WithValidators appends to the validator chain.
func WithValidators(validators ...Validator) Option {
	return func(f *Field) { f.Validators = append(f.Validators, validators...) }
}

// New declares a field of typ with label.
func New(typ Type, label string, options ...Option) (*Field, error) {
	info, ok := types[typ]
	if !ok {
		return nil, fmt.Errorf("chainform: unknown field type %q", typ)
	}
	field := &Field{Type: typ, Label: label, Widget: info.widget}
	for _, opt := range options {
		if opt != nil {
			opt(field)
		}
	}
	if field.Choices != nil && !info.choices {
		return nil, fmt.Errorf("chainform: %s does not take choices", typ)
	}
	if _, ok := widgetCanonical[field.Widget]; !ok && field.Widget != FileInput {
		return nil, fmt.Errorf("chainform: unknown widget %q", field.Widget)
	}
	return field, nil
}

// MustNew panics if the field cannot be declared.
func MustNew(typ Type, label string, options ...Option) *Field {
	field, err := New(typ, label, options...)
	if err != nil {
		panic(err)
	}
	return field
}

func (f *Field) Class() string   { return string(f.Type) }
func (f *Field) Library() string { return Name }

// Attribute exposes the few constraints stored on the field.
func (f *Field) Attribute(name string) (any, bool) {
	switch name {
	case model.AttrLabel:
		return f.Label, f.Label != ""
	case model.AttrHelpText:
		return f.Description, f.Description != ""
	case model.AttrInitial:
		return f.Default, f.Default != nil
	case model.AttrChoices:
		if f.Choices == nil {
			return nil, false
		}
		return append([]any{}, f.Choices...), true
	}
	return nil, false
}
