// Package attrform models a form library whose fields are dispatched by
// class and carry their constraints as attributes (label, help_text,
// initial, required, max_length, min_value, choices, ...). Class-level
// validators back the few constraints that are not attributes.
package attrform

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formschema/pkg/model"
)

// Class names a field class.
type Class string

const (
	BooleanField          Class = "BooleanField"
	CharField             Class = "CharField"
	EmailField            Class = "EmailField"
	DecimalField          Class = "DecimalField"
	FloatField            Class = "FloatField"
	IntegerField          Class = "IntegerField"
	ChoiceField           Class = "ChoiceField"
	MultipleChoiceField   Class = "MultipleChoiceField"
	IPAddressField        Class = "IPAddressField"
	GenericIPAddressField Class = "GenericIPAddressField"
	DateField             Class = "DateField"
	TimeField             Class = "TimeField"
	DateTimeField         Class = "DateTimeField"
	SlugField             Class = "SlugField"
	URLField              Class = "URLField"

	// Classes the library offers that have no schema translation.
	FileField        Class = "FileField"
	ImageField       Class = "ImageField"
	ModelChoiceField Class = "ModelChoiceField"
)

type classInfo struct {
	// kind is empty for classes with no translation.
	kind    model.Kind
	widget  Widget
	lengths bool
	values  bool
	choices bool
}

var classes = map[Class]classInfo{
	BooleanField:          {kind: model.KindBoolean, widget: CheckboxInput},
	CharField:             {kind: model.KindStringShort, widget: TextInput, lengths: true},
	EmailField:            {kind: model.KindEmail, widget: EmailInput, lengths: true},
	DecimalField:          {kind: model.KindDecimal, widget: NumberInput, values: true},
	FloatField:            {kind: model.KindFloat, widget: NumberInput, values: true},
	IntegerField:          {kind: model.KindInteger, widget: NumberInput, values: true},
	ChoiceField:           {kind: model.KindChoiceSingle, widget: Select, choices: true},
	MultipleChoiceField:   {kind: model.KindChoiceMultiple, widget: SelectMultiple, choices: true},
	IPAddressField:        {kind: model.KindIPAddress, widget: TextInput},
	GenericIPAddressField: {kind: model.KindIPAddress, widget: TextInput},
	DateField:             {kind: model.KindDate, widget: DateInput},
	TimeField:             {kind: model.KindTime, widget: TimeInput},
	DateTimeField:         {kind: model.KindDateTime, widget: DateTimeInput},
	SlugField:             {kind: model.KindSlug, widget: TextInput, lengths: true},
	URLField:              {kind: model.KindURL, widget: URLInput, lengths: true},
	FileField:             {widget: FileInput},
	ImageField:            {widget: FileInput},
	ModelChoiceField:      {widget: Select},
}

// Field is an unbound field of one class.
type Field struct {
	Label     string
	HelpText  string
	Initial   any
	Required  bool
	MaxLength *int
	MinLength *int
	MinValue  *float64
	MaxValue  *float64
	Choices   []any
	Widget    Widget
	// Validators are the validators added on top of the class validators.
	Validators []Validator

	class    Class
	protocol string
}

// Option configures a Field during construction.
type Option func(*Field)

func WithLabel(label string) Option {
	return func(f *Field) { f.Label = label }
}

func WithHelpText(text string) Option {
	return func(f *Field) { f.HelpText = text }
}

func WithInitial(value any) Option {
	return func(f *Field) { f.Initial = value }
}

// WithRequired overrides the default required=true.
func WithRequired(required bool) Option {
	return func(f *Field) { f.Required = required }
}

func WithMaxLength(n int) Option {
	return func(f *Field) { f.MaxLength = &n }
}

func WithMinLength(n int) Option {
	return func(f *Field) { f.MinLength = &n }
}

func WithMinValue(v float64) Option {
	return func(f *Field) { f.MinValue = &v }
}

func WithMaxValue(v float64) Option {
	return func(f *Field) { f.MaxValue = &v }
}

// WithChoices sets the ordered choice values.
func WithChoices(choices ...any) Option {
	return func(f *Field) { f.Choices = append([]any{}, choices...) }
}

// WithProtocol sets the address family of a GenericIPAddressField: "both",
// "ipv4" or "ipv6".
func WithProtocol(protocol string) Option {
	return func(f *Field) { f.protocol = protocol }
}

func WithWidget(widget Widget) Option {
	return func(f *Field) { f.Widget = widget }
}

func WithValidators(validators ...Validator) Option {
	return func(f *Field) { f.Validators = append(f.Validators, validators...) }
}

// New constructs a field of class. Fields are required by default and use
// the class widget unless an option says otherwise.
func New(class Class, options ...Option) (*Field, error) {
	info, ok := classes[class]
	if !ok {
		return nil, fmt.Errorf("attrform: unknown field class %q", class)
	}
	field := &Field{class: class, Required: true, Widget: info.widget}
	for _, opt := range options {
		if opt != nil {
			opt(field)
		}
	}

	if !info.lengths && (field.MaxLength != nil || field.MinLength != nil) {
		return nil, fmt.Errorf("attrform: %s does not accept max_length or min_length", class)
	}
	if !info.values && (field.MinValue != nil || field.MaxValue != nil) {
		return nil, fmt.Errorf("attrform: %s does not accept min_value or max_value", class)
	}
	if !info.choices && field.Choices != nil {
		return nil, fmt.Errorf("attrform: %s does not accept choices", class)
	}
	if _, ok := widgetCanonical[field.Widget]; !ok && field.Widget != FileInput {
		return nil, fmt.Errorf("attrform: unknown widget %q", field.Widget)
	}

	switch class {
	case GenericIPAddressField:
		protocol := strings.ToLower(strings.TrimSpace(field.protocol))
		switch protocol {
		case "":
			protocol = "both"
		case "both", "ipv4", "ipv6":
		default:
			return nil, fmt.Errorf("attrform: unknown protocol %q", field.protocol)
		}
		field.protocol = protocol
	default:
		if field.protocol != "" {
			return nil, fmt.Errorf("attrform: %s does not accept protocol", class)
		}
	}
	return field, nil
}

// MustNew panics if the field cannot be constructed. Useful for tests.
func MustNew(class Class, options ...Option) *Field {
	field, err := New(class, options...)
	if err != nil {
		panic(err)
	}
	return field
}

// Class implements formlib.Field.
func (f *Field) Class() string { return string(f.class) }

// Library implements formlib.Field.
func (f *Field) Library() string { return Name }

// Protocol returns the address family of a GenericIPAddressField.
func (f *Field) Protocol() string { return f.protocol }

// AllValidators returns the class validators followed by the extra ones.
func (f *Field) AllValidators() []Validator {
	out := classValidators(f.class, f.protocol)
	return append(out, f.Validators...)
}

// Attribute implements model.Attributes. The address family is deliberately
// not an attribute; it is only visible through the class validators.
func (f *Field) Attribute(name string) (any, bool) {
	switch name {
	case model.AttrLabel:
		return f.Label, f.Label != ""
	case model.AttrHelpText:
		return f.HelpText, f.HelpText != ""
	case model.AttrInitial:
		return f.Initial, f.Initial != nil
	case model.AttrRequired:
		return f.Required, true
	case model.AttrMaxLength:
		if f.MaxLength == nil {
			return nil, false
		}
		return *f.MaxLength, true
	case model.AttrMinLength:
		if f.MinLength == nil {
			return nil, false
		}
		return *f.MinLength, true
	case model.AttrMinValue:
		if f.MinValue == nil {
			return nil, false
		}
		return *f.MinValue, true
	case model.AttrMaxValue:
		if f.MaxValue == nil {
			return nil, false
		}
		return *f.MaxValue, true
	case model.AttrChoices:
		if f.Choices == nil {
			return nil, false
		}
		return append([]any{}, f.Choices...), true
	}
	return nil, false
}
