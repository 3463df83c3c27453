package attrform

import (
	"fmt"

	"github.com/goliatone/go-formschema/pkg/formlib"
)

// Form is an ordered set of named fields.
type Form struct {
	fields []formlib.NamedField
	index  map[string]*Field
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{index: make(map[string]*Field)}
}

// Add appends a field. Names must be unique and non-empty.
func (f *Form) Add(name string, field *Field) error {
	if name == "" {
		return fmt.Errorf("attrform: field name is required")
	}
	if field == nil {
		return fmt.Errorf("attrform: field %q is nil", name)
	}
	if _, exists := f.index[name]; exists {
		return fmt.Errorf("attrform: duplicate field %q", name)
	}
	f.index[name] = field
	f.fields = append(f.fields, formlib.NamedField{Name: name, Field: field})
	return nil
}

// MustAdd panics when Add fails. Useful for tests.
func (f *Form) MustAdd(name string, field *Field) *Form {
	if err := f.Add(name, field); err != nil {
		panic(err)
	}
	return f
}

// Field returns the field stored under name.
func (f *Form) Field(name string) (*Field, bool) {
	field, ok := f.index[name]
	return field, ok
}

// Names lists the field names in order.
func (f *Form) Names() []string {
	names := make([]string, 0, len(f.fields))
	for _, entry := range f.fields {
		names = append(names, entry.Name)
	}
	return names
}

// Fields implements formlib.Form.
func (f *Form) Fields() []formlib.NamedField {
	return append([]formlib.NamedField(nil), f.fields...)
}

// Library implements formlib.Form.
func (f *Form) Library() string { return Name }
