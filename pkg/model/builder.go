package model

import (
	internalmodel "github.com/goliatone/go-formschema/internal/model"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// Kinds lists every supported kind.
func Kinds() []Kind {
	return internalmodel.Kinds()
}

// DefaultTables returns the shared built-in tables.
func DefaultTables() *Tables {
	return internalmodel.DefaultTables()
}

// NewTables builds a custom table set. Every kind must have a shape.
func NewTables(keywords []Keyword, types, formats map[string]Kind, shapes map[Kind]Shape) (*Tables, error) {
	return internalmodel.NewTables(keywords, types, formats, shapes)
}

// Describe folds a library Origin into a Descriptor.
func Describe(origin Origin, tables *Tables) (Descriptor, error) {
	return internalmodel.Describe(origin, tables)
}

// Encode renders a Descriptor as a schema fragment.
func Encode(desc Descriptor, tables *Tables) (*schema.Fragment, error) {
	return internalmodel.Encode(desc, tables)
}

// Decode reads a fragment into a Descriptor, resolving markers through
// resolver when it is not nil.
func Decode(frag *schema.Fragment, tables *Tables, resolver MarkerResolver) (Descriptor, error) {
	return internalmodel.Decode(frag, tables, resolver)
}

// DeriveTitle builds a sentence-case title from a field name.
func DeriveTitle(name string) string {
	return internalmodel.DeriveTitle(name)
}

// Error constructors for library integrations.
func NewUnsupportedFieldKind(op, name string) error {
	return internalmodel.NewUnsupportedFieldKind(op, name)
}

func NewUnresolvableSchemaType(op, name string) error {
	return internalmodel.NewUnresolvableSchemaType(op, name)
}

func NewUnknownWidget(op, name string) error {
	return internalmodel.NewUnknownWidget(op, name)
}

func NewInvalidConstraintValue(op, name string, cause error) error {
	return internalmodel.NewInvalidConstraintValue(op, name, cause)
}
