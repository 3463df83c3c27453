// Package formlib defines the contract a form library integration fulfils so
// the translators can read its fields and build new ones.
package formlib

import (
	"strings"

	"github.com/goliatone/go-formschema/pkg/model"
)

// Field is one upstream form field. Class is the class or declared type name;
// Library names the integration that owns it.
type Field interface {
	Class() string
	Library() string
}

// NamedField pairs a field with its form-level name.
type NamedField struct {
	Name  string
	Field Field
}

// Form is an ordered collection of named fields from one library.
type Form interface {
	Library() string
	Fields() []NamedField
}

// Library is implemented by each form library integration.
type Library interface {
	Name() string
	// Inspect reports a field's kind, marker, widget, attributes and rules.
	// Unregistered classes fail with model.ErrUnsupportedFieldKind.
	Inspect(field Field) (model.Origin, error)
	// KindOf resolves markers produced by this library only.
	KindOf(marker string) (model.Kind, bool)
	// Build constructs an unbound field from a descriptor.
	Build(desc model.Descriptor, tables *model.Tables) (Field, error)
	NewForm(fields []NamedField) (Form, error)
	FromSpec(spec FieldSpec) (Field, error)
	ToSpec(field Field) (FieldSpec, error)
}

// Marker formats the origin marker for a library class.
func Marker(library, class string) string {
	return library + "." + class
}

// SplitMarker splits an origin marker at its first dot.
func SplitMarker(marker string) (library, class string, ok bool) {
	library, class, ok = strings.Cut(marker, ".")
	if !ok || library == "" || class == "" {
		return "", "", false
	}
	return library, class, true
}

// ClassFromMarker returns the class of marker when it belongs to library.
func ClassFromMarker(library, marker string) (string, bool) {
	lib, class, ok := SplitMarker(marker)
	if !ok || !strings.EqualFold(lib, library) {
		return "", false
	}
	return class, true
}
