package model

import (
	"fmt"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// Implied patterns for kinds whose shape is a regular expression. They use
// the RE2 subset so both Go and ECMA engines accept them.
const (
	TimePattern = `^([0-1]?[0-9]|[2][0-3]):([0-5][0-9])$|^([0-1]?[0-9]|[2][0-3]):([0-5][0-9]):([0-5][0-9])$`
	DatePattern = `^[0-9]{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$|^(0[1-9]|1[0-2])/(0[1-9]|[12][0-9]|3[01])/([0-9]{4}|[0-9]{2})$`
	SlugPattern = `^[-a-zA-Z0-9_]+$`
	URLPattern  = `^(https?|ftps?)://(([a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,63}\.?|localhost|[0-9]{1,3}(\.[0-9]{1,3}){3})(:[0-9]{1,5})?(/[^\s]*)?$`
)

// Shape is the schema footprint of a kind.
type Shape struct {
	Type    string
	Format  string
	Pattern string
}

// ResolutionTables map schema types and formats to kinds, and kinds to
// shapes.
type ResolutionTables struct {
	types   map[string]Kind
	formats map[string]Kind
	shapes  map[Kind]Shape
}

// NewResolutionTables copies the supplied maps and checks every kind is known.
func NewResolutionTables(types, formats map[string]Kind, shapes map[Kind]Shape) (*ResolutionTables, error) {
	out := &ResolutionTables{
		types:   make(map[string]Kind, len(types)),
		formats: make(map[string]Kind, len(formats)),
		shapes:  make(map[Kind]Shape, len(shapes)),
	}
	for typ, kind := range types {
		if !kind.Valid() {
			return nil, fmt.Errorf("model: type %q maps to unknown kind %q", typ, kind)
		}
		out.types[typ] = kind
	}
	for format, kind := range formats {
		if !kind.Valid() {
			return nil, fmt.Errorf("model: format %q maps to unknown kind %q", format, kind)
		}
		out.formats[format] = kind
	}
	for kind, shape := range shapes {
		if !kind.Valid() {
			return nil, fmt.Errorf("model: shape for unknown kind %q", kind)
		}
		if shape.Type == "" {
			return nil, fmt.Errorf("model: shape for %q has no type", kind)
		}
		out.shapes[kind] = shape
	}
	return out, nil
}

// KindForType is the default kind of a bare schema type.
func (t *ResolutionTables) KindForType(typ string) (Kind, bool) {
	kind, ok := t.types[typ]
	return kind, ok
}

// KindForFormat overrides the type default for string formats.
func (t *ResolutionTables) KindForFormat(format string) (Kind, bool) {
	kind, ok := t.formats[format]
	return kind, ok
}

// Shape returns the forward shape of kind.
func (t *ResolutionTables) Shape(kind Kind) (Shape, bool) {
	shape, ok := t.shapes[kind]
	return shape, ok
}

// ImpliedPattern is the pattern a kind carries without an explicit one.
func (t *ResolutionTables) ImpliedPattern(kind Kind) string {
	return t.shapes[kind].Pattern
}

func defaultTypes() map[string]Kind {
	return map[string]Kind{
		schema.TypeBoolean: KindBoolean,
		schema.TypeInteger: KindInteger,
		schema.TypeNumber:  KindFloat,
		schema.TypeString:  KindStringShort,
	}
}

func defaultFormats() map[string]Kind {
	return map[string]Kind{
		schema.FormatEmail:    KindEmail,
		schema.FormatDateTime: KindDateTime,
		schema.FormatIPv4:     KindIPAddress,
		schema.FormatIPv6:     KindIPAddress,
	}
}

func defaultShapes() map[Kind]Shape {
	return map[Kind]Shape{
		KindBoolean:        {Type: schema.TypeBoolean},
		KindStringShort:    {Type: schema.TypeString},
		KindStringLong:     {Type: schema.TypeString},
		KindInteger:        {Type: schema.TypeInteger},
		KindDecimal:        {Type: schema.TypeNumber},
		KindFloat:          {Type: schema.TypeNumber},
		KindEmail:          {Type: schema.TypeString, Format: schema.FormatEmail},
		KindChoiceSingle:   {Type: schema.TypeString},
		KindChoiceMultiple: {Type: schema.TypeString},
		// format comes from the descriptor protocol
		KindIPAddress: {Type: schema.TypeString},
		KindDate:      {Type: schema.TypeString, Pattern: DatePattern},
		KindTime:      {Type: schema.TypeString, Pattern: TimePattern},
		KindDateTime:  {Type: schema.TypeString, Format: schema.FormatDateTime},
		KindSlug:      {Type: schema.TypeString, Pattern: SlugPattern},
		KindURL:       {Type: schema.TypeString, Pattern: URLPattern},
	}
}
