package model

import (
	"math"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// MarkerResolver reports the kind behind an origin marker. A destination
// library resolves only its own markers.
type MarkerResolver interface {
	KindOf(marker string) (Kind, bool)
}

// Decode reads a fragment into a Descriptor. The kind comes from, in order,
// a marker the resolver knows, an enum, a string format, then the type.
func Decode(frag *schema.Fragment, tables *Tables, resolver MarkerResolver) (Descriptor, error) {
	tables = tablesOrDefault(tables)
	if frag == nil {
		return Descriptor{}, NewUnresolvableSchemaType("decode", "<nil>")
	}
	frag = frag.Clone()

	kind, err := resolveKind(frag, tables, resolver)
	if err != nil {
		return Descriptor{}, err
	}

	desc := Descriptor{
		Kind:        kind,
		Title:       frag.Title,
		Description: frag.Description,
		Default:     frag.Default,
		Optional:    frag.IsOptional(),
		Origin:      frag.Origin,
		Widget:      frag.Widget,
		Constraints: Constraints{
			MinLength: frag.MinLength,
			MaxLength: frag.MaxLength,
			Minimum:   frag.Minimum,
			Maximum:   frag.Maximum,
			Pattern:   frag.Pattern,
			Choices:   frag.Enum,
		},
	}
	if kind == KindIPAddress {
		desc.Constraints.Protocol = ProtocolIPv4
		if frag.Format == schema.FormatIPv6 {
			desc.Constraints.Protocol = ProtocolIPv6
		}
	}
	if kind == KindInteger {
		desc.Default = wholeNumber(desc.Default)
	}

	if err := desc.Validate(); err != nil {
		return Descriptor{}, err
	}
	return desc, nil
}

func resolveKind(frag *schema.Fragment, tables *Tables, resolver MarkerResolver) (Kind, error) {
	inferred, inferredOK := inferKind(frag, tables)
	if frag.Origin != "" && resolver != nil {
		if kind, ok := resolver.KindOf(frag.Origin); ok {
			if kind.IsPlainString() && inferredOK && formatRefines(frag, tables) {
				return inferred, nil
			}
			return kind, nil
		}
	}
	if !inferredOK {
		return "", NewUnresolvableSchemaType("decode", nameOr(frag.Type, frag.Format, "<empty>"))
	}
	return inferred, nil
}

func inferKind(frag *schema.Fragment, tables *Tables) (Kind, bool) {
	if len(frag.Enum) > 0 {
		return KindChoiceSingle, true
	}
	if frag.Type == schema.TypeString && frag.Format != "" {
		if kind, ok := tables.Resolution.KindForFormat(frag.Format); ok {
			return kind, true
		}
	}
	if frag.Type == "" {
		return "", false
	}
	return tables.Resolution.KindForType(frag.Type)
}

func formatRefines(frag *schema.Fragment, tables *Tables) bool {
	if frag.Type != schema.TypeString || frag.Format == "" {
		return false
	}
	_, ok := tables.Resolution.KindForFormat(frag.Format)
	return ok
}

// wholeNumber turns whole floats decoded from JSON back into ints.
func wholeNumber(value any) any {
	f, ok := value.(float64)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return value
	}
	return int(f)
}
