package model

import (
	"github.com/goliatone/go-formschema/pkg/schema"
)

// Encode renders a descriptor as a schema fragment. The descriptor is not
// modified and the fragment shares no memory with it.
func Encode(desc Descriptor, tables *Tables) (*schema.Fragment, error) {
	tables = tablesOrDefault(tables)
	shape, ok := tables.Resolution.Shape(desc.Kind)
	if !ok {
		return nil, NewUnsupportedFieldKind("encode", string(desc.Kind))
	}

	desc = desc.Clone()
	if desc.Kind == KindIPAddress && desc.Constraints.Protocol == "" {
		desc.Constraints.Protocol = ProtocolIPv4
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	c := desc.Constraints
	optional := desc.Optional
	frag := &schema.Fragment{
		Type:        shape.Type,
		Title:       desc.Title,
		Description: desc.Description,
		Default:     desc.Default,
		Optional:    &optional,
		MinLength:   c.MinLength,
		MaxLength:   c.MaxLength,
		Minimum:     c.Minimum,
		Maximum:     c.Maximum,
		Pattern:     c.Pattern,
		Format:      shape.Format,
		Enum:        c.Choices,
		Origin:      desc.Origin,
		Widget:      desc.Widget,
	}
	if frag.Pattern == "" {
		frag.Pattern = shape.Pattern
	}
	if desc.Kind == KindIPAddress {
		frag.Format = string(c.Protocol)
	}
	return frag, nil
}
