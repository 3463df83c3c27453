package model

import (
	"fmt"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// Upstream attribute names understood by the keyword table.
const (
	AttrLabel     = "label"
	AttrHelpText  = "help_text"
	AttrInitial   = "initial"
	AttrRequired  = "required"
	AttrMaxLength = "max_length"
	AttrMinLength = "min_length"
	AttrMinValue  = "min_value"
	AttrMaxValue  = "max_value"
	AttrChoices   = "choices"
	// AttrProtocol is not a keyword. Libraries that store an address family
	// on the field expose it under this name.
	AttrProtocol = "protocol"
)

// Keyword pairs an upstream attribute with its schema keyword. Negate marks
// boolean pairs whose meaning is inverted between the two sides.
type Keyword struct {
	Attribute string
	Schema    string
	Negate    bool
}

// toSchema converts an attribute value into its keyword value.
func (k Keyword) toSchema(value any) (any, error) {
	if !k.Negate {
		return value, nil
	}
	flag, ok := value.(bool)
	if !ok {
		return nil, invalidf("describe", k.Attribute, "%s must be a boolean, got %T", k.Attribute, value)
	}
	return !flag, nil
}

// toAttribute converts a keyword value back into its attribute value.
func (k Keyword) toAttribute(value any) any {
	if flag, ok := value.(bool); ok && k.Negate {
		return !flag
	}
	return value
}

// KeywordTable is the immutable attribute/keyword mapping.
type KeywordTable struct {
	entries     []Keyword
	byAttribute map[string]Keyword
	byKeyword   map[string]Keyword
}

// NewKeywordTable validates entries and indexes them both ways.
func NewKeywordTable(entries ...Keyword) (*KeywordTable, error) {
	table := &KeywordTable{
		entries:     make([]Keyword, 0, len(entries)),
		byAttribute: make(map[string]Keyword, len(entries)),
		byKeyword:   make(map[string]Keyword, len(entries)),
	}
	for _, entry := range entries {
		if entry.Attribute == "" || entry.Schema == "" {
			return nil, fmt.Errorf("model: keyword entry %+v is incomplete", entry)
		}
		if _, exists := table.byAttribute[entry.Attribute]; exists {
			return nil, fmt.Errorf("model: attribute %q mapped twice", entry.Attribute)
		}
		if _, exists := table.byKeyword[entry.Schema]; exists {
			return nil, fmt.Errorf("model: keyword %q mapped twice", entry.Schema)
		}
		table.entries = append(table.entries, entry)
		table.byAttribute[entry.Attribute] = entry
		table.byKeyword[entry.Schema] = entry
	}
	return table, nil
}

// ByAttribute looks up the entry for an upstream attribute.
func (t *KeywordTable) ByAttribute(name string) (Keyword, bool) {
	entry, ok := t.byAttribute[name]
	return entry, ok
}

// ByKeyword looks up the entry for a schema keyword.
func (t *KeywordTable) ByKeyword(name string) (Keyword, bool) {
	entry, ok := t.byKeyword[name]
	return entry, ok
}

// Entries returns the entries in declaration order.
func (t *KeywordTable) Entries() []Keyword {
	return append([]Keyword(nil), t.entries...)
}

func defaultKeywords() []Keyword {
	return []Keyword{
		{Attribute: AttrLabel, Schema: schema.KeywordTitle},
		{Attribute: AttrHelpText, Schema: schema.KeywordDescription},
		{Attribute: AttrInitial, Schema: schema.KeywordDefault},
		{Attribute: AttrRequired, Schema: schema.KeywordOptional, Negate: true},
		{Attribute: AttrMaxLength, Schema: schema.KeywordMaxLength},
		{Attribute: AttrMinLength, Schema: schema.KeywordMinLength},
		{Attribute: AttrMinValue, Schema: schema.KeywordMinimum},
		{Attribute: AttrMaxValue, Schema: schema.KeywordMaximum},
		{Attribute: AttrChoices, Schema: schema.KeywordEnum},
	}
}

// keyword reads the descriptor value stored under a schema keyword. Unset
// values report false; optional is always set.
func (d Descriptor) keyword(name string) (any, bool) {
	c := d.Constraints
	switch name {
	case schema.KeywordTitle:
		return d.Title, d.Title != ""
	case schema.KeywordDescription:
		return d.Description, d.Description != ""
	case schema.KeywordDefault:
		return d.Default, d.Default != nil
	case schema.KeywordOptional:
		return d.Optional, true
	case schema.KeywordMaxLength:
		if c.MaxLength == nil {
			return nil, false
		}
		return *c.MaxLength, true
	case schema.KeywordMinLength:
		if c.MinLength == nil {
			return nil, false
		}
		return *c.MinLength, true
	case schema.KeywordMinimum:
		if c.Minimum == nil {
			return nil, false
		}
		return *c.Minimum, true
	case schema.KeywordMaximum:
		if c.Maximum == nil {
			return nil, false
		}
		return *c.Maximum, true
	case schema.KeywordEnum:
		if c.Choices == nil {
			return nil, false
		}
		return append([]any{}, c.Choices...), true
	}
	return nil, false
}

// setKeyword stores an attribute-sourced value under a schema keyword,
// checking its shape.
func (d *Descriptor) setKeyword(name string, value any) error {
	const op = "describe"
	switch name {
	case schema.KeywordTitle:
		text, ok := value.(string)
		if !ok {
			return invalidf(op, name, "title must be a string, got %T", value)
		}
		d.Title = text
	case schema.KeywordDescription:
		text, ok := value.(string)
		if !ok {
			return invalidf(op, name, "description must be a string, got %T", value)
		}
		d.Description = text
	case schema.KeywordDefault:
		d.Default = value
	case schema.KeywordOptional:
		flag, ok := value.(bool)
		if !ok {
			return invalidf(op, name, "optional must be a boolean, got %T", value)
		}
		d.Optional = flag
	case schema.KeywordMaxLength, schema.KeywordMinLength:
		n, ok := schema.AsInt(value)
		if !ok {
			return invalidf(op, name, "%s must be an integer, got %v", name, value)
		}
		if name == schema.KeywordMaxLength {
			d.Constraints.MaxLength = &n
		} else {
			d.Constraints.MinLength = &n
		}
	case schema.KeywordMinimum, schema.KeywordMaximum:
		n, ok := schema.AsFloat(value)
		if !ok {
			return invalidf(op, name, "%s must be a number, got %v", name, value)
		}
		if name == schema.KeywordMinimum {
			d.Constraints.Minimum = &n
		} else {
			d.Constraints.Maximum = &n
		}
	case schema.KeywordEnum:
		list, ok := value.([]any)
		if !ok {
			return invalidf(op, name, "enum must be a list, got %T", value)
		}
		d.Constraints.Choices = append([]any{}, list...)
	default:
		return fmt.Errorf("model: keyword %q has no descriptor slot", name)
	}
	return nil
}
