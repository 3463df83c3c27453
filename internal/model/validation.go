package model

import (
	"math"
	"regexp"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// Validate checks the descriptor constraints for internal consistency.
func (d Descriptor) Validate() error {
	const op = "validate"
	if !d.Kind.Valid() {
		return NewUnsupportedFieldKind(op, string(d.Kind))
	}

	c := d.Constraints
	if c.MinLength != nil && *c.MinLength < 0 {
		return invalidf(op, schema.KeywordMinLength, "minLength must not be negative, got %d", *c.MinLength)
	}
	if c.MaxLength != nil && *c.MaxLength < 0 {
		return invalidf(op, schema.KeywordMaxLength, "maxLength must not be negative, got %d", *c.MaxLength)
	}
	if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
		return invalidf(op, schema.KeywordMinLength, "minLength %d exceeds maxLength %d", *c.MinLength, *c.MaxLength)
	}
	if err := checkFinite(op, schema.KeywordMinimum, c.Minimum); err != nil {
		return err
	}
	if err := checkFinite(op, schema.KeywordMaximum, c.Maximum); err != nil {
		return err
	}
	if c.Minimum != nil && c.Maximum != nil && *c.Minimum > *c.Maximum {
		return invalidf(op, schema.KeywordMinimum, "minimum %v exceeds maximum %v", *c.Minimum, *c.Maximum)
	}
	if c.Pattern != "" {
		if _, err := regexp.Compile(c.Pattern); err != nil {
			return NewInvalidConstraintValue(op, schema.KeywordPattern, err)
		}
	}
	switch c.Protocol {
	case "", ProtocolIPv4, ProtocolIPv6:
	default:
		return invalidf(op, AttrProtocol, "unknown protocol %q", c.Protocol)
	}
	if d.Kind == KindIPAddress && c.Protocol == "" {
		return invalidf(op, AttrProtocol, "ip-address requires a protocol")
	}
	return nil
}

func checkFinite(op, name string, value *float64) error {
	if value == nil {
		return nil
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return invalidf(op, name, "%s must be finite", name)
	}
	return nil
}
