package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// Describe folds what a library reported about a field into a Descriptor.
// Attributes are read first through the keyword table; validator rules only
// fill constraints no attribute supplied.
func Describe(origin Origin, tables *Tables) (Descriptor, error) {
	tables = tablesOrDefault(tables)
	if !origin.Kind.Valid() {
		return Descriptor{}, NewUnsupportedFieldKind("describe", nameOr(origin.Marker, string(origin.Kind)))
	}

	desc := Descriptor{
		Kind:   origin.Kind,
		Origin: origin.Marker,
		Widget: origin.Widget,
	}
	supplied := make(map[string]bool)

	if origin.Attributes != nil {
		for _, kw := range tables.Keywords.Entries() {
			raw, ok := origin.Attributes.Attribute(kw.Attribute)
			if !ok || raw == nil {
				continue
			}
			value, err := kw.toSchema(raw)
			if err != nil {
				return Descriptor{}, err
			}
			if err := desc.setKeyword(kw.Schema, value); err != nil {
				return Descriptor{}, err
			}
			supplied[kw.Schema] = true
		}
		if raw, ok := origin.Attributes.Attribute(AttrProtocol); ok && raw != nil {
			protocol, err := parseProtocol(raw)
			if err != nil {
				return Descriptor{}, err
			}
			desc.Constraints.Protocol = protocol
		}
	}

	if err := foldRules(&desc, origin.Rules, supplied); err != nil {
		return Descriptor{}, err
	}

	if desc.Kind == KindIPAddress {
		if desc.Constraints.Protocol == "" {
			desc.Constraints.Protocol = ProtocolIPv4
		}
	} else {
		desc.Constraints.Protocol = ""
	}

	if err := desc.Validate(); err != nil {
		return Descriptor{}, err
	}
	return desc, nil
}

func foldRules(desc *Descriptor, rules []Rule, supplied map[string]bool) error {
	c := &desc.Constraints
	for _, rule := range rules {
		switch rule.Kind {
		case RuleRange:
			if rule.Min != nil && c.Minimum == nil {
				c.Minimum = clonePtr(rule.Min)
			}
			if rule.Max != nil && c.Maximum == nil {
				c.Maximum = clonePtr(rule.Max)
			}
		case RuleLength:
			lo, err := lengthBound("minLength", rule.Min)
			if err != nil {
				return err
			}
			hi, err := lengthBound("maxLength", rule.Max)
			if err != nil {
				return err
			}
			if lo != nil && c.MinLength == nil {
				c.MinLength = lo
			}
			if hi != nil && c.MaxLength == nil {
				c.MaxLength = hi
			}
		case RuleOptional:
			if !supplied[schema.KeywordOptional] {
				desc.Optional = true
			}
		case RuleRequired:
			if !supplied[schema.KeywordOptional] {
				desc.Optional = false
			}
		case RuleEmail:
			if desc.Kind.IsPlainString() {
				desc.Kind = KindEmail
			}
		case RuleIPAddress:
			if desc.Kind.IsPlainString() {
				desc.Kind = KindIPAddress
			}
			if c.Protocol == "" {
				c.Protocol = protocolFromRule(rule)
			}
		case RulePattern:
			if c.Pattern == "" {
				c.Pattern = rule.Pattern
			}
		case RuleURL:
			if c.Pattern == "" {
				c.Pattern = rule.Pattern
				if c.Pattern == "" {
					c.Pattern = URLPattern
				}
			}
			if desc.Kind.IsPlainString() {
				desc.Kind = KindURL
			}
		default:
			return fmt.Errorf("model: unknown rule kind %q", rule.Kind)
		}
	}
	return nil
}

// protocolFromRule picks ipv6 only for an IPv6-only validator. Dual-stack
// validators resolve to ipv4.
func protocolFromRule(rule Rule) Protocol {
	if rule.IPv6 && !rule.IPv4 {
		return ProtocolIPv6
	}
	return ProtocolIPv4
}

func lengthBound(name string, bound *float64) (*int, error) {
	if bound == nil {
		return nil, nil
	}
	value := *bound
	if value != math.Trunc(value) || math.IsInf(value, 0) {
		return nil, invalidf("describe", name, "%s must be an integer, got %v", name, value)
	}
	return ptr(int(value)), nil
}

func parseProtocol(raw any) (Protocol, error) {
	text, ok := raw.(string)
	if !ok {
		return "", invalidf("describe", AttrProtocol, "protocol must be a string, got %T", raw)
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "both", "ipv4":
		return ProtocolIPv4, nil
	case "ipv6":
		return ProtocolIPv6, nil
	default:
		return "", invalidf("describe", AttrProtocol, "unknown protocol %q", text)
	}
}

func nameOr(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
