package chainform

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-formschema/pkg/model"
)

// Validator is one link of a field's validator chain.
type Validator interface {
	String() string
}

// Optional lets an empty value stop the chain.
type Optional struct{}

func (Optional) String() string { return "Optional" }

// DataRequired rejects falsy values.
type DataRequired struct{}

func (DataRequired) String() string { return "DataRequired" }

// InputRequired rejects missing raw input.
type InputRequired struct{}

func (InputRequired) String() string { return "InputRequired" }

// Length bounds the character count. Nil bounds are open.
type Length struct {
	Min *int
	Max *int
}

func (l Length) String() string {
	return fmt.Sprintf("Length(min=%s, max=%s)", boundString(l.Min), boundString(l.Max))
}

func boundString(bound *int) string {
	if bound == nil {
		return "-"
	}
	return strconv.Itoa(*bound)
}

// NumberRange bounds a numeric value. Nil bounds are open.
type NumberRange struct {
	Min *float64
	Max *float64
}

func (NumberRange) String() string { return "NumberRange" }

type Email struct{}

func (Email) String() string { return "Email" }

// IPAddress accepts the enabled address families.
type IPAddress struct {
	IPv4 bool
	IPv6 bool
}

func (a IPAddress) String() string { return fmt.Sprintf("IPAddress(ipv4=%t, ipv6=%t)", a.IPv4, a.IPv6) }

type Regexp struct {
	Pattern string
}

func (r Regexp) String() string { return fmt.Sprintf("Regexp(%q)", r.Pattern) }

type URL struct {
	RequireTLD bool
}

func (URL) String() string { return "URL" }

// rulesFor translates the chain into neutral rules. Unknown validators are
// skipped.
func rulesFor(validators []Validator) ([]model.Rule, error) {
	var rules []model.Rule
	for _, validator := range validators {
		switch v := validator.(type) {
		case Optional:
			rules = append(rules, model.Rule{Kind: model.RuleOptional})
		case DataRequired, InputRequired:
			rules = append(rules, model.Rule{Kind: model.RuleRequired})
		case Length:
			lo, err := lengthBound("min", v.Min)
			if err != nil {
				return nil, err
			}
			hi, err := lengthBound("max", v.Max)
			if err != nil {
				return nil, err
			}
			rules = append(rules, model.Rule{Kind: model.RuleLength, Min: lo, Max: hi})
		case NumberRange:
			rules = append(rules, model.Rule{Kind: model.RuleRange, Min: clonePtr(v.Min), Max: clonePtr(v.Max)})
		case Email:
			rules = append(rules, model.Rule{Kind: model.RuleEmail})
		case IPAddress:
			rules = append(rules, model.Rule{Kind: model.RuleIPAddress, IPv4: v.IPv4, IPv6: v.IPv6})
		case Regexp:
			rules = append(rules, model.Rule{Kind: model.RulePattern, Pattern: v.Pattern})
		case URL:
			rules = append(rules, model.Rule{Kind: model.RuleURL})
		}
	}
	return rules, nil
}

func lengthBound(name string, value *int) (*float64, error) {
	if value == nil {
		return nil, nil
	}
	if *value < 0 {
		return nil, model.NewInvalidConstraintValue("inspect", "length",
			fmt.Errorf("length %s must not be negative, got %d", name, *value))
	}
	out := float64(*value)
	return &out, nil
}

func clonePtr[T any](value *T) *T {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}
