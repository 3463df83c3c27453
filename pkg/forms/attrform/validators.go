package attrform

import (
	"strings"

	"github.com/goliatone/go-formschema/pkg/model"
)

// Validator is a field validator. Code is the error code it reports.
type Validator interface {
	Code() string
}

// RegexValidator requires the value to match Regex.
type RegexValidator struct {
	Regex string
}

func (RegexValidator) Code() string { return "invalid" }

// EmailValidator requires a syntactically valid address.
type EmailValidator struct{}

func (EmailValidator) Code() string { return "invalid" }

// URLValidator requires an absolute URL with one of Schemes.
type URLValidator struct {
	Schemes []string
}

func (URLValidator) Code() string { return "invalid" }

// IPValidator requires an address of Protocol: "both", "ipv4" or "ipv6".
type IPValidator struct {
	Protocol string
}

func (IPValidator) Code() string { return "invalid" }

type MinLengthValidator struct{ Limit int }

func (MinLengthValidator) Code() string { return "min_length" }

type MaxLengthValidator struct{ Limit int }

func (MaxLengthValidator) Code() string { return "max_length" }

type MinValueValidator struct{ Limit float64 }

func (MinValueValidator) Code() string { return "min_value" }

type MaxValueValidator struct{ Limit float64 }

func (MaxValueValidator) Code() string { return "max_value" }

func classValidators(class Class, protocol string) []Validator {
	switch class {
	case EmailField:
		return []Validator{EmailValidator{}}
	case SlugField:
		return []Validator{RegexValidator{Regex: model.SlugPattern}}
	case URLField:
		return []Validator{URLValidator{}}
	case IPAddressField:
		return []Validator{IPValidator{Protocol: "ipv4"}}
	case GenericIPAddressField:
		return []Validator{IPValidator{Protocol: protocol}}
	}
	return nil
}

// rulesFor translates validators into neutral rules. Validators with no
// neutral meaning are skipped.
func rulesFor(validators []Validator) []model.Rule {
	var rules []model.Rule
	for _, validator := range validators {
		switch v := validator.(type) {
		case RegexValidator:
			rules = append(rules, model.Rule{Kind: model.RulePattern, Pattern: v.Regex})
		case EmailValidator:
			rules = append(rules, model.Rule{Kind: model.RuleEmail})
		case URLValidator:
			rules = append(rules, model.Rule{Kind: model.RuleURL})
		case IPValidator:
			protocol := strings.ToLower(v.Protocol)
			rules = append(rules, model.Rule{
				Kind: model.RuleIPAddress,
				IPv4: protocol != "ipv6",
				IPv6: protocol != "ipv4",
			})
		case MinLengthValidator:
			limit := float64(v.Limit)
			rules = append(rules, model.Rule{Kind: model.RuleLength, Min: &limit})
		case MaxLengthValidator:
			limit := float64(v.Limit)
			rules = append(rules, model.Rule{Kind: model.RuleLength, Max: &limit})
		case MinValueValidator:
			limit := v.Limit
			rules = append(rules, model.Rule{Kind: model.RuleRange, Min: &limit})
		case MaxValueValidator:
			limit := v.Limit
			rules = append(rules, model.Rule{Kind: model.RuleRange, Max: &limit})
		}
	}
	return rules
}
