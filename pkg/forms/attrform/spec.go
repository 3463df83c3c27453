package attrform

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formschema/pkg/formlib"
)

// FromSpec constructs a field from its declaration. Widgets may be given as
// widget class names or canonical names.
func (a *Adapter) FromSpec(spec formlib.FieldSpec) (formlib.Field, error) {
	var options []Option
	if spec.Label != "" {
		options = append(options, WithLabel(spec.Label))
	}
	if spec.HelpText != "" {
		options = append(options, WithHelpText(spec.HelpText))
	}
	if spec.Initial != nil {
		options = append(options, WithInitial(spec.Initial))
	}
	if spec.Required != nil {
		options = append(options, WithRequired(*spec.Required))
	}
	if spec.MinLength != nil {
		options = append(options, WithMinLength(*spec.MinLength))
	}
	if spec.MaxLength != nil {
		options = append(options, WithMaxLength(*spec.MaxLength))
	}
	if spec.MinValue != nil {
		options = append(options, WithMinValue(*spec.MinValue))
	}
	if spec.MaxValue != nil {
		options = append(options, WithMaxValue(*spec.MaxValue))
	}
	if spec.Choices != nil {
		options = append(options, WithChoices(spec.Choices...))
	}
	if spec.Protocol != "" {
		options = append(options, WithProtocol(spec.Protocol))
	}
	if spec.Widget != "" {
		widget, ok := widgetFromName(strings.TrimSpace(spec.Widget))
		if !ok {
			return nil, fmt.Errorf("attrform: field %q: unknown widget %q", spec.Name, spec.Widget)
		}
		options = append(options, WithWidget(widget))
	}
	if len(spec.Validators) > 0 {
		validators, err := validatorsFromSpec(spec.Validators)
		if err != nil {
			return nil, fmt.Errorf("attrform: field %q: %w", spec.Name, err)
		}
		options = append(options, WithValidators(validators...))
	}

	field, err := New(Class(spec.Class), options...)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", spec.Name, err)
	}
	return field, nil
}

// ToSpec declares an attrform field. Class validators are implied by the
// class and are not listed.
func (a *Adapter) ToSpec(field formlib.Field) (formlib.FieldSpec, error) {
	f, ok := field.(*Field)
	if !ok || f == nil {
		return formlib.FieldSpec{}, fmt.Errorf("attrform: cannot declare field from %s", libraryOf(field))
	}
	required := f.Required
	spec := formlib.FieldSpec{
		Class:     string(f.class),
		Label:     f.Label,
		HelpText:  f.HelpText,
		Initial:   f.Initial,
		Required:  &required,
		MinLength: clonePtr(f.MinLength),
		MaxLength: clonePtr(f.MaxLength),
		MinValue:  clonePtr(f.MinValue),
		MaxValue:  clonePtr(f.MaxValue),
	}
	if f.Choices != nil {
		spec.Choices = append([]any{}, f.Choices...)
	}
	if f.class == GenericIPAddressField && f.protocol != "both" {
		spec.Protocol = f.protocol
	}
	if f.Widget != classes[f.class].widget {
		spec.Widget = string(f.Widget)
	}
	for _, validator := range f.Validators {
		declared, ok := validatorSpec(validator)
		if !ok {
			return formlib.FieldSpec{}, fmt.Errorf("attrform: validator %T cannot be declared", validator)
		}
		spec.Validators = append(spec.Validators, declared)
	}
	return spec, nil
}

func validatorsFromSpec(specs []formlib.ValidatorSpec) ([]Validator, error) {
	var out []Validator
	for _, spec := range specs {
		switch spec.Kind {
		case formlib.ValidatorRegexp:
			out = append(out, RegexValidator{Regex: spec.Pattern})
		case formlib.ValidatorEmail:
			out = append(out, EmailValidator{})
		case formlib.ValidatorURL:
			out = append(out, URLValidator{})
		case formlib.ValidatorIPAddress:
			protocol := "both"
			switch {
			case spec.IPv4 && !spec.IPv6:
				protocol = "ipv4"
			case spec.IPv6 && !spec.IPv4:
				protocol = "ipv6"
			}
			out = append(out, IPValidator{Protocol: protocol})
		case formlib.ValidatorLength:
			if spec.Min != nil {
				out = append(out, MinLengthValidator{Limit: int(*spec.Min)})
			}
			if spec.Max != nil {
				out = append(out, MaxLengthValidator{Limit: int(*spec.Max)})
			}
		case formlib.ValidatorRange:
			if spec.Min != nil {
				out = append(out, MinValueValidator{Limit: *spec.Min})
			}
			if spec.Max != nil {
				out = append(out, MaxValueValidator{Limit: *spec.Max})
			}
		default:
			return nil, fmt.Errorf("validator %q is not supported", spec.Kind)
		}
	}
	return out, nil
}

func validatorSpec(validator Validator) (formlib.ValidatorSpec, bool) {
	switch v := validator.(type) {
	case RegexValidator:
		return formlib.ValidatorSpec{Kind: formlib.ValidatorRegexp, Pattern: v.Regex}, true
	case EmailValidator:
		return formlib.ValidatorSpec{Kind: formlib.ValidatorEmail}, true
	case URLValidator:
		return formlib.ValidatorSpec{Kind: formlib.ValidatorURL}, true
	case IPValidator:
		protocol := strings.ToLower(v.Protocol)
		return formlib.ValidatorSpec{
			Kind: formlib.ValidatorIPAddress,
			IPv4: protocol != "ipv6",
			IPv6: protocol != "ipv4",
		}, true
	case MinLengthValidator:
		limit := float64(v.Limit)
		return formlib.ValidatorSpec{Kind: formlib.ValidatorLength, Min: &limit}, true
	case MaxLengthValidator:
		limit := float64(v.Limit)
		return formlib.ValidatorSpec{Kind: formlib.ValidatorLength, Max: &limit}, true
	case MinValueValidator:
		limit := v.Limit
		return formlib.ValidatorSpec{Kind: formlib.ValidatorRange, Min: &limit}, true
	case MaxValueValidator:
		limit := v.Limit
		return formlib.ValidatorSpec{Kind: formlib.ValidatorRange, Max: &limit}, true
	}
	return formlib.ValidatorSpec{}, false
}

func clonePtr[T any](value *T) *T {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}
