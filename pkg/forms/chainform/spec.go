package chainform

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formschema/pkg/formlib"
)

// FromSpec declares a field. Bounds and required given as members are
// folded into the validator chain ahead of the declared validators.
func (a *Adapter) FromSpec(spec formlib.FieldSpec) (formlib.Field, error) {
	options := []Option{WithDescription(spec.HelpText)}
	if spec.Initial != nil {
		options = append(options, WithDefault(spec.Initial))
	}
	if spec.Choices != nil {
		options = append(options, WithChoices(spec.Choices...))
	}
	if spec.Widget != "" {
		widget, ok := widgetFromName(strings.TrimSpace(spec.Widget))
		if !ok {
			return nil, fmt.Errorf("chainform: field %q: unknown widget %q", spec.Name, spec.Widget)
		}
		options = append(options, WithWidget(widget))
	}

	var chain []Validator
	if spec.Required != nil {
		if *spec.Required {
			chain = append(chain, DataRequired{})
		} else {
			chain = append(chain, Optional{})
		}
	}
	if spec.MinLength != nil || spec.MaxLength != nil {
		chain = append(chain, Length{Min: clonePtr(spec.MinLength), Max: clonePtr(spec.MaxLength)})
	}
	if spec.MinValue != nil || spec.MaxValue != nil {
		chain = append(chain, NumberRange{Min: clonePtr(spec.MinValue), Max: clonePtr(spec.MaxValue)})
	}
	switch strings.ToLower(spec.Protocol) {
	case "":
	case "ipv4":
		chain = append(chain, IPAddress{IPv4: true})
	case "ipv6":
		chain = append(chain, IPAddress{IPv6: true})
	case "both":
		chain = append(chain, IPAddress{IPv4: true, IPv6: true})
	default:
		return nil, fmt.Errorf("chainform: field %q: unknown protocol %q", spec.Name, spec.Protocol)
	}
	for _, declared := range spec.Validators {
		validator, err := validatorFromSpec(declared)
		if err != nil {
			return nil, fmt.Errorf("chainform: field %q: %w", spec.Name, err)
		}
		chain = append(chain, validator)
	}
	if len(chain) > 0 {
		options = append(options, WithValidators(chain...))
	}

	field, err := New(Type(spec.Class), spec.Label, options...)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", spec.Name, err)
	}
	return field, nil
}

// ToSpec declares a chainform field with its full validator chain.
func (a *Adapter) ToSpec(field formlib.Field) (formlib.FieldSpec, error) {
	f, ok := field.(*Field)
	if !ok || f == nil {
		return formlib.FieldSpec{}, fmt.Errorf("chainform: cannot declare a non-chainform field")
	}
	spec := formlib.FieldSpec{
		Class:    string(f.Type),
		Label:    f.Label,
		HelpText: f.Description,
		Initial:  f.Default,
	}
	if f.Choices != nil {
		spec.Choices = append([]any{}, f.Choices...)
	}
	if f.Widget != types[f.Type].widget {
		spec.Widget = string(f.Widget)
	}
	for _, validator := range f.Validators {
		declared, ok := validatorSpec(validator)
		if !ok {
			return formlib.FieldSpec{}, fmt.Errorf("chainform: validator %s cannot be declared", validator)
		}
		spec.Validators = append(spec.Validators, declared)
	}
	return spec, nil
}

func validatorFromSpec(spec formlib.ValidatorSpec) (Validator, error) {
	switch spec.Kind {
	case formlib.ValidatorOptional:
		return Optional{}, nil
	case formlib.ValidatorRequired:
		return DataRequired{}, nil
	case formlib.ValidatorLength:
		return Length{Min: lengthValue(spec.Min), Max: lengthValue(spec.Max)}, nil
	case formlib.ValidatorRange:
		return NumberRange{Min: clonePtr(spec.Min), Max: clonePtr(spec.Max)}, nil
	case formlib.ValidatorEmail:
		return Email{}, nil
	case formlib.ValidatorIPAddress:
		return IPAddress{IPv4: spec.IPv4, IPv6: spec.IPv6}, nil
	case formlib.ValidatorRegexp:
		return Regexp{Pattern: spec.Pattern}, nil
	case formlib.ValidatorURL:
		return URL{}, nil
	}
	return nil, fmt.Errorf("validator %q is not supported", spec.Kind)
}

func validatorSpec(validator Validator) (formlib.ValidatorSpec, bool) {
	switch v := validator.(type) {
	case Optional:
		return formlib.ValidatorSpec{Kind: formlib.ValidatorOptional}, true
	case DataRequired, InputRequired:
		return formlib.ValidatorSpec{Kind: formlib.ValidatorRequired}, true
	case Length:
		return formlib.ValidatorSpec{Kind: formlib.ValidatorLength, Min: boundOf(v.Min), Max: boundOf(v.Max)}, true
	case NumberRange:
		return formlib.ValidatorSpec{Kind: formlib.ValidatorRange, Min: clonePtr(v.Min), Max: clonePtr(v.Max)}, true
	case Email:
		return formlib.ValidatorSpec{Kind: formlib.ValidatorEmail}, true
	case IPAddress:
		return formlib.ValidatorSpec{Kind: formlib.ValidatorIPAddress, IPv4: v.IPv4, IPv6: v.IPv6}, true
	case Regexp:
		return formlib.ValidatorSpec{Kind: formlib.ValidatorRegexp, Pattern: v.Pattern}, true
	case URL:
		return formlib.ValidatorSpec{Kind: formlib.ValidatorURL}, true
	}
	return formlib.ValidatorSpec{}, false
}

func boundOf(value *int) *float64 {
	if value == nil {
		return nil
	}
	out := float64(*value)
	return &out
}
