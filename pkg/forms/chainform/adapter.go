package chainform

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formschema/pkg/formlib"
	"github.com/goliatone/go-formschema/pkg/model"
)

// Name identifies the library in origin markers and registries.
const Name = "chainform"

var kindTypes = map[model.Kind]Type{
	model.KindBoolean:        BooleanField,
	model.KindStringShort:    StringField,
	model.KindStringLong:     TextAreaField,
	model.KindInteger:        IntegerField,
	model.KindDecimal:        DecimalField,
	model.KindFloat:          FloatField,
	model.KindEmail:          StringField,
	model.KindChoiceSingle:   SelectField,
	model.KindChoiceMultiple: SelectMultipleField,
	model.KindIPAddress:      StringField,
	model.KindDate:           DateField,
	model.KindTime:           StringField,
	model.KindDateTime:       DateTimeField,
	model.KindSlug:           StringField,
	model.KindURL:            StringField,
}

// widgetTypes picks a dedicated type when a widget implies one.
var widgetTypes = map[model.Kind]map[Widget]Type{
	model.KindStringShort: {
		TextArea:      TextAreaField,
		PasswordInput: PasswordField,
		HiddenInput:   HiddenField,
	},
	model.KindChoiceSingle: {
		RadioList: RadioField,
	},
}

type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

var _ formlib.Library = (*Adapter)(nil)

func (a *Adapter) Name() string { return Name }

// Inspect reports the declared type and translates the validator chain.
func (a *Adapter) Inspect(field formlib.Field) (model.Origin, error) {
	f, ok := field.(*Field)
	if !ok {
		name := "<nil>"
		if field != nil {
			name = formlib.Marker(field.Library(), field.Class())
		}
		return model.Origin{}, model.NewUnsupportedFieldKind("inspect", name)
	}
	if f == nil {
		return model.Origin{}, model.NewUnsupportedFieldKind("inspect", "<nil>")
	}
	marker := formlib.Marker(Name, string(f.Type))
	info := types[f.Type]
	if info.kind == "" {
		return model.Origin{}, model.NewUnsupportedFieldKind("inspect", marker)
	}
	rules, err := rulesFor(f.Validators)
	if err != nil {
		return model.Origin{}, err
	}

	origin := model.Origin{
		Marker:     marker,
		Kind:       info.kind,
		Attributes: f,
		Rules:      rules,
	}
	if f.Widget != "" && f.Widget != info.widget {
		canonical, ok := widgetCanonical[f.Widget]
		if !ok {
			return model.Origin{}, model.NewUnknownWidget("inspect", string(f.Widget))
		}
		origin.Widget = canonical
	}
	return origin, nil
}

// KindOf resolves chainform markers only.
func (a *Adapter) KindOf(marker string) (model.Kind, bool) {
	name, ok := formlib.ClassFromMarker(Name, marker)
	if !ok {
		return "", false
	}
	info, ok := types[Type(name)]
	if !ok || info.kind == "" {
		return "", false
	}
	return info.kind, true
}

// Build declares a field for desc. Everything beyond label, description,
// default and choices is expressed as validators.
func (a *Adapter) Build(desc model.Descriptor, tables *model.Tables) (formlib.Field, error) {
	if tables == nil {
		tables = model.DefaultTables()
	}
	widget, err := widgetFor(desc)
	if err != nil {
		return nil, err
	}
	typ, err := typeFor(desc, widget)
	if err != nil {
		return nil, err
	}
	info := types[typ]

	options := []Option{WithDescription(desc.Description)}
	if desc.Default != nil {
		options = append(options, WithDefault(desc.Default))
	}
	if desc.Constraints.Choices != nil {
		if !info.choices {
			return nil, model.NewInvalidConstraintValue("build", model.AttrChoices,
				fmt.Errorf("%s does not take choices", typ))
		}
		options = append(options, WithChoices(desc.Constraints.Choices...))
	}
	if widget != "" && widget != info.widget {
		options = append(options, WithWidget(widget))
	}

	implied := tables.Resolution.ImpliedPattern(info.kind)
	var chain []Validator
	for _, rule := range desc.Rules() {
		switch rule.Kind {
		case model.RuleOptional:
			chain = append(chain, Optional{})
		case model.RuleRequired:
			chain = append(chain, DataRequired{})
		case model.RuleEmail:
			chain = append(chain, Email{})
		case model.RuleIPAddress:
			chain = append(chain, IPAddress{IPv4: rule.IPv4, IPv6: rule.IPv6})
		case model.RuleURL:
			chain = append(chain, URL{})
			if rule.Pattern != "" && rule.Pattern != model.URLPattern {
				chain = append(chain, Regexp{Pattern: rule.Pattern})
			}
		case model.RuleLength:
			chain = append(chain, Length{Min: lengthValue(rule.Min), Max: lengthValue(rule.Max)})
		case model.RuleRange:
			chain = append(chain, NumberRange{Min: clonePtr(rule.Min), Max: clonePtr(rule.Max)})
		case model.RulePattern:
			switch rule.Pattern {
			case implied:
			case model.URLPattern:
				chain = append(chain, URL{})
			default:
				chain = append(chain, Regexp{Pattern: rule.Pattern})
			}
		}
	}
	if len(chain) > 0 {
		options = append(options, WithValidators(chain...))
	}

	field, err := New(typ, desc.Title, options...)
	if err != nil {
		return nil, model.NewInvalidConstraintValue("build", formlib.Marker(Name, string(typ)), err)
	}
	return field, nil
}

func typeFor(desc model.Descriptor, widget Widget) (Type, error) {
	if name, ok := formlib.ClassFromMarker(Name, desc.Origin); ok {
		typ := Type(name)
		if info, known := types[typ]; known && info.kind != "" && info.kind == desc.Kind {
			return typ, nil
		}
	}
	if byWidget, ok := widgetTypes[desc.Kind]; ok {
		if typ, ok := byWidget[widget]; ok {
			return typ, nil
		}
	}
	typ, ok := kindTypes[desc.Kind]
	if !ok {
		return "", model.NewUnsupportedFieldKind("build", string(desc.Kind))
	}
	return typ, nil
}

func widgetFor(desc model.Descriptor) (Widget, error) {
	if desc.Widget == "" {
		return "", nil
	}
	widget, ok := canonicalWidget[strings.ToLower(strings.TrimSpace(desc.Widget))]
	if !ok {
		return "", model.NewUnknownWidget("build", desc.Widget)
	}
	return widget, nil
}

func lengthValue(bound *float64) *int {
	if bound == nil {
		return nil
	}
	out := int(*bound)
	return &out
}

func (a *Adapter) NewForm(fields []formlib.NamedField) (formlib.Form, error) {
	form := NewForm()
	for _, entry := range fields {
		field, ok := entry.Field.(*Field)
		if !ok {
			return nil, fmt.Errorf("chainform: field %q is not a chainform field", entry.Name)
		}
		if err := form.Add(entry.Name, field); err != nil {
			return nil, err
		}
	}
	return form, nil
}
