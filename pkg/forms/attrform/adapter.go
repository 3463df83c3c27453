package attrform

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formschema/pkg/formlib"
	"github.com/goliatone/go-formschema/pkg/model"
)

// Name identifies the library in origin markers and registries.
const Name = "attrform"

// kindClasses is the class built for a kind when no usable marker is present.
var kindClasses = map[model.Kind]Class{
	model.KindBoolean:        BooleanField,
	model.KindStringShort:    CharField,
	model.KindStringLong:     CharField,
	model.KindInteger:        IntegerField,
	model.KindDecimal:        DecimalField,
	model.KindFloat:          FloatField,
	model.KindEmail:          EmailField,
	model.KindChoiceSingle:   ChoiceField,
	model.KindChoiceMultiple: MultipleChoiceField,
	model.KindIPAddress:      GenericIPAddressField,
	model.KindDate:           DateField,
	model.KindTime:           TimeField,
	model.KindDateTime:       DateTimeField,
	model.KindSlug:           SlugField,
	model.KindURL:            URLField,
}

// Adapter implements formlib.Library for attrform fields.
type Adapter struct{}

// NewAdapter returns the attrform library integration.
func NewAdapter() *Adapter {
	return &Adapter{}
}

var _ formlib.Library = (*Adapter)(nil)

func (a *Adapter) Name() string { return Name }

// Inspect reports what the field declares. Attributes come straight from
// the field; rules come from its class and extra validators.
func (a *Adapter) Inspect(field formlib.Field) (model.Origin, error) {
	f, ok := field.(*Field)
	if !ok {
		return model.Origin{}, model.NewUnsupportedFieldKind("inspect", classOf(field))
	}
	if f == nil {
		return model.Origin{}, model.NewUnsupportedFieldKind("inspect", "<nil>")
	}
	info := classes[f.class]
	if info.kind == "" {
		return model.Origin{}, model.NewUnsupportedFieldKind("inspect", formlib.Marker(Name, string(f.class)))
	}

	origin := model.Origin{
		Marker:     formlib.Marker(Name, string(f.class)),
		Kind:       info.kind,
		Attributes: f,
		Rules:      rulesFor(f.AllValidators()),
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

// KindOf resolves attrform markers only.
func (a *Adapter) KindOf(marker string) (model.Kind, bool) {
	class, ok := formlib.ClassFromMarker(Name, marker)
	if !ok {
		return "", false
	}
	info, ok := classes[Class(class)]
	if !ok || info.kind == "" {
		return "", false
	}
	return info.kind, true
}

// Build constructs an unbound field from desc. Bounds the chosen class
// cannot hold as attributes become validators.
func (a *Adapter) Build(desc model.Descriptor, tables *model.Tables) (formlib.Field, error) {
	if tables == nil {
		tables = model.DefaultTables()
	}
	class, err := a.classFor(desc)
	if err != nil {
		return nil, err
	}
	info := classes[class]
	kwargs := desc.Kwargs(tables)

	var options []Option
	var extra []Validator
	if label, ok := kwargs[model.AttrLabel].(string); ok {
		options = append(options, WithLabel(label))
	}
	if text, ok := kwargs[model.AttrHelpText].(string); ok {
		options = append(options, WithHelpText(text))
	}
	if initial, ok := kwargs[model.AttrInitial]; ok {
		options = append(options, WithInitial(initial))
	}
	if required, ok := kwargs[model.AttrRequired].(bool); ok {
		options = append(options, WithRequired(required))
	}

	c := desc.Constraints
	if c.MinLength != nil {
		if info.lengths {
			options = append(options, WithMinLength(*c.MinLength))
		} else {
			extra = append(extra, MinLengthValidator{Limit: *c.MinLength})
		}
	}
	if c.MaxLength != nil {
		if info.lengths {
			options = append(options, WithMaxLength(*c.MaxLength))
		} else {
			extra = append(extra, MaxLengthValidator{Limit: *c.MaxLength})
		}
	}
	if c.Minimum != nil {
		if info.values {
			options = append(options, WithMinValue(*c.Minimum))
		} else {
			extra = append(extra, MinValueValidator{Limit: *c.Minimum})
		}
	}
	if c.Maximum != nil {
		if info.values {
			options = append(options, WithMaxValue(*c.Maximum))
		} else {
			extra = append(extra, MaxValueValidator{Limit: *c.Maximum})
		}
	}
	if c.Choices != nil {
		if !info.choices {
			return nil, model.NewInvalidConstraintValue("build", model.AttrChoices,
				fmt.Errorf("%s does not accept choices", class))
		}
		options = append(options, WithChoices(c.Choices...))
	}
	if class == GenericIPAddressField {
		if protocol, ok := kwargs[model.AttrProtocol].(string); ok {
			options = append(options, WithProtocol(protocol))
		}
	}
	if c.Pattern != "" && c.Pattern != tables.Resolution.ImpliedPattern(desc.Kind) && c.Pattern != classPattern(class) {
		extra = append(extra, RegexValidator{Regex: c.Pattern})
	}

	widget, err := widgetFor(desc)
	if err != nil {
		return nil, err
	}
	if widget != "" {
		options = append(options, WithWidget(widget))
	}
	if len(extra) > 0 {
		options = append(options, WithValidators(extra...))
	}

	field, err := New(class, options...)
	if err != nil {
		return nil, model.NewInvalidConstraintValue("build", formlib.Marker(Name, string(class)), err)
	}
	return field, nil
}

func (a *Adapter) classFor(desc model.Descriptor) (Class, error) {
	if name, ok := formlib.ClassFromMarker(Name, desc.Origin); ok {
		class := Class(name)
		if info, known := classes[class]; known && info.kind != "" && info.kind == desc.Kind {
			// IPAddressField only holds IPv4 addresses.
			if class == IPAddressField && desc.Constraints.Protocol == model.ProtocolIPv6 {
				return GenericIPAddressField, nil
			}
			return class, nil
		}
	}
	class, ok := kindClasses[desc.Kind]
	if !ok {
		return "", model.NewUnsupportedFieldKind("build", string(desc.Kind))
	}
	return class, nil
}

func widgetFor(desc model.Descriptor) (Widget, error) {
	if desc.Widget == "" {
		if desc.Kind == model.KindStringLong {
			return Textarea, nil
		}
		return "", nil
	}
	widget, ok := canonicalWidget[strings.ToLower(strings.TrimSpace(desc.Widget))]
	if !ok {
		return "", model.NewUnknownWidget("build", desc.Widget)
	}
	return widget, nil
}

// classPattern is the pattern a class validator already enforces.
func classPattern(class Class) string {
	for _, validator := range classValidators(class, "") {
		if regex, ok := validator.(RegexValidator); ok {
			return regex.Regex
		}
	}
	return ""
}

// NewForm collects fields into an attrform Form.
func (a *Adapter) NewForm(fields []formlib.NamedField) (formlib.Form, error) {
	form := NewForm()
	for _, entry := range fields {
		field, ok := entry.Field.(*Field)
		if !ok {
			return nil, fmt.Errorf("attrform: field %q belongs to %s", entry.Name, libraryOf(entry.Field))
		}
		if err := form.Add(entry.Name, field); err != nil {
			return nil, err
		}
	}
	return form, nil
}

func classOf(field formlib.Field) string {
	if field == nil {
		return "<nil>"
	}
	return formlib.Marker(field.Library(), field.Class())
}

func libraryOf(field formlib.Field) string {
	if field == nil {
		return "<nil>"
	}
	return field.Library()
}
