package attrform

import "github.com/goliatone/go-formschema/pkg/widgets"

// Widget names a widget class.
type Widget string

const (
	TextInput              Widget = "TextInput"
	Textarea               Widget = "Textarea"
	PasswordInput          Widget = "PasswordInput"
	HiddenInput            Widget = "HiddenInput"
	CheckboxInput          Widget = "CheckboxInput"
	Select                 Widget = "Select"
	SelectMultiple         Widget = "SelectMultiple"
	RadioSelect            Widget = "RadioSelect"
	CheckboxSelectMultiple Widget = "CheckboxSelectMultiple"
	NumberInput            Widget = "NumberInput"
	EmailInput             Widget = "EmailInput"
	URLInput               Widget = "URLInput"
	DateInput              Widget = "DateInput"
	TimeInput              Widget = "TimeInput"
	DateTimeInput          Widget = "DateTimeInput"
	FileInput              Widget = "FileInput"
)

var widgetCanonical = map[Widget]string{
	TextInput:              widgets.WidgetTextInput,
	Textarea:               widgets.WidgetTextArea,
	PasswordInput:          widgets.WidgetPassword,
	HiddenInput:            widgets.WidgetHidden,
	CheckboxInput:          widgets.WidgetCheckbox,
	Select:                 widgets.WidgetSelect,
	SelectMultiple:         widgets.WidgetSelectMultiple,
	RadioSelect:            widgets.WidgetRadio,
	CheckboxSelectMultiple: widgets.WidgetCheckboxMultiple,
	NumberInput:            widgets.WidgetNumberInput,
	EmailInput:             widgets.WidgetEmailInput,
	URLInput:               widgets.WidgetURLInput,
	DateInput:              widgets.WidgetDateInput,
	TimeInput:              widgets.WidgetTimeInput,
	DateTimeInput:          widgets.WidgetDateTimeInput,
}

var canonicalWidget = func() map[string]Widget {
	out := make(map[string]Widget, len(widgetCanonical))
	for widget, canonical := range widgetCanonical {
		out[canonical] = widget
	}
	return out
}()

// widgetFromName accepts a widget class name or a canonical widget name.
func widgetFromName(name string) (Widget, bool) {
	if _, ok := widgetCanonical[Widget(name)]; ok {
		return Widget(name), true
	}
	widget, ok := canonicalWidget[name]
	return widget, ok
}
