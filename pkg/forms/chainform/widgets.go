package chainform

import "github.com/goliatone/go-formschema/pkg/widgets"

type Widget string

const (
	TextInput      Widget = "TextInput"
	TextArea       Widget = "TextArea"
	PasswordInput  Widget = "PasswordInput"
	HiddenInput    Widget = "HiddenInput"
	CheckboxInput  Widget = "CheckboxInput"
	Select         Widget = "Select"
	SelectMultiple Widget = "SelectMultiple"
	RadioList      Widget = "RadioList"
	NumberInput    Widget = "NumberInput"
	DateInput      Widget = "DateInput"
	DateTimeInput  Widget = "DateTimeInput"
	FileInput      Widget = "FileInput"
)

// There is no chainform widget for email, url, time or checkbox lists.
var widgetCanonical = map[Widget]string{
	TextInput:      widgets.WidgetTextInput,
	TextArea:       widgets.WidgetTextArea,
	PasswordInput:  widgets.WidgetPassword,
	HiddenInput:    widgets.WidgetHidden,
	CheckboxInput:  widgets.WidgetCheckbox,
	Select:         widgets.WidgetSelect,
	SelectMultiple: widgets.WidgetSelectMultiple,
	RadioList:      widgets.WidgetRadio,
	NumberInput:    widgets.WidgetNumberInput,
	DateInput:      widgets.WidgetDateInput,
	DateTimeInput:  widgets.WidgetDateTimeInput,
}

var canonicalWidget = func() map[string]Widget {
	out := make(map[string]Widget, len(widgetCanonical))
	for widget, canonical := range widgetCanonical {
		out[canonical] = widget
	}
	return out
}()

func widgetFromName(name string) (Widget, bool) {
	if _, ok := widgetCanonical[Widget(name)]; ok {
		return Widget(name), true
	}
	widget, ok := canonicalWidget[name]
	return widget, ok
}
