package orchestrator_test

import (
	"github.com/goliatone/go-formschema/pkg/forms/attrform"
	"github.com/goliatone/go-formschema/pkg/forms/chainform"
)

// attrformTestForm declares one field of every translatable attrform class.
func attrformTestForm() *attrform.Form {
	form := attrform.NewForm()
	form.MustAdd("boolean_field", attrform.MustNew(attrform.BooleanField,
		attrform.WithLabel("Boolean Field"),
		attrform.WithHelpText("This is a boolean field"),
		attrform.WithInitial(true),
		attrform.WithRequired(false),
	))
	form.MustAdd("text_field", attrform.MustNew(attrform.CharField,
		attrform.WithLabel("Text Field"),
		attrform.WithHelpText("This is a text field"),
		attrform.WithRequired(false),
		attrform.WithMaxLength(100),
		attrform.WithMinLength(20),
	))
	form.MustAdd("text_area_field", attrform.MustNew(attrform.CharField,
		attrform.WithLabel("Text Area Field"),
		attrform.WithHelpText("This is a text area field"),
		attrform.WithMaxLength(200),
		attrform.WithMinLength(0),
		attrform.WithWidget(attrform.Textarea),
	))
	form.MustAdd("email_field", attrform.MustNew(attrform.EmailField,
		attrform.WithLabel("Email Field"),
		attrform.WithHelpText("This is an email field"),
		attrform.WithInitial("email@example.com"),
		attrform.WithMaxLength(100),
		attrform.WithRequired(false),
	))
	form.MustAdd("decimal_field", attrform.MustNew(attrform.DecimalField,
		attrform.WithLabel("Decimal Field"),
		attrform.WithHelpText("This is a decimal field"),
		attrform.WithInitial(10.04),
		attrform.WithMaxValue(100),
		attrform.WithMinValue(0),
	))
	form.MustAdd("float_field", attrform.MustNew(attrform.FloatField,
		attrform.WithLabel("Float Field"),
		attrform.WithHelpText("This is a float field"),
		attrform.WithInitial(10.04),
		attrform.WithMaxValue(100),
		attrform.WithMinValue(2.53),
		attrform.WithRequired(false),
	))
	form.MustAdd("integer_field", attrform.MustNew(attrform.IntegerField,
		attrform.WithLabel("Integer Field"),
		attrform.WithHelpText("This is an integer field"),
		attrform.WithInitial(10),
		attrform.WithMaxValue(50),
		attrform.WithMinValue(10),
		attrform.WithRequired(false),
	))
	form.MustAdd("choice_field", attrform.MustNew(attrform.ChoiceField,
		attrform.WithLabel("Choice Field"),
		attrform.WithHelpText("This is a choice field"),
		attrform.WithChoices("choice_1", "choice_2", "choice_3"),
		attrform.WithRequired(false),
	))
	form.MustAdd("ip_field", attrform.MustNew(attrform.IPAddressField,
		attrform.WithLabel("IP Address Field"),
		attrform.WithHelpText("This is an IP address field"),
	))
	form.MustAdd("gen_ip_field", attrform.MustNew(attrform.GenericIPAddressField,
		attrform.WithLabel("Generic IP Address Field"),
		attrform.WithHelpText("This is a Generic IP address field"),
		attrform.WithProtocol("IPV6"),
	))
	form.MustAdd("date_field", attrform.MustNew(attrform.DateField,
		attrform.WithLabel("Date Field"),
		attrform.WithHelpText("This is a date field"),
		attrform.WithRequired(false),
	))
	form.MustAdd("time_field", attrform.MustNew(attrform.TimeField,
		attrform.WithLabel("Time Field"),
		attrform.WithHelpText("This is a time field"),
		attrform.WithRequired(false),
	))
	form.MustAdd("date_time_field", attrform.MustNew(attrform.DateTimeField,
		attrform.WithLabel("Date-Time Field"),
		attrform.WithHelpText("This is a date-time field"),
		attrform.WithRequired(false),
	))
	form.MustAdd("slug_field", attrform.MustNew(attrform.SlugField,
		attrform.WithLabel("Slug Field"),
		attrform.WithHelpText("This is a slug field"),
		attrform.WithRequired(false),
		attrform.WithMaxLength(100),
		attrform.WithMinLength(10),
	))
	form.MustAdd("url_field", attrform.MustNew(attrform.URLField,
		attrform.WithLabel("URL Field"),
		attrform.WithHelpText("This is an URL field"),
		attrform.WithRequired(false),
		attrform.WithMaxLength(100),
		attrform.WithMinLength(0),
	))
	return form
}

func mustAddChain(form *chainform.Form, name string, field *chainform.Field) {
	if err := form.Add(name, field); err != nil {
		panic(err)
	}
}

// chainformTestForm declares one field of every translatable chainform type.
func chainformTestForm() *chainform.Form {
	form := chainform.NewForm()
	mustAddChain(form, "boolean_field", chainform.MustNew(chainform.BooleanField, "Boolean Field",
		chainform.WithDescription("This is a boolean field"),
		chainform.WithDefault(true),
		chainform.WithValidators(chainform.Optional{}),
	))
	mustAddChain(form, "string_field", chainform.MustNew(chainform.StringField, "String Field",
		chainform.WithDescription("This is a string field"),
		chainform.WithValidators(chainform.Length{Min: intPtr(10), Max: intPtr(50)}),
	))
	mustAddChain(form, "text_area_field", chainform.MustNew(chainform.TextAreaField, "Text Area Field",
		chainform.WithDescription("This is a text area field"),
		chainform.WithValidators(chainform.Length{Min: intPtr(0), Max: intPtr(200)}),
	))
	mustAddChain(form, "email_field", chainform.MustNew(chainform.StringField, "Email Field",
		chainform.WithDescription("This is an email field"),
		chainform.WithDefault("email@example.com"),
		chainform.WithValidators(chainform.Email{}, chainform.Length{Min: intPtr(10)}),
	))
	mustAddChain(form, "decimal_field", chainform.MustNew(chainform.DecimalField, "Decimal Field",
		chainform.WithValidators(chainform.NumberRange{Min: floatPtr(0), Max: floatPtr(100)}),
	))
	mustAddChain(form, "integer_field", chainform.MustNew(chainform.IntegerField, "Integer Field",
		chainform.WithDefault(10),
	))
	mustAddChain(form, "radio_field", chainform.MustNew(chainform.RadioField, "Radio Field",
		chainform.WithChoices("choice_1", "choice_2", "choice_3"),
	))
	mustAddChain(form, "select_multiple_field", chainform.MustNew(chainform.SelectMultipleField, "Select Multiple Field",
		chainform.WithChoices("choice_1", "choice_2", "choice_3"),
	))
	mustAddChain(form, "ipv6_field", chainform.MustNew(chainform.StringField, "IPV6 Address Field",
		chainform.WithValidators(chainform.IPAddress{IPv6: true}),
	))
	mustAddChain(form, "date_field", chainform.MustNew(chainform.DateField, "Date Field"))
	mustAddChain(form, "date_time_field", chainform.MustNew(chainform.DateTimeField, "Date Time Field"))
	mustAddChain(form, "url_field", chainform.MustNew(chainform.StringField, "URL Field",
		chainform.WithValidators(chainform.URL{}, chainform.Optional{}),
	))
	return form
}

func floatPtr(v float64) *float64 { return &v }
