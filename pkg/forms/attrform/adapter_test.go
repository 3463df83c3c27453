package attrform

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/formlib"
	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/schema"
)

func toFragment(t *testing.T, field *Field) *schema.Fragment {
	t.Helper()
	origin, err := NewAdapter().Inspect(field)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	desc, err := model.Describe(origin, nil)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	frag, err := model.Encode(desc, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return frag
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestAdapter_FieldToFragment(t *testing.T) {
	cases := []struct {
		name  string
		field *Field
		want  *schema.Fragment
	}{
		{
			name: "boolean",
			field: MustNew(BooleanField,
				WithLabel("Boolean Field"),
				WithHelpText("This is a boolean field"),
				WithInitial(true),
				WithRequired(false),
			),
			want: &schema.Fragment{
				Type:        schema.TypeBoolean,
				Title:       "Boolean Field",
				Description: "This is a boolean field",
				Default:     true,
				Optional:    boolPtr(true),
				Origin:      "attrform.BooleanField",
			},
		},
		{
			name: "char",
			field: MustNew(CharField,
				WithLabel("Text Field"),
				WithHelpText("This is a text field"),
				WithRequired(false),
				WithMaxLength(100),
				WithMinLength(20),
			),
			want: &schema.Fragment{
				Type:        schema.TypeString,
				Title:       "Text Field",
				Description: "This is a text field",
				Optional:    boolPtr(true),
				MinLength:   intPtr(20),
				MaxLength:   intPtr(100),
				Origin:      "attrform.CharField",
			},
		},
		{
			name: "char with textarea widget",
			field: MustNew(CharField,
				WithLabel("Text Area Field"),
				WithMaxLength(200),
				WithMinLength(0),
				WithWidget(Textarea),
			),
			want: &schema.Fragment{
				Type:      schema.TypeString,
				Title:     "Text Area Field",
				Optional:  boolPtr(false),
				MinLength: intPtr(0),
				MaxLength: intPtr(200),
				Origin:    "attrform.CharField",
				Widget:    "textarea",
			},
		},
		{
			name: "email",
			field: MustNew(EmailField,
				WithLabel("Email Field"),
				WithInitial("email@example.com"),
				WithMaxLength(100),
				WithRequired(false),
			),
			want: &schema.Fragment{
				Type:      schema.TypeString,
				Title:     "Email Field",
				Default:   "email@example.com",
				Optional:  boolPtr(true),
				MaxLength: intPtr(100),
				Format:    schema.FormatEmail,
				Origin:    "attrform.EmailField",
			},
		},
		{
			name: "decimal with zero minimum",
			field: MustNew(DecimalField,
				WithLabel("Decimal Field"),
				WithInitial(10.04),
				WithMaxValue(100),
				WithMinValue(0),
			),
			want: &schema.Fragment{
				Type:     schema.TypeNumber,
				Title:    "Decimal Field",
				Default:  10.04,
				Optional: boolPtr(false),
				Minimum:  floatPtr(0),
				Maximum:  floatPtr(100),
				Origin:   "attrform.DecimalField",
			},
		},
		{
			name:  "choice",
			field: MustNew(ChoiceField, WithChoices("choice_1", "choice_2", "choice_3"), WithRequired(false)),
			want: &schema.Fragment{
				Type:     schema.TypeString,
				Optional: boolPtr(true),
				Enum:     []any{"choice_1", "choice_2", "choice_3"},
				Origin:   "attrform.ChoiceField",
			},
		},
		{
			name:  "ipv4 only class",
			field: MustNew(IPAddressField, WithLabel("IP Address Field")),
			want: &schema.Fragment{
				Type:     schema.TypeString,
				Title:    "IP Address Field",
				Optional: boolPtr(false),
				Format:   schema.FormatIPv4,
				Origin:   "attrform.IPAddressField",
			},
		},
		{
			name:  "generic ip with ipv6 protocol",
			field: MustNew(GenericIPAddressField, WithProtocol("IPV6")),
			want: &schema.Fragment{
				Type:     schema.TypeString,
				Optional: boolPtr(false),
				Format:   schema.FormatIPv6,
				Origin:   "attrform.GenericIPAddressField",
			},
		},
		{
			name:  "generic ip dual stack",
			field: MustNew(GenericIPAddressField),
			want: &schema.Fragment{
				Type:     schema.TypeString,
				Optional: boolPtr(false),
				Format:   schema.FormatIPv4,
				Origin:   "attrform.GenericIPAddressField",
			},
		},
		{
			name:  "date",
			field: MustNew(DateField, WithRequired(false)),
			want: &schema.Fragment{
				Type:     schema.TypeString,
				Optional: boolPtr(true),
				Pattern:  model.DatePattern,
				Origin:   "attrform.DateField",
			},
		},
		{
			name:  "time",
			field: MustNew(TimeField, WithRequired(false)),
			want: &schema.Fragment{
				Type:     schema.TypeString,
				Optional: boolPtr(true),
				Pattern:  model.TimePattern,
				Origin:   "attrform.TimeField",
			},
		},
		{
			name:  "datetime",
			field: MustNew(DateTimeField, WithRequired(false)),
			want: &schema.Fragment{
				Type:     schema.TypeString,
				Optional: boolPtr(true),
				Format:   schema.FormatDateTime,
				Origin:   "attrform.DateTimeField",
			},
		},
		{
			name:  "slug",
			field: MustNew(SlugField, WithRequired(false), WithMaxLength(100), WithMinLength(10)),
			want: &schema.Fragment{
				Type:      schema.TypeString,
				Optional:  boolPtr(true),
				MinLength: intPtr(10),
				MaxLength: intPtr(100),
				Pattern:   model.SlugPattern,
				Origin:    "attrform.SlugField",
			},
		},
		{
			name:  "url",
			field: MustNew(URLField, WithRequired(false), WithMaxLength(100), WithMinLength(0)),
			want: &schema.Fragment{
				Type:      schema.TypeString,
				Optional:  boolPtr(true),
				MinLength: intPtr(0),
				MaxLength: intPtr(100),
				Pattern:   model.URLPattern,
				Origin:    "attrform.URLField",
			},
		},
		{
			name:  "extra regex validator",
			field: MustNew(CharField, WithValidators(RegexValidator{Regex: "^[a-z]+$"})),
			want: &schema.Fragment{
				Type:     schema.TypeString,
				Optional: boolPtr(false),
				Pattern:  "^[a-z]+$",
				Origin:   "attrform.CharField",
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := toFragment(t, tc.field)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("fragment mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdapter_InspectUnsupported(t *testing.T) {
	adapter := NewAdapter()
	for _, class := range []Class{FileField, ImageField, ModelChoiceField} {
		_, err := adapter.Inspect(MustNew(class))
		if !errors.Is(err, model.ErrUnsupportedFieldKind) {
			t.Fatalf("%s: expected ErrUnsupportedFieldKind, got %v", class, err)
		}
	}
}

func TestAdapter_KindOf(t *testing.T) {
	adapter := NewAdapter()
	if kind, ok := adapter.KindOf("attrform.SlugField"); !ok || kind != model.KindSlug {
		t.Fatalf("expected slug, got %q (ok=%v)", kind, ok)
	}
	for _, marker := range []string{"chainform.StringField", "attrform.FileField", "attrform", ""} {
		if _, ok := adapter.KindOf(marker); ok {
			t.Fatalf("marker %q should not resolve", marker)
		}
	}
}

func TestAdapter_Build(t *testing.T) {
	adapter := NewAdapter()

	cases := []struct {
		name string
		desc model.Descriptor
		want *Field
	}{
		{
			name: "marker class is kept",
			desc: model.Descriptor{
				Kind:        model.KindSlug,
				Title:       "Slug Field",
				Optional:    true,
				Origin:      "attrform.SlugField",
				Constraints: model.Constraints{MinLength: intPtr(10), MaxLength: intPtr(100), Pattern: model.SlugPattern},
			},
			want: &Field{
				class:     SlugField,
				Label:     "Slug Field",
				MinLength: intPtr(10),
				MaxLength: intPtr(100),
				Widget:    TextInput,
			},
		},
		{
			name: "long text becomes textarea",
			desc: model.Descriptor{Kind: model.KindStringLong, Origin: "chainform.TextAreaField"},
			want: &Field{class: CharField, Required: true, Widget: Textarea},
		},
		{
			name: "ipv4 class cannot hold ipv6",
			desc: model.Descriptor{
				Kind:        model.KindIPAddress,
				Origin:      "attrform.IPAddressField",
				Constraints: model.Constraints{Protocol: model.ProtocolIPv6},
			},
			want: &Field{class: GenericIPAddressField, Required: true, Widget: TextInput, protocol: "ipv6"},
		},
		{
			name: "bounds the class cannot hold become validators",
			desc: model.Descriptor{
				Kind:        model.KindDate,
				Constraints: model.Constraints{MinLength: intPtr(8), Pattern: "^[0-9-]+$"},
			},
			want: &Field{
				class:      DateField,
				Required:   true,
				Widget:     DateInput,
				Validators: []Validator{MinLengthValidator{Limit: 8}, RegexValidator{Regex: "^[0-9-]+$"}},
			},
		},
		{
			name: "canonical widget",
			desc: model.Descriptor{Kind: model.KindChoiceSingle, Widget: "radio", Constraints: model.Constraints{Choices: []any{"a", "b"}}},
			want: &Field{class: ChoiceField, Required: true, Widget: RadioSelect, Choices: []any{"a", "b"}},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := adapter.Build(tc.desc, nil)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(Field{})); diff != "" {
				t.Fatalf("field mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdapter_BuildErrors(t *testing.T) {
	adapter := NewAdapter()

	_, err := adapter.Build(model.Descriptor{Kind: model.KindStringShort, Widget: "carousel"}, nil)
	if !errors.Is(err, model.ErrUnknownWidget) {
		t.Fatalf("expected ErrUnknownWidget, got %v", err)
	}
	_, err = adapter.Build(model.Descriptor{Kind: model.Kind("file")}, nil)
	if !errors.Is(err, model.ErrUnsupportedFieldKind) {
		t.Fatalf("expected ErrUnsupportedFieldKind, got %v", err)
	}
}

func TestAdapter_RoundTrip(t *testing.T) {
	adapter := NewAdapter()
	fields := []*Field{
		MustNew(BooleanField, WithLabel("Boolean Field"), WithInitial(true), WithRequired(false)),
		MustNew(CharField, WithMaxLength(200), WithMinLength(0), WithWidget(Textarea)),
		MustNew(FloatField, WithInitial(10.04), WithMinValue(2.53), WithMaxValue(100), WithRequired(false)),
		MustNew(GenericIPAddressField, WithProtocol("ipv6")),
		MustNew(TimeField, WithHelpText("This is a time field")),
	}
	for _, field := range fields {
		frag := toFragment(t, field)
		desc, err := model.Decode(frag, nil, adapter)
		if err != nil {
			t.Fatalf("%s: decode: %v", field.Class(), err)
		}
		rebuilt, err := adapter.Build(desc, nil)
		if err != nil {
			t.Fatalf("%s: build: %v", field.Class(), err)
		}
		if diff := cmp.Diff(field, rebuilt, cmp.AllowUnexported(Field{})); diff != "" {
			t.Fatalf("%s: round trip mismatch (-want +got):\n%s", field.Class(), diff)
		}
	}
}

func TestAdapter_SpecRoundTrip(t *testing.T) {
	adapter := NewAdapter()
	original := MustNew(CharField,
		WithLabel("Name"),
		WithMaxLength(40),
		WithRequired(false),
		WithWidget(PasswordInput),
		WithValidators(RegexValidator{Regex: "^[a-z]+$"}, MinValueValidator{Limit: 1}),
	)
	spec, err := adapter.ToSpec(original)
	if err != nil {
		t.Fatalf("to spec: %v", err)
	}
	if spec.Widget != string(PasswordInput) || len(spec.Validators) != 2 {
		t.Fatalf("unexpected spec: %+v", spec)
	}
	rebuilt, err := adapter.FromSpec(spec)
	if err != nil {
		t.Fatalf("from spec: %v", err)
	}
	if diff := cmp.Diff(original, rebuilt, cmp.AllowUnexported(Field{})); diff != "" {
		t.Fatalf("spec round trip mismatch (-want +got):\n%s", diff)
	}

	canonical, err := adapter.FromSpec(formlib.FieldSpec{Name: "bio", Class: "CharField", Widget: "textarea"})
	if err != nil {
		t.Fatalf("canonical widget: %v", err)
	}
	if canonical.(*Field).Widget != Textarea {
		t.Fatalf("expected Textarea widget")
	}
	if _, err := adapter.FromSpec(formlib.FieldSpec{Name: "n", Class: "IntegerField", MaxLength: intPtr(3)}); err == nil {
		t.Fatalf("expected rejected max_length on IntegerField")
	}
}

func TestForm_RejectsDuplicates(t *testing.T) {
	form := NewForm()
	if err := form.Add("name", MustNew(CharField)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := form.Add("name", MustNew(CharField)); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := form.Add("", MustNew(CharField)); err == nil {
		t.Fatalf("expected empty name error")
	}
	if got := form.Names(); len(got) != 1 || got[0] != "name" {
		t.Fatalf("unexpected names %v", got)
	}
}
