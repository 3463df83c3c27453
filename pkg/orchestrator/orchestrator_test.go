package orchestrator_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/formlib"
	"github.com/goliatone/go-formschema/pkg/forms/attrform"
	"github.com/goliatone/go-formschema/pkg/forms/chainform"
	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/testsupport"
	"github.com/goliatone/go-formschema/pkg/validation"
)

func classes(form formlib.Form) []string {
	var out []string
	for _, entry := range form.Fields() {
		out = append(out, entry.Name+":"+entry.Field.Class())
	}
	return out
}

func TestOrchestrator_FormToSchema_Golden(t *testing.T) {
	orch := orchestrator.New()

	got, err := orch.FormToSchema(attrformTestForm())
	if err != nil {
		t.Fatalf("form to schema: %v", err)
	}

	goldenPath := filepath.Join("testdata", "attrform_form.schema.json")
	if testsupport.WriteSchemaGolden(t, goldenPath, got) {
		return
	}
	want := testsupport.MustLoadSchema(t, goldenPath)
	diff, err := testsupport.DiffSchema(want, got)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_RoundTripKeepsClassesAndOrder(t *testing.T) {
	orch := orchestrator.New()

	cases := []struct {
		name        string
		form        formlib.Form
		destination string
	}{
		{name: "attrform", form: attrformTestForm(), destination: attrform.Name},
		{name: "chainform", form: chainformTestForm(), destination: chainform.Name},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s, err := orch.FormToSchema(tc.form)
			if err != nil {
				t.Fatalf("form to schema: %v", err)
			}
			recovered, err := orch.SchemaToForm(s, tc.destination)
			if err != nil {
				t.Fatalf("schema to form: %v", err)
			}
			if diff := cmp.Diff(classes(tc.form), classes(recovered)); diff != "" {
				t.Fatalf("classes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrchestrator_CrossLibrary(t *testing.T) {
	orch := orchestrator.New()

	s, err := orch.FormToSchema(chainformTestForm())
	if err != nil {
		t.Fatalf("form to schema: %v", err)
	}
	form, err := orch.SchemaToForm(s, attrform.Name)
	if err != nil {
		t.Fatalf("schema to form: %v", err)
	}
	want := []string{
		"boolean_field:BooleanField",
		"string_field:CharField",
		"text_area_field:CharField",
		"email_field:EmailField",
		"decimal_field:FloatField",
		"integer_field:IntegerField",
		"radio_field:ChoiceField",
		"select_multiple_field:ChoiceField",
		"ipv6_field:GenericIPAddressField",
		"date_field:CharField",
		"date_time_field:DateTimeField",
		"url_field:CharField",
	}
	if diff := cmp.Diff(want, classes(form)); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}

	textArea, _ := form.(*attrform.Form).Field("text_area_field")
	if textArea.Widget != attrform.TextInput {
		t.Fatalf("expected the class widget when no marker is present, got %q", textArea.Widget)
	}
	ip, _ := form.(*attrform.Form).Field("ipv6_field")
	if ip.Protocol() != "ipv6" {
		t.Fatalf("expected ipv6 protocol, got %q", ip.Protocol())
	}
}

func TestOrchestrator_SkipPolicy(t *testing.T) {
	form := attrform.NewForm()
	form.MustAdd("name", attrform.MustNew(attrform.CharField))
	form.MustAdd("upload", attrform.MustNew(attrform.FileField))
	form.MustAdd("age", attrform.MustNew(attrform.IntegerField))

	if _, err := orchestrator.New().FormToSchema(form); !errors.Is(err, model.ErrUnsupportedFieldKind) {
		t.Fatalf("expected abort with ErrUnsupportedFieldKind, got %v", err)
	}

	var logs bytes.Buffer
	var warnings []orchestrator.Warning
	orch := orchestrator.New(
		orchestrator.WithPolicy(orchestrator.PolicySkip),
		orchestrator.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		orchestrator.WithWarningHandler(func(w orchestrator.Warning) {
			warnings = append(warnings, w)
		}),
	)
	s, err := orch.FormToSchema(form)
	if err != nil {
		t.Fatalf("form to schema: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "age"}, s.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if len(warnings) != 1 || warnings[0].Field != "upload" || !errors.Is(warnings[0], model.ErrUnsupportedFieldKind) {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
	if !strings.Contains(logs.String(), "field=upload") {
		t.Fatalf("expected skip to be logged, got %q", logs.String())
	}
}

func TestOrchestrator_TranslateSchemaErrors(t *testing.T) {
	orch := orchestrator.New()

	cases := []struct {
		name   string
		frag   *schema.Fragment
		target error
	}{
		{
			name:   "unknown widget marker",
			frag:   &schema.Fragment{Type: schema.TypeString, Widget: "carousel"},
			target: model.ErrUnknownWidget,
		},
		{
			name:   "no recognised keys",
			frag:   &schema.Fragment{Title: "Lonely"},
			target: model.ErrUnresolvableSchemaType,
		},
		{
			name:   "negative min length",
			frag:   &schema.Fragment{Type: schema.TypeString, MinLength: intPtr(-1)},
			target: model.ErrInvalidConstraintValue,
		},
		{
			name:   "widget the library lacks",
			frag:   &schema.Fragment{Type: schema.TypeString, Widget: "email-input"},
			target: model.ErrUnknownWidget,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := orch.TranslateSchema(tc.frag, chainform.Name)
			if !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
		})
	}

	if _, err := orch.TranslateSchema(&schema.Fragment{Type: schema.TypeString}, "wtf"); err == nil {
		t.Fatalf("expected unknown destination error")
	}
}

func TestOrchestrator_RegisterWidget(t *testing.T) {
	orch := orchestrator.New()
	orch.RegisterWidget("carousel", 0, nil)

	_, err := orch.TranslateSchema(&schema.Fragment{Type: schema.TypeString, Widget: "carousel"}, attrform.Name)
	var typed *model.Error
	if !errors.As(err, &typed) || typed.Op != "build" {
		t.Fatalf("expected the library to reject the widget, got %v", err)
	}
	if orchestrator.New().WidgetRegistry().Known("carousel") {
		t.Fatalf("custom widget leaked into the shared registry")
	}
}

func TestOrchestrator_SanitizerAndDerivedTitles(t *testing.T) {
	form := attrform.NewForm()
	form.MustAdd("first_name", attrform.MustNew(attrform.CharField))
	form.MustAdd("bio", attrform.MustNew(attrform.CharField,
		attrform.WithLabel("<b>Bio</b>"),
		attrform.WithHelpText(`Tell us <script>alert(1)</script>about you`),
	))
	form.MustAdd("terms", attrform.MustNew(attrform.BooleanField,
		attrform.WithLabel("Terms & Conditions"),
		attrform.WithHelpText(`Use "a < b" for ranges`),
	))

	orch := orchestrator.New(
		orchestrator.WithHTMLStripping(),
		orchestrator.WithDerivedTitles(true),
	)
	s, err := orch.FormToSchema(form)
	if err != nil {
		t.Fatalf("form to schema: %v", err)
	}
	first, _ := s.Property("first_name")
	if first.Title != "First name" {
		t.Fatalf("expected derived title, got %q", first.Title)
	}
	bio, _ := s.Property("bio")
	if bio.Title != "Bio" || bio.Description != "Tell us about you" {
		t.Fatalf("expected markup stripped, got %q / %q", bio.Title, bio.Description)
	}
	terms, _ := s.Property("terms")
	if terms.Title != "Terms & Conditions" || terms.Description != `Use "a < b" for ranges` {
		t.Fatalf("expected plain text kept as is, got %q / %q", terms.Title, terms.Description)
	}
}

func TestOrchestrator_DecoratorsAndTransformer(t *testing.T) {
	form := attrform.NewForm()
	form.MustAdd("email", attrform.MustNew(attrform.EmailField))
	form.MustAdd("name", attrform.MustNew(attrform.CharField))

	var decorated []string
	preset, err := orchestrator.NewJSONPresetTransformer([]byte(`{
		"title": "Signup",
		"properties": {"email": {"title": "Work email", "rename": "work_email"}}
	}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	orch := orchestrator.New(
		orchestrator.WithDecorators(model.DecoratorFunc(func(name string, frag *schema.Fragment) error {
			decorated = append(decorated, name)
			return nil
		})),
		orchestrator.WithSchemaTransformer(preset),
	)
	s, err := orch.FormToSchema(form)
	if err != nil {
		t.Fatalf("form to schema: %v", err)
	}
	if diff := cmp.Diff([]string{"email", "name"}, decorated); diff != "" {
		t.Fatalf("decorator calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"work_email", "name"}, s.Names()); diff != "" {
		t.Fatalf("rename mismatch (-want +got):\n%s", diff)
	}
	renamed, _ := s.Property("work_email")
	if s.Title != "Signup" || renamed.Title != "Work email" {
		t.Fatalf("preset not applied: %q / %q", s.Title, renamed.Title)
	}

	broken, _ := orchestrator.NewJSONPresetTransformer([]byte(`{"properties": {"missing": {"title": "x"}}}`))
	if _, err := orchestrator.New(orchestrator.WithSchemaTransformer(broken)).FormToSchema(form); err == nil {
		t.Fatalf("expected missing property error")
	}

	unknownWidget, err := orchestrator.NewJSONPresetTransformer([]byte(`{"properties": {"name": {"widget": "carousel"}}}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	if _, err := orchestrator.New(orchestrator.WithSchemaTransformer(unknownWidget)).FormToSchema(form); !errors.Is(err, model.ErrUnknownWidget) {
		t.Fatalf("expected unknown widget error, got %v", err)
	}

	textarea, err := orchestrator.NewJSONPresetTransformer([]byte(`{"properties": {"name": {"widget": "textarea"}}}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	s, err = orchestrator.New(orchestrator.WithSchemaTransformer(textarea)).FormToSchema(form)
	if err != nil {
		t.Fatalf("form to schema with known widget: %v", err)
	}
	if _, err := orchestrator.New().SchemaToForm(s, attrform.Name); err != nil {
		t.Fatalf("expected preset widget to convert back: %v", err)
	}
}

func intPtr(v int) *int { return &v }

func TestOrchestrator_FormToSchemaPassesCheckSchema(t *testing.T) {
	form := attrformTestForm()
	form.MustAdd("tags", attrform.MustNew(attrform.MultipleChoiceField,
		attrform.WithLabel("Tags"),
		attrform.WithChoices("a", "b", "c"),
		attrform.WithInitial([]any{"a", "b"}),
	))

	s, err := orchestrator.New().FormToSchema(form)
	if err != nil {
		t.Fatalf("form to schema: %v", err)
	}
	if result := validation.CheckSchema(context.Background(), s); !result.Valid {
		t.Fatalf("expected encoded schema to pass its own check, got %+v", result.Issues)
	}

	back, err := orchestrator.New().SchemaToForm(s, attrform.Name)
	if err != nil {
		t.Fatalf("schema to form: %v", err)
	}
	fields := back.Fields()
	last := fields[len(fields)-1]
	if last.Name != "tags" || last.Field.Class() != string(attrform.MultipleChoiceField) {
		t.Fatalf("expected tags to come back as a multiple choice field, got %s:%s", last.Name, last.Field.Class())
	}
}
