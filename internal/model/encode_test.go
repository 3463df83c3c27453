package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/schema"
)

type markerKinds map[string]Kind

func (m markerKinds) KindOf(marker string) (Kind, bool) {
	kind, ok := m[marker]
	return kind, ok
}

func TestEncode_Shapes(t *testing.T) {
	cases := []struct {
		kind     Kind
		protocol Protocol
		typ      string
		format   string
		pattern  string
	}{
		{kind: KindBoolean, typ: "boolean"},
		{kind: KindStringShort, typ: "string"},
		{kind: KindStringLong, typ: "string"},
		{kind: KindInteger, typ: "integer"},
		{kind: KindDecimal, typ: "number"},
		{kind: KindFloat, typ: "number"},
		{kind: KindEmail, typ: "string", format: "email"},
		{kind: KindChoiceSingle, typ: "string"},
		{kind: KindChoiceMultiple, typ: "string"},
		{kind: KindIPAddress, typ: "string", format: "ipv4"},
		{kind: KindIPAddress, protocol: ProtocolIPv6, typ: "string", format: "ipv6"},
		{kind: KindDate, typ: "string", pattern: DatePattern},
		{kind: KindTime, typ: "string", pattern: TimePattern},
		{kind: KindDateTime, typ: "string", format: "date-time"},
		{kind: KindSlug, typ: "string", pattern: SlugPattern},
		{kind: KindURL, typ: "string", pattern: URLPattern},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(string(tc.kind)+string(tc.protocol), func(t *testing.T) {
			t.Parallel()
			desc := Descriptor{Kind: tc.kind, Constraints: Constraints{Protocol: tc.protocol}}
			frag, err := Encode(desc, DefaultTables())
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if frag.Type != tc.typ || frag.Format != tc.format || frag.Pattern != tc.pattern {
				t.Fatalf("unexpected shape type=%q format=%q pattern=%q", frag.Type, frag.Format, frag.Pattern)
			}
			if frag.Optional == nil || *frag.Optional {
				t.Fatalf("expected optional=false to always be present")
			}
		})
	}
}

func TestEncode_ExplicitPatternWins(t *testing.T) {
	desc := Descriptor{Kind: KindSlug, Constraints: Constraints{Pattern: "^[a-z0-9-]+$"}}
	frag, err := Encode(desc, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if frag.Pattern != "^[a-z0-9-]+$" {
		t.Fatalf("expected explicit pattern, got %q", frag.Pattern)
	}
}

func TestEncode_CopiesKeywordsAndMarkers(t *testing.T) {
	desc := Descriptor{
		Kind:        KindChoiceSingle,
		Title:       "Select Field",
		Description: "This is a select field",
		Default:     "choice_2",
		Optional:    true,
		Origin:      "chainform.RadioField",
		Widget:      "radio",
		Constraints: Constraints{Choices: []any{"choice_1", "choice_2", "choice_3"}},
	}
	frag, err := Encode(desc, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	optional := true
	want := &schema.Fragment{
		Type:        "string",
		Title:       "Select Field",
		Description: "This is a select field",
		Default:     "choice_2",
		Optional:    &optional,
		Enum:        []any{"choice_1", "choice_2", "choice_3"},
		Origin:      "chainform.RadioField",
		Widget:      "radio",
	}
	if diff := cmp.Diff(want, frag); diff != "" {
		t.Fatalf("fragment mismatch (-want +got):\n%s", diff)
	}

	frag.Enum[0] = "mutated"
	if desc.Constraints.Choices[0] != "choice_1" {
		t.Fatalf("encode shares the choices slice with the descriptor")
	}
}

func TestEncode_Errors(t *testing.T) {
	if _, err := Encode(Descriptor{Kind: "array"}, nil); !errors.Is(err, ErrUnsupportedFieldKind) {
		t.Fatalf("expected ErrUnsupportedFieldKind, got %v", err)
	}
	desc := Descriptor{Kind: KindStringShort, Constraints: Constraints{MinLength: ptr(-2)}}
	if _, err := Encode(desc, nil); !errors.Is(err, ErrInvalidConstraintValue) {
		t.Fatalf("expected ErrInvalidConstraintValue, got %v", err)
	}
}

func TestDecode_KindResolution(t *testing.T) {
	resolver := markerKinds{
		"chainform.TextAreaField":   KindStringLong,
		"chainform.StringField":     KindStringShort,
		"chainform.SelectMultiple":  KindChoiceMultiple,
		"chainform.DecimalField":    KindDecimal,
		"attrform.GenericIPAddress": KindIPAddress,
	}

	cases := []struct {
		name string
		frag schema.Fragment
		want Kind
	}{
		{name: "known marker wins", frag: schema.Fragment{Type: "string", Origin: "chainform.TextAreaField"}, want: KindStringLong},
		{name: "marker beats enum", frag: schema.Fragment{Type: "string", Enum: []any{"a"}, Origin: "chainform.SelectMultiple"}, want: KindChoiceMultiple},
		{name: "marker beats type", frag: schema.Fragment{Type: "number", Origin: "chainform.DecimalField"}, want: KindDecimal},
		{name: "plain string marker refined by format", frag: schema.Fragment{Type: "string", Format: "email", Origin: "chainform.StringField"}, want: KindEmail},
		{name: "unknown marker ignored", frag: schema.Fragment{Type: "string", Origin: "attrform.SlugField"}, want: KindStringShort},
		{name: "enum", frag: schema.Fragment{Type: "string", Enum: []any{"a", "b"}}, want: KindChoiceSingle},
		{name: "email format", frag: schema.Fragment{Type: "string", Format: "email"}, want: KindEmail},
		{name: "date-time format", frag: schema.Fragment{Type: "string", Format: "date-time"}, want: KindDateTime},
		{name: "ipv6 format", frag: schema.Fragment{Type: "string", Format: "ipv6"}, want: KindIPAddress},
		{name: "unknown format falls back to type", frag: schema.Fragment{Type: "string", Format: "uuid"}, want: KindStringShort},
		{name: "format ignored on non strings", frag: schema.Fragment{Type: "integer", Format: "email"}, want: KindInteger},
		{name: "number is float", frag: schema.Fragment{Type: "number"}, want: KindFloat},
		{name: "boolean", frag: schema.Fragment{Type: "boolean"}, want: KindBoolean},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			desc, err := Decode(&tc.frag, nil, resolver)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if desc.Kind != tc.want {
				t.Fatalf("expected kind %s, got %s", tc.want, desc.Kind)
			}
		})
	}
}

func TestDecode_Protocol(t *testing.T) {
	desc, err := Decode(&schema.Fragment{Type: "string", Format: "ipv6"}, nil, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if desc.Constraints.Protocol != ProtocolIPv6 {
		t.Fatalf("expected ipv6, got %q", desc.Constraints.Protocol)
	}
	desc, err = Decode(&schema.Fragment{Type: "string", Format: "ipv4"}, nil, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if desc.Constraints.Protocol != ProtocolIPv4 {
		t.Fatalf("expected ipv4, got %q", desc.Constraints.Protocol)
	}
}

func TestDecode_Errors(t *testing.T) {
	negative := -1
	cases := []struct {
		name   string
		frag   *schema.Fragment
		target error
	}{
		{name: "nil fragment", frag: nil, target: ErrUnresolvableSchemaType},
		{name: "no recognised keys", frag: &schema.Fragment{Title: "Untyped"}, target: ErrUnresolvableSchemaType},
		{name: "array type", frag: &schema.Fragment{Type: "array"}, target: ErrUnresolvableSchemaType},
		{name: "object type", frag: &schema.Fragment{Type: "object"}, target: ErrUnresolvableSchemaType},
		{name: "negative minLength", frag: &schema.Fragment{Type: "string", MinLength: &negative}, target: ErrInvalidConstraintValue},
		{name: "malformed pattern", frag: &schema.Fragment{Type: "string", Pattern: "(["}, target: ErrInvalidConstraintValue},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Decode(tc.frag, nil, nil); !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
		})
	}
}

func TestDecode_IntegerDefaultNormalised(t *testing.T) {
	desc, err := Decode(&schema.Fragment{Type: "integer", Default: float64(10)}, nil, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if desc.Default != 10 {
		t.Fatalf("expected int default 10, got %#v", desc.Default)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	descs := []Descriptor{
		{Kind: KindBoolean, Title: "Boolean Field", Description: "This is a boolean field", Default: true, Optional: true},
		{Kind: KindStringShort, Title: "String Field", Constraints: Constraints{MinLength: ptr(10), MaxLength: ptr(50)}},
		{Kind: KindEmail, Default: "email@example.com", Constraints: Constraints{MinLength: ptr(10)}},
		{Kind: KindFloat, Default: 10.04, Constraints: Constraints{Minimum: ptr(0.0), Maximum: ptr(100.0)}},
		{Kind: KindIPAddress, Constraints: Constraints{Protocol: ProtocolIPv6}},
		{Kind: KindChoiceSingle, Default: "choice_2", Constraints: Constraints{Choices: []any{"choice_1", "choice_2", "choice_3"}}},
		{Kind: KindDateTime},
	}
	for _, want := range descs {
		frag, err := Encode(want, nil)
		if err != nil {
			t.Fatalf("encode %s: %v", want.Kind, err)
		}
		got, err := Decode(frag, nil, nil)
		if err != nil {
			t.Fatalf("decode %s: %v", want.Kind, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("round trip %s mismatch (-want +got):\n%s", want.Kind, diff)
		}
	}
}

func TestKwargs_NegatesOptional(t *testing.T) {
	desc := Descriptor{
		Kind:        KindIPAddress,
		Title:       "IP",
		Optional:    true,
		Constraints: Constraints{MaxLength: ptr(0), Protocol: ProtocolIPv6},
	}
	got := desc.Kwargs(DefaultTables())
	want := map[string]any{
		AttrLabel:     "IP",
		AttrRequired:  false,
		AttrMaxLength: 0,
		AttrProtocol:  "ipv6",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kwargs mismatch (-want +got):\n%s", diff)
	}
}

func TestRules_Order(t *testing.T) {
	desc := Descriptor{
		Kind:     KindEmail,
		Optional: true,
		Constraints: Constraints{
			MinLength: ptr(10),
			Minimum:   ptr(1.0),
			Pattern:   ".+@example\\.org",
		},
	}
	got := desc.Rules()
	want := []Rule{
		{Kind: RuleOptional},
		{Kind: RuleEmail},
		{Kind: RuleLength, Min: ptr(10.0)},
		{Kind: RuleRange, Min: ptr(1.0)},
		{Kind: RulePattern, Pattern: ".+@example\\.org"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}

	urlRules := Descriptor{Kind: KindURL, Constraints: Constraints{Pattern: URLPattern}}.Rules()
	if len(urlRules) != 1 || urlRules[0].Kind != RuleURL {
		t.Fatalf("expected a single url rule, got %+v", urlRules)
	}
}
