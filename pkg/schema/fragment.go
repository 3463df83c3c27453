package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Draft04 is the dialect URI written into every schema envelope.
const Draft04 = "http://json-schema.org/draft-04/schema#"

// Envelope defaults.
const (
	DefaultTitle       = "JSON Schema"
	DefaultDescription = "This is a JSON Schema describing a form"
)

// Recognised fragment keywords.
const (
	KeywordType        = "type"
	KeywordTitle       = "title"
	KeywordDescription = "description"
	KeywordDefault     = "default"
	KeywordOptional    = "optional"
	KeywordMinLength   = "minLength"
	KeywordMaxLength   = "maxLength"
	KeywordMinimum     = "minimum"
	KeywordMaximum     = "maximum"
	KeywordPattern     = "pattern"
	KeywordFormat      = "format"
	KeywordEnum        = "enum"
	KeywordOrigin      = "x-formschema-origin"
	KeywordWidget      = "x-formschema-widget"
)

// JSON Schema primitive types produced by the translator.
const (
	TypeBoolean = "boolean"
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
)

// Formats produced by the translator.
const (
	FormatEmail    = "email"
	FormatDateTime = "date-time"
	FormatIPv4     = "ipv4"
	FormatIPv6     = "ipv6"
)

// ErrInvalidValue marks a keyword whose value has the wrong shape or range.
var ErrInvalidValue = errors.New("invalid constraint value")

var supportedKeywords = map[string]struct{}{
	KeywordType:        {},
	KeywordTitle:       {},
	KeywordDescription: {},
	KeywordDefault:     {},
	KeywordOptional:    {},
	KeywordMinLength:   {},
	KeywordMaxLength:   {},
	KeywordMinimum:     {},
	KeywordMaximum:     {},
	KeywordPattern:     {},
	KeywordFormat:      {},
	KeywordEnum:        {},
	KeywordOrigin:      {},
	KeywordWidget:      {},
}

// Fragment is the flat JSON Schema object describing one form field.
// Pointer fields are unset when nil; zero is a real value.
type Fragment struct {
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty"`
	Optional    *bool    `json:"optional,omitempty" yaml:"optional,omitempty"`
	MinLength   *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	Pattern     string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Format      string   `json:"format,omitempty" yaml:"format,omitempty"`
	Enum        []any    `json:"enum,omitempty" yaml:"enum,omitempty"`
	Origin      string   `json:"x-formschema-origin,omitempty" yaml:"x-formschema-origin,omitempty"`
	Widget      string   `json:"x-formschema-widget,omitempty" yaml:"x-formschema-widget,omitempty"`
}

// IsOptional reports the optional flag, treating an absent flag as false.
func (f *Fragment) IsOptional() bool {
	return f != nil && f.Optional != nil && *f.Optional
}

// Clone returns a deep copy of the fragment.
func (f *Fragment) Clone() *Fragment {
	if f == nil {
		return nil
	}
	out := *f
	out.Optional = clonePtr(f.Optional)
	out.MinLength = clonePtr(f.MinLength)
	out.MaxLength = clonePtr(f.MaxLength)
	out.Minimum = clonePtr(f.Minimum)
	out.Maximum = clonePtr(f.Maximum)
	if f.Enum != nil {
		out.Enum = append([]any(nil), f.Enum...)
	}
	return &out
}

// UnmarshalJSON parses a fragment, rejecting unknown keywords and malformed values.
func (f *Fragment) UnmarshalJSON(data []byte) error {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("schema: decode fragment: %w", err)
	}
	parsed, err := FragmentFromMap(payload, "#")
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (f *Fragment) UnmarshalYAML(node *yaml.Node) error {
	var payload map[string]any
	if err := node.Decode(&payload); err != nil {
		return fmt.Errorf("schema: decode fragment: %w", err)
	}
	parsed, err := FragmentFromMap(payload, "#")
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}

// FragmentFromMap reads a decoded JSON or YAML object into a Fragment. path is
// the JSON pointer reported in errors.
func FragmentFromMap(payload map[string]any, path string) (*Fragment, error) {
	if payload == nil {
		return nil, fmt.Errorf("schema: fragment at %s must be an object", path)
	}
	if err := validateKeywords(payload, path); err != nil {
		return nil, err
	}

	frag := &Fragment{}
	var err error
	textKeywords := []struct {
		key    string
		target *string
	}{
		{KeywordType, &frag.Type},
		{KeywordTitle, &frag.Title},
		{KeywordDescription, &frag.Description},
		{KeywordPattern, &frag.Pattern},
		{KeywordFormat, &frag.Format},
		{KeywordOrigin, &frag.Origin},
		{KeywordWidget, &frag.Widget},
	}
	for _, entry := range textKeywords {
		if *entry.target, err = readString(payload, entry.key, path); err != nil {
			return nil, err
		}
	}

	if value, ok := payload[KeywordDefault]; ok {
		frag.Default = value
	}
	if value, ok := payload[KeywordOptional]; ok {
		flag, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("schema: %w: optional must be a boolean at %s", ErrInvalidValue, path)
		}
		frag.Optional = &flag
	}
	if frag.MinLength, err = readInt(payload, KeywordMinLength, path); err != nil {
		return nil, err
	}
	if frag.MaxLength, err = readInt(payload, KeywordMaxLength, path); err != nil {
		return nil, err
	}
	if frag.Minimum, err = readFloat(payload, KeywordMinimum, path); err != nil {
		return nil, err
	}
	if frag.Maximum, err = readFloat(payload, KeywordMaximum, path); err != nil {
		return nil, err
	}
	if value, ok := payload[KeywordEnum]; ok {
		list, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("schema: %w: enum must be an array at %s", ErrInvalidValue, path)
		}
		frag.Enum = append([]any{}, list...)
	}
	return frag, nil
}

func validateKeywords(payload map[string]any, path string) error {
	for _, key := range sortedKeys(payload) {
		if _, ok := supportedKeywords[key]; ok || isVendorExtension(key) {
			continue
		}
		return fmt.Errorf("schema: unsupported keyword %q at %s", key, path)
	}
	return nil
}

func isVendorExtension(key string) bool {
	return strings.HasPrefix(key, "x-")
}

func readString(payload map[string]any, key, path string) (string, error) {
	value, ok := payload[key]
	if !ok || value == nil {
		return "", nil
	}
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("schema: %w: %s must be a string at %s", ErrInvalidValue, key, path)
	}
	return str, nil
}

func readInt(payload map[string]any, key, path string) (*int, error) {
	value, ok := payload[key]
	if !ok || value == nil {
		return nil, nil
	}
	n, ok := AsInt(value)
	if !ok {
		return nil, fmt.Errorf("schema: %w: %s must be an integer at %s", ErrInvalidValue, key, path)
	}
	return &n, nil
}

func readFloat(payload map[string]any, key, path string) (*float64, error) {
	value, ok := payload[key]
	if !ok || value == nil {
		return nil, nil
	}
	n, ok := AsFloat(value)
	if !ok {
		return nil, fmt.Errorf("schema: %w: %s must be a number at %s", ErrInvalidValue, key, path)
	}
	return &n, nil
}

// AsFloat converts the numeric types produced by JSON, YAML and Go callers.
func AsFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// AsInt converts whole numbers. Fractional floats are rejected.
func AsInt(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int(v), true
		}
		return 0, false
	case float32:
		if v == float32(math.Trunc(float64(v))) {
			return int(v), true
		}
		return 0, false
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	default:
		return 0, false
	}
}

// JoinPath appends escaped JSON pointer segments to path.
func JoinPath(path string, segments ...string) string {
	if path == "" || path == "#" {
		path = "#"
	}
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		path = path + "/" + escapeJSONPointer(segment)
	}
	return path
}

func escapeJSONPointer(value string) string {
	replacer := strings.NewReplacer("~", "~0", "/", "~1")
	return replacer.Replace(value)
}

func sortedKeys(payload map[string]any) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func clonePtr[T any](value *T) *T {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}
