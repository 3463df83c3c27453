package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// SchemaIssue represents a validation error with optional location metadata.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// SchemaValidationResult captures the outcome of a schema check.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

var defineFormats sync.Once

// registerFormats enables the string formats fragments use. kin-openapi
// only checks date and date-time out of the box.
func registerFormats() {
	defineFormats.Do(func() {
		openapi3.DefineIPv4Format()
		openapi3.DefineIPv6Format()
		openapi3.DefineStringFormatValidator(schema.FormatEmail, openapi3.NewRegexpFormatValidator(openapi3.FormatOfStringForEmail))
	})
}

// ValidateJSONSchema parses raw and checks every property.
func ValidateJSONSchema(ctx context.Context, src schema.Source, raw []byte) SchemaValidationResult {
	if src == nil {
		src = schema.SourceFromFS("schema.json")
	}
	doc, err := schema.NewDocument(src, raw)
	if err != nil {
		return SchemaValidationResult{Issues: []SchemaIssue{issueFromError(err)}}
	}
	parsed, err := schema.ParseDocument(doc)
	if err != nil {
		return SchemaValidationResult{Issues: []SchemaIssue{issueFromError(err)}}
	}
	return CheckSchema(ctx, parsed)
}

// CheckSchema converts each property to an OpenAPI schema and runs its
// structural validation: bounds, compiled patterns and defaults that match
// their own fragment.
func CheckSchema(ctx context.Context, s *schema.Schema) SchemaValidationResult {
	registerFormats()
	result := SchemaValidationResult{Valid: true}
	if s == nil {
		result.Valid = false
		result.Issues = []SchemaIssue{{Message: "schema is nil"}}
		return result
	}
	if s.Dialect != "" && s.Dialect != schema.Draft04 {
		result.Valid = false
		result.Issues = append(result.Issues, SchemaIssue{
			Path:    "#/$schema",
			Message: fmt.Sprintf("unsupported dialect %q", s.Dialect),
		})
	}

	_ = s.Range(func(name string, frag *schema.Fragment) error {
		path := schema.JoinPath("#", "properties", name)
		if err := ctx.Err(); err != nil {
			result.Issues = append(result.Issues, SchemaIssue{Path: path, Field: name, Message: err.Error()})
			return err
		}
		converted, err := ToOpenAPI(frag)
		if err == nil {
			err = converted.Validate(ctx)
		}
		if err == nil {
			err = checkListDefault(frag, converted)
		}
		if err != nil {
			result.Issues = append(result.Issues, SchemaIssue{
				Path:    path,
				Field:   name,
				Message: strings.TrimSpace(err.Error()),
			})
		}
		return nil
	})
	if len(result.Issues) > 0 {
		result.Valid = false
	}
	return result
}

// checkListDefault validates a multiple choice default item by item.
// ToOpenAPI leaves list defaults out because the fragment types one item.
func checkListDefault(frag *schema.Fragment, converted *openapi3.Schema) error {
	items, ok := listItems(frag.Default)
	if !ok {
		return nil
	}
	if len(frag.Enum) == 0 {
		return errors.New("a list default requires enum choices")
	}
	for idx, item := range items {
		if err := converted.VisitJSON(normaliseValue(item), openapi3.MultiErrors()); err != nil {
			return fmt.Errorf("default item %d: %w", idx, err)
		}
	}
	return nil
}

// ValidateValue checks one submitted value against a fragment. A nil value
// passes when the fragment is optional. A list is accepted for choice
// fragments and checked item by item.
func ValidateValue(frag *schema.Fragment, value any) error {
	registerFormats()
	if frag == nil {
		return errors.New("validation: fragment is nil")
	}
	if value == nil {
		if frag.IsOptional() {
			return nil
		}
		return errors.New("validation: value is required")
	}
	converted, err := ToOpenAPI(frag)
	if err != nil {
		return err
	}
	if items, ok := listItems(value); ok {
		if len(frag.Enum) == 0 {
			return errors.New("validation: list values require enum choices")
		}
		for _, item := range items {
			if err := converted.VisitJSON(normaliseValue(item), openapi3.MultiErrors()); err != nil {
				return fmt.Errorf("validation: %w", err)
			}
		}
		return nil
	}
	if err := converted.VisitJSON(normaliseValue(value), openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("validation: %w", err)
	}
	return nil
}

// ToOpenAPI maps a fragment onto the equivalent kin-openapi schema. Markers
// and the optional flag have no OpenAPI counterpart and are dropped, as are
// list defaults (see CheckSchema).
func ToOpenAPI(frag *schema.Fragment) (*openapi3.Schema, error) {
	if frag == nil {
		return nil, errors.New("validation: fragment is nil")
	}

	var out *openapi3.Schema
	switch frag.Type {
	case schema.TypeBoolean:
		out = openapi3.NewBoolSchema()
	case schema.TypeString:
		out = openapi3.NewStringSchema()
	case schema.TypeInteger:
		out = openapi3.NewIntegerSchema()
	case schema.TypeNumber:
		out = openapi3.NewFloat64Schema()
	default:
		return nil, model.NewUnresolvableSchemaType("openapi", frag.Type)
	}

	out.Title = frag.Title
	out.Description = frag.Description
	if _, ok := listItems(frag.Default); !ok {
		out.Default = normaliseValue(frag.Default)
	}
	out.Format = frag.Format
	out.Pattern = frag.Pattern
	out.Min = frag.Minimum
	out.Max = frag.Maximum
	if frag.MinLength != nil {
		if *frag.MinLength < 0 {
			return nil, model.NewInvalidConstraintValue("openapi", schema.KeywordMinLength,
				fmt.Errorf("minLength must not be negative, got %d", *frag.MinLength))
		}
		out.MinLength = uint64(*frag.MinLength)
	}
	if frag.MaxLength != nil {
		if *frag.MaxLength < 0 {
			return nil, model.NewInvalidConstraintValue("openapi", schema.KeywordMaxLength,
				fmt.Errorf("maxLength must not be negative, got %d", *frag.MaxLength))
		}
		limit := uint64(*frag.MaxLength)
		out.MaxLength = &limit
	}
	if len(frag.Enum) > 0 {
		out.Enum = make([]any, 0, len(frag.Enum))
		for _, choice := range frag.Enum {
			out.Enum = append(out.Enum, normaliseValue(choice))
		}
	}
	return out, nil
}

// normaliseValue converts Go numeric types to float64, the only number type
// the OpenAPI visitor understands in every position.
func normaliseValue(value any) any {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normaliseValue(item)
		}
		return out
	}
	return value
}

func listItems(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	}
	return nil, false
}

func issueFromError(err error) SchemaIssue {
	if err == nil {
		return SchemaIssue{Message: "unknown error"}
	}
	msg := strings.TrimSpace(err.Error())
	path := extractJSONPointer(msg)
	if path != "" {
		msg = strings.Replace(msg, " at "+path, "", 1)
	}
	msg = strings.TrimPrefix(msg, "schema: ")
	msg = strings.TrimSpace(msg)

	return SchemaIssue{
		Path:    path,
		Field:   fieldPathFromPointer(path),
		Message: msg,
	}
}

func extractJSONPointer(message string) string {
	if message == "" {
		return ""
	}
	if idx := strings.LastIndex(message, " at "); idx >= 0 {
		candidate := strings.TrimSpace(message[idx+4:])
		return trimPointer(candidate)
	}
	if idx := strings.LastIndex(message, "#/"); idx >= 0 {
		candidate := strings.TrimSpace(message[idx:])
		return trimPointer(candidate)
	}
	return ""
}

func trimPointer(pointer string) string {
	if pointer == "" {
		return ""
	}
	trimmed := strings.TrimRight(pointer, ".)];,:")
	return strings.TrimSpace(trimmed)
}

// fieldPathFromPointer turns "#/properties/first_name" into "first_name".
func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for idx := 0; idx < len(parts); idx++ {
		segment := unescapePointer(parts[idx])
		switch {
		case segment == "properties" && idx+1 < len(parts):
			out = append(out, unescapePointer(parts[idx+1]))
			idx++
		case segment == "properties", segment == "":
		default:
			out = append(out, segment)
		}
	}
	return strings.Join(out, ".")
}

func unescapePointer(segment string) string {
	segment = strings.ReplaceAll(segment, "~1", "/")
	return strings.ReplaceAll(segment, "~0", "~")
}
