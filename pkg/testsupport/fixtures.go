package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// MustLoadSchema reads a JSON or YAML schema fixture.
func MustLoadSchema(t *testing.T, path string) *schema.Schema {
	t.Helper()

	s, err := LoadSchemaFromPath(path)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return s
}

// LoadSchemaFromPath returns a parsed schema without requiring testing.T, so
// callers can wire fixtures in setup functions.
func LoadSchemaFromPath(path string) (*schema.Schema, error) {
	if path == "" {
		return nil, errors.New("testsupport: schema path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read schema: %w", err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(path), data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: new document: %w", err)
	}
	s, err := schema.ParseDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse schema: %w", err)
	}
	return s, nil
}

// WriteSchemaGolden writes s as indented JSON when UPDATE_GOLDENS is set.
// Returns true if the golden was written (test should exit early).
func WriteSchemaGolden(t *testing.T, path string, s *schema.Schema) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := schema.Marshal(s, schema.EncodingJSON)
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	return WriteMaybeGolden(t, path, payload)
}

// DiffSchema compares two schemas after a JSON round trip, so numeric
// defaults compare equal whatever Go type produced them. Property order is
// part of the comparison.
func DiffSchema(want, got *schema.Schema) (string, error) {
	normalise := func(s *schema.Schema) (map[string]any, error) {
		payload, err := schema.Marshal(s, schema.EncodingJSON)
		if err != nil {
			return nil, err
		}
		parsed, err := schema.Parse(payload)
		if err != nil {
			return nil, err
		}
		out := map[string]any{
			"$schema":     parsed.Dialect,
			"title":       parsed.Title,
			"description": parsed.Description,
			"order":       parsed.Names(),
		}
		_ = parsed.Range(func(name string, frag *schema.Fragment) error {
			out["properties."+name] = frag
			return nil
		})
		return out, nil
	}
	left, err := normalise(want)
	if err != nil {
		return "", fmt.Errorf("testsupport: normalise want: %w", err)
	}
	right, err := normalise(got)
	if err != nil {
		return "", fmt.Errorf("testsupport: normalise got: %w", err)
	}
	return cmp.Diff(left, right), nil
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
