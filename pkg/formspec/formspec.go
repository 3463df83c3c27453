// Package formspec reads and writes declarative form documents: a library
// name plus an ordered list of field declarations. The CLI uses it to feed
// forms into the translators without Go code.
package formspec

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formschema/pkg/formlib"
	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// Document declares a form for one library.
type Document struct {
	Library string              `json:"library" yaml:"library"`
	Fields  []formlib.FieldSpec `json:"fields" yaml:"fields"`
}

// Parse decodes a JSON or YAML form document. Unknown keys are rejected.
func Parse(raw []byte) (*Document, error) {
	doc := &Document{}
	switch schema.DetectEncoding(raw) {
	case schema.EncodingJSON:
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(doc); err != nil {
			return nil, fmt.Errorf("formspec: decode json: %w", err)
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(raw))
		decoder.KnownFields(true)
		if err := decoder.Decode(doc); err != nil {
			return nil, fmt.Errorf("formspec: decode yaml: %w", err)
		}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Load fetches src through loader and parses it.
func Load(ctx context.Context, loader schema.Loader, src schema.Source) (*Document, error) {
	if loader == nil {
		return nil, errors.New("formspec: loader is required")
	}
	loaded, err := loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(loaded.Raw())
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, loaded.Location())
	}
	return doc, nil
}

// Validate checks the document shape. Class names are left to the library.
func (d *Document) Validate() error {
	if d == nil {
		return errors.New("formspec: document is nil")
	}
	if strings.TrimSpace(d.Library) == "" {
		return errors.New("formspec: library is required")
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for idx, field := range d.Fields {
		if strings.TrimSpace(field.Name) == "" {
			return fmt.Errorf("formspec: fields[%d]: name is required", idx)
		}
		if strings.TrimSpace(field.Class) == "" {
			return fmt.Errorf("formspec: field %q: class is required", field.Name)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("formspec: field %q declared twice", field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}

// Build constructs the declared form using the library registered under
// doc.Library.
func Build(doc *Document, registry *formlib.Registry) (formlib.Form, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, errors.New("formspec: registry is required")
	}
	lib, err := registry.Get(doc.Library)
	if err != nil {
		return nil, fmt.Errorf("formspec: %w", err)
	}

	fields := make([]formlib.NamedField, 0, len(doc.Fields))
	for _, spec := range doc.Fields {
		// Known but untranslatable classes are refused too.
		if _, ok := lib.KindOf(formlib.Marker(lib.Name(), spec.Class)); !ok {
			return nil, fmt.Errorf("formspec: field %q: %w", spec.Name, model.NewUnsupportedFieldKind("build", spec.Class))
		}
		field, err := lib.FromSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("formspec: %w", err)
		}
		fields = append(fields, formlib.NamedField{Name: spec.Name, Field: field})
	}
	return lib.NewForm(fields)
}

// FromForm declares an existing form.
func FromForm(form formlib.Form, registry *formlib.Registry) (*Document, error) {
	if form == nil {
		return nil, errors.New("formspec: form is required")
	}
	if registry == nil {
		return nil, errors.New("formspec: registry is required")
	}
	lib, err := registry.Get(form.Library())
	if err != nil {
		return nil, fmt.Errorf("formspec: %w", err)
	}

	named := form.Fields()
	doc := &Document{Library: lib.Name(), Fields: make([]formlib.FieldSpec, 0, len(named))}
	for _, entry := range named {
		spec, err := lib.ToSpec(entry.Field)
		if err != nil {
			return nil, fmt.Errorf("formspec: field %q: %w", entry.Name, err)
		}
		spec.Name = entry.Name
		doc.Fields = append(doc.Fields, spec)
	}
	return doc, nil
}

// Marshal encodes doc. JSON output is indented.
func Marshal(doc *Document, encoding schema.Encoding) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("formspec: document is nil")
	}
	switch encoding {
	case schema.EncodingYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return nil, fmt.Errorf("formspec: encode yaml: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("formspec: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case schema.EncodingJSON, "":
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("formspec: encode json: %w", err)
		}
		return append(out, '\n'), nil
	}
	return nil, fmt.Errorf("formspec: unsupported encoding %q", encoding)
}
