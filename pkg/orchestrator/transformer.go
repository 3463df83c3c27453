package orchestrator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// Transformer mutates an assembled schema before FormToSchema returns it.
// Implementations can rename properties, retitle fields or add widget hints.
type Transformer interface {
	Transform(s *schema.Schema) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(s *schema.Schema) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(s *schema.Schema) error {
	if fn == nil {
		return nil
	}
	return fn(s)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file.
// The document shape supports envelope overrides and per-property patches:
//
//	{
//	  "title": "Signup",
//	  "properties": {
//	    "email": {"title": "Work email", "widget": "email-input", "rename": "work_email"}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Title       string                       `json:"title"`
	Description string                       `json:"description"`
	Properties  map[string]jsonPropertyPatch `json:"properties"`
}

type jsonPropertyPatch struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Widget      string `json:"widget"`
	Optional    *bool  `json:"optional"`
	Rename      string `json:"rename"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied schema.
func (t *JSONPresetTransformer) Transform(s *schema.Schema) error {
	if s == nil {
		return errors.New("json preset transformer: schema is nil")
	}

	if t.document.Title != "" {
		s.Title = t.document.Title
	}
	if t.document.Description != "" {
		s.Description = t.document.Description
	}

	renames := make(map[string]string)
	for name, patch := range t.document.Properties {
		frag, ok := s.Property(name)
		if !ok {
			return fmt.Errorf("json preset transformer: property %q not found", name)
		}
		applyPropertyPatch(frag, patch)
		if rename := strings.TrimSpace(patch.Rename); rename != "" && rename != name {
			renames[name] = rename
		}
	}
	if len(renames) == 0 {
		return nil
	}
	return renameProperties(s, renames)
}

func applyPropertyPatch(frag *schema.Fragment, patch jsonPropertyPatch) {
	if frag == nil {
		return
	}
	if patch.Title != "" {
		frag.Title = patch.Title
	}
	if patch.Description != "" {
		frag.Description = patch.Description
	}
	if patch.Widget != "" {
		frag.Widget = patch.Widget
	}
	if patch.Optional != nil {
		optional := *patch.Optional
		frag.Optional = &optional
	}
}

// renameProperties rebuilds the property map so renamed entries keep their
// position.
func renameProperties(s *schema.Schema, renames map[string]string) error {
	props := orderedmap.New[string, *schema.Fragment]()
	err := s.Range(func(name string, frag *schema.Fragment) error {
		if rename, ok := renames[name]; ok {
			name = rename
		}
		if _, exists := props.Get(name); exists {
			return fmt.Errorf("json preset transformer: rename collides with property %q", name)
		}
		props.Set(name, frag)
		return nil
	})
	if err != nil {
		return err
	}
	s.Properties = props
	return nil
}
