package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Schema is the top-level draft-04 document produced for a whole form.
// Properties keep the insertion order of the source form.
type Schema struct {
	Dialect     string
	Title       string
	Description string
	Properties  *orderedmap.OrderedMap[string, *Fragment]
}

// New returns an empty schema with the default envelope.
func New() *Schema {
	return &Schema{
		Dialect:     Draft04,
		Title:       DefaultTitle,
		Description: DefaultDescription,
		Properties:  orderedmap.New[string, *Fragment](),
	}
}

// Set stores frag under name. Replacing an existing name keeps its position.
func (s *Schema) Set(name string, frag *Fragment) {
	if s.Properties == nil {
		s.Properties = orderedmap.New[string, *Fragment]()
	}
	s.Properties.Set(name, frag)
}

// Property returns the fragment stored under name.
func (s *Schema) Property(name string) (*Fragment, bool) {
	if s == nil || s.Properties == nil {
		return nil, false
	}
	return s.Properties.Get(name)
}

// Len returns the number of properties.
func (s *Schema) Len() int {
	if s == nil || s.Properties == nil {
		return 0
	}
	return s.Properties.Len()
}

// Names lists property names in order.
func (s *Schema) Names() []string {
	names := make([]string, 0, s.Len())
	_ = s.Range(func(name string, _ *Fragment) error {
		names = append(names, name)
		return nil
	})
	return names
}

// Range calls fn for every property in order and stops at the first error.
func (s *Schema) Range(fn func(name string, frag *Fragment) error) error {
	if s == nil || s.Properties == nil {
		return nil
	}
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		if err := fn(pair.Key, pair.Value); err != nil {
			return err
		}
	}
	return nil
}

type jsonEnvelope struct {
	Dialect     string                                    `json:"$schema"`
	Title       string                                    `json:"title,omitempty"`
	Description string                                    `json:"description,omitempty"`
	Properties  *orderedmap.OrderedMap[string, *Fragment] `json:"properties"`
}

// MarshalJSON writes the envelope followed by the ordered properties.
func (s Schema) MarshalJSON() ([]byte, error) {
	props := s.Properties
	if props == nil {
		props = orderedmap.New[string, *Fragment]()
	}
	return json.Marshal(jsonEnvelope{
		Dialect:     dialectOrDefault(s.Dialect),
		Title:       s.Title,
		Description: s.Description,
		Properties:  props,
	})
}

// UnmarshalJSON parses a schema document, keeping property order and
// reporting fragment errors with their JSON pointer.
func (s *Schema) UnmarshalJSON(data []byte) error {
	payload := struct {
		Dialect     string                                         `json:"$schema"`
		Title       string                                         `json:"title"`
		Description string                                         `json:"description"`
		Type        string                                         `json:"type"`
		Properties  *orderedmap.OrderedMap[string, json.RawMessage] `json:"properties"`
	}{
		Properties: orderedmap.New[string, json.RawMessage](),
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("schema: decode document: %w", err)
	}
	if err := checkEnvelope(payload.Dialect, payload.Type); err != nil {
		return err
	}

	out := Schema{
		Dialect:     dialectOrDefault(payload.Dialect),
		Title:       payload.Title,
		Description: payload.Description,
		Properties:  orderedmap.New[string, *Fragment](),
	}
	if payload.Properties != nil {
		for pair := payload.Properties.Oldest(); pair != nil; pair = pair.Next() {
			path := JoinPath("#", "properties", pair.Key)
			var body map[string]any
			decoder := json.NewDecoder(bytes.NewReader(pair.Value))
			if err := decoder.Decode(&body); err != nil {
				return fmt.Errorf("schema: decode %s: %w", path, err)
			}
			frag, err := FragmentFromMap(body, path)
			if err != nil {
				return err
			}
			out.Properties.Set(pair.Key, frag)
		}
	}
	*s = out
	return nil
}

// MarshalYAML emits the envelope and properties as an ordered mapping node.
func (s Schema) MarshalYAML() (any, error) {
	props := &yaml.Node{Kind: yaml.MappingNode}
	if s.Properties != nil {
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			value := &yaml.Node{}
			if err := value.Encode(pair.Value); err != nil {
				return nil, fmt.Errorf("schema: encode property %q: %w", pair.Key, err)
			}
			props.Content = append(props.Content, stringNode(pair.Key), value)
		}
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content, stringNode("$schema"), stringNode(dialectOrDefault(s.Dialect)))
	if s.Title != "" {
		root.Content = append(root.Content, stringNode("title"), stringNode(s.Title))
	}
	if s.Description != "" {
		root.Content = append(root.Content, stringNode("description"), stringNode(s.Description))
	}
	root.Content = append(root.Content, stringNode("properties"), props)
	return root, nil
}

// UnmarshalYAML parses a YAML schema document in property order.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("schema: document must be a mapping")
	}

	out := Schema{Properties: orderedmap.New[string, *Fragment]()}
	var typ string
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		var err error
		switch key {
		case "$schema":
			err = value.Decode(&out.Dialect)
		case "title":
			err = value.Decode(&out.Title)
		case "description":
			err = value.Decode(&out.Description)
		case "type":
			err = value.Decode(&typ)
		case "properties":
			err = decodeYAMLProperties(value, out.Properties)
		}
		if err != nil {
			return err
		}
	}
	if err := checkEnvelope(out.Dialect, typ); err != nil {
		return err
	}
	out.Dialect = dialectOrDefault(out.Dialect)
	*s = out
	return nil
}

func decodeYAMLProperties(node *yaml.Node, into *orderedmap.OrderedMap[string, *Fragment]) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("schema: properties must be a mapping")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		path := JoinPath("#", "properties", name)
		var body map[string]any
		if err := node.Content[i+1].Decode(&body); err != nil {
			return fmt.Errorf("schema: decode %s: %w", path, err)
		}
		frag, err := FragmentFromMap(body, path)
		if err != nil {
			return err
		}
		into.Set(name, frag)
	}
	return nil
}

// Parse reads a JSON or YAML schema document.
func Parse(raw []byte) (*Schema, error) {
	out := &Schema{}
	var err error
	switch DetectEncoding(raw) {
	case EncodingJSON:
		err = json.Unmarshal(raw, out)
	default:
		err = yaml.Unmarshal(raw, out)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParseDocument parses a loaded document using its encoding.
func ParseDocument(doc Document) (*Schema, error) {
	out := &Schema{}
	var err error
	switch doc.Encoding() {
	case EncodingJSON:
		err = json.Unmarshal(doc.Raw(), out)
	default:
		err = yaml.Unmarshal(doc.Raw(), out)
	}
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, doc.Location())
	}
	return out, nil
}

// Marshal encodes s with the requested encoding. JSON output is indented.
func Marshal(s *Schema, encoding Encoding) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("schema: nil schema")
	}
	switch encoding {
	case EncodingYAML:
		return yaml.Marshal(s)
	case EncodingJSON, "":
		return json.MarshalIndent(s, "", "  ")
	default:
		return nil, fmt.Errorf("schema: unsupported encoding %q", encoding)
	}
}

func checkEnvelope(dialect, typ string) error {
	if dialect != "" && strings.TrimSuffix(dialect, "#") != strings.TrimSuffix(Draft04, "#") {
		return fmt.Errorf("schema: unsupported $schema %q, want %q", dialect, Draft04)
	}
	if typ != "" && typ != "object" {
		return fmt.Errorf("schema: top-level type must be object, got %q", typ)
	}
	return nil
}

func dialectOrDefault(dialect string) string {
	if dialect == "" {
		return Draft04
	}
	return dialect
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
