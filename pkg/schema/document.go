package schema

import (
	"bytes"
	"errors"
	"path"
	"strings"
)

// Encoding names the serialisation of a document.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingYAML Encoding = "yaml"
)

// Document wraps a raw payload together with its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument validates the inputs and copies raw.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Encoding guesses the payload encoding from the location extension, falling
// back to sniffing the first non-space byte.
func (d Document) Encoding() Encoding {
	switch strings.ToLower(path.Ext(d.Location())) {
	case ".json":
		return EncodingJSON
	case ".yaml", ".yml":
		return EncodingYAML
	}
	return DetectEncoding(d.raw)
}

// DetectEncoding reports JSON when the payload starts with an object or array.
func DetectEncoding(raw []byte) Encoding {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return EncodingJSON
	}
	return EncodingYAML
}
