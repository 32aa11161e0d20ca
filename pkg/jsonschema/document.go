package jsonschema

import "errors"

// Document wraps a raw schema payload together with its origin. The payload
// may be JSON or YAML; the parser decides.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("jsonschema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("jsonschema: raw document is empty")
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

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the raw payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}
