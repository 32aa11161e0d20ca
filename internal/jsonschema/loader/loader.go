// Package loader turns JSON Schema documents into schema-node overlays the
// normalizer can merge over an inferred tree. Documents may be JSON or YAML;
// parsing rides on the openapi3 schema model, which understands both drafts
// well enough for the subset a form overlay needs (types, titles, enums,
// defaults, properties, items).
package loader

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-jsonform/pkg/schema"
)

// Load parses a JSON Schema document into a schema-node overlay.
func Load(raw []byte) (*schema.Node, error) {
	payload, err := toJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("jsonschema loader: read document: %w", err)
	}

	var doc openapi3.Schema
	if err := doc.UnmarshalJSON(payload); err != nil {
		return nil, fmt.Errorf("jsonschema loader: parse document: %w", err)
	}
	return fromSchema(&doc), nil
}

// toJSON passes JSON input through untouched and re-encodes YAML input as
// JSON so a single parser handles both.
func toJSON(raw []byte) ([]byte, error) {
	if json.Valid(raw) {
		return raw, nil
	}
	var value any
	if err := yaml.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return json.Marshal(normalizeYAML(value))
}

// normalizeYAML rewrites yaml.v3's map[string]any values so nested
// map[any]any shapes (possible with non-string keys) become JSON-encodable.
func normalizeYAML(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprintf("%v", key)] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}

func fromSchema(src *openapi3.Schema) *schema.Node {
	if src == nil {
		return nil
	}

	node := &schema.Node{
		Kind:  kindFromType(src.Type),
		Label: src.Title,
	}
	if len(src.Enum) > 0 {
		node.Possible = append([]any(nil), src.Enum...)
	}

	if len(src.Properties) > 0 {
		if node.Kind == "" {
			node.Kind = schema.KindObject
		}
		names := make([]string, 0, len(src.Properties))
		for name := range src.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			child := fromRef(src.Properties[name])
			if child == nil {
				continue
			}
			node.PutChild(name, child)
		}
	}
	if src.Items != nil {
		if node.Kind == "" {
			node.Kind = schema.KindArray
		}
		node.Items = fromRef(src.Items)
	}
	return node
}

func fromRef(ref *openapi3.SchemaRef) *schema.Node {
	if ref == nil || ref.Value == nil {
		return nil
	}
	return fromSchema(ref.Value)
}

func kindFromType(types *openapi3.Types) schema.Kind {
	if types == nil {
		return ""
	}
	for _, t := range types.Slice() {
		switch t {
		case "string":
			return schema.KindString
		case "number", "integer":
			return schema.KindNumber
		case "boolean":
			return schema.KindBoolean
		case "array":
			return schema.KindArray
		case "object":
			return schema.KindObject
		case "null":
			return schema.KindNull
		}
	}
	return ""
}
