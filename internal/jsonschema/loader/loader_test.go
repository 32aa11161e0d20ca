package loader

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jsonform/pkg/schema"
)

const profileSchemaJSON = `{
  "type": "object",
  "title": "Profile",
  "properties": {
    "name": {"type": "string", "title": "Full name"},
    "age": {"type": "integer"},
    "status": {"type": "string", "enum": ["open", "closed"]},
    "tags": {"type": "array", "items": {"type": "string"}},
    "address": {
      "type": "object",
      "properties": {
        "city": {"type": "string"}
      }
    }
  }
}`

func TestLoad_JSON(t *testing.T) {
	node, err := Load([]byte(profileSchemaJSON))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if node.Kind != schema.KindObject {
		t.Fatalf("root kind = %q", node.Kind)
	}
	if node.Label != "Profile" {
		t.Fatalf("root label = %q", node.Label)
	}

	name, ok := node.Child("name")
	if !ok || name.Kind != schema.KindString {
		t.Fatalf("name = %+v", name)
	}
	if name.Label != "Full name" {
		t.Fatalf("name label = %q", name.Label)
	}

	age, _ := node.Child("age")
	if age.Kind != schema.KindNumber {
		t.Fatalf("age kind = %q", age.Kind)
	}

	status, _ := node.Child("status")
	if diff := cmp.Diff([]any{"open", "closed"}, status.Possible); diff != "" {
		t.Fatalf("possible mismatch (-want +got):\n%s", diff)
	}

	tags, _ := node.Child("tags")
	if tags.Kind != schema.KindArray || tags.Items == nil || tags.Items.Kind != schema.KindString {
		t.Fatalf("tags = %+v", tags)
	}

	address, _ := node.Child("address")
	city, ok := address.Child("city")
	if !ok || city.Kind != schema.KindString {
		t.Fatalf("city = %+v", city)
	}
}

func TestLoad_PropertyOrderIsSorted(t *testing.T) {
	node, err := Load([]byte(`{"type":"object","properties":{"zulu":{"type":"string"},"alpha":{"type":"string"}}}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"alpha", "zulu"}, node.Order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_YAML(t *testing.T) {
	raw := []byte(`
type: object
title: Profile
properties:
  name:
    type: string
  active:
    type: boolean
`)
	node, err := Load(raw)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if node.Kind != schema.KindObject {
		t.Fatalf("root kind = %q", node.Kind)
	}
	active, ok := node.Child("active")
	if !ok || active.Kind != schema.KindBoolean {
		t.Fatalf("active = %+v", active)
	}
}

func TestLoad_ImplicitKinds(t *testing.T) {
	// properties without an explicit type imply object, items imply array.
	node, err := Load([]byte(`{"properties":{"name":{"type":"string"}}}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if node.Kind != schema.KindObject {
		t.Fatalf("kind = %q", node.Kind)
	}

	node, err = Load([]byte(`{"items":{"type":"number"}}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if node.Kind != schema.KindArray {
		t.Fatalf("kind = %q", node.Kind)
	}
}

func TestLoad_RejectsGarbage(t *testing.T) {
	if _, err := Load([]byte("[unclosed")); err == nil {
		t.Fatal("expected error")
	}
}
