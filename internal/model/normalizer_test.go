package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jsonform/pkg/document"
	"github.com/goliatone/go-jsonform/pkg/schema"
)

func TestNormalize_DecoratesMetadata(t *testing.T) {
	b := New(Options{})
	inferred := b.Infer(document.FromPairs(
		"name", "Helen",
		"address", document.FromPairs("city", "Oslo"),
	))

	normalized := b.Normalize(inferred, nil)

	name, _ := normalized.Child("name")
	if name.Name != "name" || name.Path != "name" || name.Label != "name" {
		t.Fatalf("name metadata = %+v", name)
	}

	address, _ := normalized.Child("address")
	city, _ := address.Child("city")
	if city.Path != "address.city" {
		t.Fatalf("city path = %q", city.Path)
	}
	if city.Name != "city" {
		t.Fatalf("city name = %q", city.Name)
	}
}

func TestNormalize_DoesNotMutateInputs(t *testing.T) {
	b := New(Options{})
	inferred := b.Infer(document.FromPairs("name", "Helen"))
	user := &schema.Node{
		Children: map[string]*schema.Node{
			"name": {Label: "Full name"},
		},
	}

	b.Normalize(inferred, user)

	child, _ := inferred.Child("name")
	if child.Label != "" || child.Path != "" {
		t.Fatal("normalize mutated the inferred tree")
	}
	if user.Children["name"].Path != "" {
		t.Fatal("normalize mutated the user overlay")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	b := New(Options{})
	inferred := b.Infer(document.FromPairs(
		"name", "Helen",
		"tags", []any{"a"},
		"address", document.FromPairs("city", "Oslo"),
	))

	once := b.Normalize(inferred, nil)
	twice := b.Normalize(once, nil)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("not idempotent (-want +got):\n%s", diff)
	}
}

func TestNormalize_OverlayWins(t *testing.T) {
	b := New(Options{})
	inferred := b.Infer(document.FromPairs("age", "30"))
	user := &schema.Node{
		Children: map[string]*schema.Node{
			"age": {Kind: schema.KindNumber, Label: "Age in years"},
		},
	}

	normalized := b.Normalize(inferred, user)
	age, _ := normalized.Child("age")
	if age.Kind != schema.KindNumber {
		t.Fatalf("kind = %q", age.Kind)
	}
	if age.Label != "Age in years" {
		t.Fatalf("label = %q", age.Label)
	}
}

func TestNormalize_OverlayOrderWins(t *testing.T) {
	b := New(Options{})
	inferred := b.Infer(document.FromPairs("a", 1, "b", 2, "c", 3))
	user := &schema.Node{Order: []string{"c", "a", "b"}}

	normalized := b.Normalize(inferred, user)
	if diff := cmp.Diff([]string{"c", "a", "b"}, normalized.Order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_OrderDropsUnknownAndAppendsMissing(t *testing.T) {
	b := New(Options{})
	inferred := b.Infer(document.FromPairs("a", 1, "b", 2, "c", 3))
	user := &schema.Node{Order: []string{"b", "ghost", "b"}}

	normalized := b.Normalize(inferred, user)
	if diff := cmp.Diff([]string{"b", "a", "c"}, normalized.Order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_OverlayAddsNewFields(t *testing.T) {
	b := New(Options{})
	inferred := b.Infer(document.FromPairs("name", "Helen"))
	user := &schema.Node{
		Children: map[string]*schema.Node{
			"nickname": {Kind: schema.KindString},
		},
	}

	normalized := b.Normalize(inferred, user)
	nickname, ok := normalized.Child("nickname")
	if !ok {
		t.Fatal("overlay-only field missing")
	}
	if nickname.Path != "nickname" {
		t.Fatalf("path = %q", nickname.Path)
	}
	if diff := cmp.Diff([]string{"name", "nickname"}, normalized.Order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_KindFromPossible(t *testing.T) {
	b := New(Options{})
	user := &schema.Node{
		Kind: schema.KindObject,
		Children: map[string]*schema.Node{
			"priority": {Possible: []any{float64(1), float64(2), float64(3)}},
			"status":   {Possible: []any{"open", "closed"}},
		},
	}

	normalized := b.Normalize(nil, user)
	priority, _ := normalized.Child("priority")
	if priority.Kind != schema.KindNumber {
		t.Fatalf("priority kind = %q", priority.Kind)
	}
	status, _ := normalized.Child("status")
	if status.Kind != schema.KindString {
		t.Fatalf("status kind = %q", status.Kind)
	}
}

func TestNormalize_UntypedNodeStaysUndefined(t *testing.T) {
	b := New(Options{})
	user := &schema.Node{
		Kind: schema.KindObject,
		Children: map[string]*schema.Node{
			"mystery": {},
		},
	}

	normalized := b.Normalize(nil, user)
	mystery, _ := normalized.Child("mystery")
	if mystery.Kind != "" && mystery.Kind != schema.KindUndefined {
		t.Fatalf("kind = %q", mystery.Kind)
	}
}

func TestNormalize_ArrayItemsDecorated(t *testing.T) {
	b := New(Options{})
	inferred := b.Infer(document.FromPairs(
		"items", []any{document.FromPairs("sku", "A-1")},
	))

	normalized := b.Normalize(inferred, nil)
	items, _ := normalized.Child("items")
	sku, ok := items.Items.Child("sku")
	if !ok {
		t.Fatal("element schema lost its child")
	}
	if sku.Path != "items.sku" {
		t.Fatalf("sku path = %q", sku.Path)
	}
}

func TestNormalize_PolicyFlagsAccumulate(t *testing.T) {
	b := New(Options{})
	inferred := &schema.Node{Kind: schema.KindObject, Deletable: true}
	user := &schema.Node{AddField: true}

	normalized := b.Normalize(inferred, user)
	if !normalized.Deletable || !normalized.AddField {
		t.Fatalf("flags = %+v", normalized)
	}
}

func TestNormalize_HumanizeLabeler(t *testing.T) {
	b := New(Options{Labeler: HumanizeLabeler})
	inferred := b.Infer(document.FromPairs("first_name", "H", "homeAddress", "x"))

	normalized := b.Normalize(inferred, nil)
	first, _ := normalized.Child("first_name")
	if first.Label != "First Name" {
		t.Fatalf("label = %q", first.Label)
	}
	home, _ := normalized.Child("homeAddress")
	if home.Label != "Home Address" {
		t.Fatalf("label = %q", home.Label)
	}
}

func TestHumanizeLabeler(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"name", "Name"},
		{"first_name", "First Name"},
		{"home-address", "Home Address"},
		{"homeAddress", "Home Address"},
		{"line2Text", "Line 2 Text"},
		{"  spaced  out  ", "Spaced Out"},
	}
	for _, tc := range tests {
		if got := HumanizeLabeler(tc.in); got != tc.want {
			t.Fatalf("HumanizeLabeler(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMergeValues(t *testing.T) {
	a := document.FromPairs(
		"name", "Helen",
		"address", document.FromPairs("city", "Oslo", "zip", "0150"),
	)
	b := document.FromPairs(
		"age", float64(30),
		"address", document.FromPairs("city", "Bergen"),
	)

	got := MergeValues(a, b)
	if got != a {
		t.Fatal("expected merge to mutate and return the left side")
	}
	if got.Value("name") != "Helen" {
		t.Fatal("left-only key lost")
	}
	if got.Value("age") != float64(30) {
		t.Fatal("right-only key missing")
	}
	address := got.Value("address").(*document.Object)
	if address.Value("city") != "Bergen" {
		t.Fatalf("nested overwrite failed: %v", address.Value("city"))
	}
	if address.Value("zip") != "0150" {
		t.Fatal("nested left-only key lost")
	}
}

func TestMergeValues_ShapeMismatchOverwrites(t *testing.T) {
	a := document.FromPairs("field", document.FromPairs("x", 1))
	b := document.FromPairs("field", "scalar now")

	got := MergeValues(a, b)
	if got.Value("field") != "scalar now" {
		t.Fatalf("field = %v", got.Value("field"))
	}
}

func TestMergeValues_NilSides(t *testing.T) {
	obj := document.FromPairs("k", 1)
	if MergeValues(nil, obj) != obj {
		t.Fatal("nil left should return right")
	}
	if MergeValues(obj, nil) != obj {
		t.Fatal("nil right should return left")
	}
}
