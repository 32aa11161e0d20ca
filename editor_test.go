package jsonform

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jsonform/pkg/document"
	"github.com/goliatone/go-jsonform/pkg/path"
	"github.com/goliatone/go-jsonform/pkg/schema"
	"github.com/goliatone/go-jsonform/pkg/testsupport"
)

const profileJSON = `{"name":"Helen","age":30,"address":{"city":"Oslo"},"tags":["a","b"]}`

func newProfileEditor(t *testing.T, options ...Option) *Editor {
	t.Helper()
	e, err := New(append([]Option{WithJSON([]byte(profileJSON))}, options...)...)
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	return e
}

func TestNew_InfersDecoratedSchema(t *testing.T) {
	e := newProfileEditor(t)

	root := e.Schema()
	if root.Kind != schema.KindObject {
		t.Fatalf("root kind = %q", root.Kind)
	}
	if diff := cmp.Diff([]string{"name", "age", "address", "tags"}, root.Order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	city, ok := e.nodeAt(path.MustParse("address.city"))
	if !ok {
		t.Fatal("address.city not in schema")
	}
	if city.Path != "address.city" || city.Kind != schema.KindString {
		t.Fatalf("city node = %+v", city)
	}
}

func TestNew_SeedsControlValues(t *testing.T) {
	e := newProfileEditor(t)

	want := path.FlatValues{
		"name":         "Helen",
		"age":          float64(30),
		"address.city": "Oslo",
		"tags.0":       "a",
		"tags.1":       "b",
	}
	if diff := cmp.Diff(want, e.Values()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestGetData_RoundTrip(t *testing.T) {
	e := newProfileEditor(t)

	got := testsupport.AsMap(e.GetData())
	want := testsupport.AsMap(testsupport.MustDecode(t, profileJSON))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGetData_ExcludesPending(t *testing.T) {
	e := newProfileEditor(t)
	if err := e.SetValue("tags.+", "draft"); err != nil {
		t.Fatalf("set value: %v", err)
	}

	got := testsupport.AsMap(e.GetData()).(map[string]any)
	if diff := cmp.Diff([]any{"a", "b"}, got["tags"]); diff != "" {
		t.Fatalf("pending leaked (-want +got):\n%s", diff)
	}

	withPending := testsupport.AsMap(e.GetDataIncludingPending()).(map[string]any)
	tags := withPending["tags"].(map[string]any)
	if tags["+"] != "draft" {
		t.Fatalf("pending entry missing: %v", tags)
	}
}

func TestSetValue_CoercesAgainstSchema(t *testing.T) {
	e := newProfileEditor(t)

	if err := e.SetValue("age", "31"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if got := e.Values()["age"]; got != float64(31) {
		t.Fatalf("age = %v (%T)", got, got)
	}

	if err := e.SetValue("age", "not a number"); err == nil {
		t.Fatal("expected coercion error")
	}
}

func TestSetValue_UnknownPathStoresRaw(t *testing.T) {
	e := newProfileEditor(t)

	if err := e.SetValue("freeform", "raw"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if got := e.Values()["freeform"]; got != "raw" {
		t.Fatalf("freeform = %v", got)
	}
}

func TestSetValue_RejectsRootAndMalformed(t *testing.T) {
	e := newProfileEditor(t)

	if err := e.SetValue("", "x"); err == nil {
		t.Fatal("expected error for root path")
	}
	if err := e.SetValue("a..b", "x"); err == nil {
		t.Fatal("expected error for malformed path")
	}
}

func TestSetData_ReplacesSubtreeOnly(t *testing.T) {
	e := newProfileEditor(t)

	pushed, err := e.SetData("address", document.FromPairs("city", "Bergen", "zip", "5003"))
	if err != nil {
		t.Fatalf("set data: %v", err)
	}
	want := path.FlatValues{
		"address.city": "Bergen",
		"address.zip":  "5003",
	}
	if diff := cmp.Diff(want, pushed); diff != "" {
		t.Fatalf("pushed values mismatch (-want +got):\n%s", diff)
	}

	values := e.Values()
	if values["address.city"] != "Bergen" || values["address.zip"] != "5003" {
		t.Fatalf("subtree not replaced: %v", values)
	}
	if values["name"] != "Helen" {
		t.Fatal("state outside the prefix was touched")
	}
}

func TestSetData_EmptyPrefixReplacesEverything(t *testing.T) {
	e := newProfileEditor(t)

	if _, err := e.SetData("", document.FromPairs("only", "this")); err != nil {
		t.Fatalf("set data: %v", err)
	}
	if diff := cmp.Diff(path.FlatValues{"only": "this"}, e.Values()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSetData_PrefixBoundaryIsSegmentWise(t *testing.T) {
	e := newProfileEditor(t)
	if err := e.SetValue("addressbook", "kept"); err != nil {
		t.Fatalf("set value: %v", err)
	}

	if _, err := e.SetData("address", document.FromPairs("city", "Bergen")); err != nil {
		t.Fatalf("set data: %v", err)
	}
	if got := e.Values()["addressbook"]; got != "kept" {
		t.Fatalf("sibling with shared text prefix was dropped: %v", got)
	}
}

func TestControlValues_ExpandsArrays(t *testing.T) {
	got := ControlValues("", testsupport.MustDecode(t, `{"items":[{"sku":"A"},{"sku":"B"}]}`))
	want := path.FlatValues{
		"items.0.sku": "A",
		"items.1.sku": "B",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_WithDefaults(t *testing.T) {
	defaults := document.FromPairs(
		"name", "Anonymous",
		"locale", "en",
		"address", document.FromPairs("city", "Unknown", "country", "NO"),
	)

	e, err := New(
		WithJSON([]byte(`{"name":"Helen","address":{"city":"Oslo"}}`)),
		WithDefaults(defaults),
	)
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}

	got := testsupport.AsMap(e.GetData())
	want := map[string]any{
		"name":   "Helen",
		"locale": "en",
		"address": map[string]any{
			"city":    "Oslo",
			"country": "NO",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	// The defaults document itself stays untouched.
	if defaults.Value("name") != "Anonymous" {
		t.Fatal("defaults were mutated")
	}
}

func TestNew_DefaultsToEmptyObject(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if e.Schema().Kind != schema.KindObject {
		t.Fatalf("root kind = %q", e.Schema().Kind)
	}
	if len(e.Values()) != 0 {
		t.Fatalf("expected empty state, got %v", e.Values())
	}
}

func TestInit_RequiresRenderer(t *testing.T) {
	e := newProfileEditor(t)
	if err := e.Init(testsupport.Context()); err == nil {
		t.Fatal("expected error without a renderer")
	}
}
