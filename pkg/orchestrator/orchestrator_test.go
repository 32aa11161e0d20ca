package orchestrator_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	jsonform "github.com/goliatone/go-jsonform"
	"github.com/goliatone/go-jsonform/pkg/jsonschema"
	"github.com/goliatone/go-jsonform/pkg/orchestrator"
	"github.com/goliatone/go-jsonform/pkg/render"
	"github.com/goliatone/go-jsonform/pkg/schema"
	"github.com/goliatone/go-jsonform/pkg/testsupport"
)

const userSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string", "title": "Full name"}
  }
}`

type captureRenderer struct {
	form render.Form
}

func (c *captureRenderer) Name() string        { return "capture" }
func (c *captureRenderer) ContentType() string { return "text/plain" }

func (c *captureRenderer) Render(_ context.Context, form render.Form, _ render.RenderOptions) ([]byte, error) {
	c.form = form
	return []byte("captured"), nil
}

func TestGenerate_DefaultVanillaRenderer(t *testing.T) {
	gen := orchestrator.New()

	out, err := gen.Generate(testsupport.Context(), orchestrator.Request{
		Data:  []byte(`{"name":"Helen","age":30}`),
		Title: "Profile",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	html := string(out)
	for _, want := range []string{`<form class="jsonform"`, `name="name"`, `value="Helen"`, `type="number"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("output missing %q:\n%s", want, html)
		}
	}
}

func TestGenerate_SchemaOverlayFromFS(t *testing.T) {
	files := fstest.MapFS{
		"profile.json": &fstest.MapFile{Data: []byte(userSchema)},
	}
	capture := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(capture)

	gen := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("capture"),
		orchestrator.WithLoaderOptions(jsonschema.WithFileSystem(files)),
	)

	if _, err := gen.Generate(testsupport.Context(), orchestrator.Request{
		Data:   []byte(`{"name":"Helen"}`),
		Schema: jsonschema.SourceFromFS("profile.json"),
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	name, ok := capture.form.Schema.Child("name")
	if !ok {
		t.Fatal("name field missing from schema")
	}
	if name.Label != "Full name" {
		t.Fatalf("label = %q", name.Label)
	}
}

func TestGenerate_SchemaOverlayFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(userSchema))
	}))
	defer server.Close()

	capture := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(capture)

	gen := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("capture"),
		orchestrator.WithLoaderOptions(jsonschema.WithHTTPClient(server.Client())),
	)

	if _, err := gen.Generate(testsupport.Context(), orchestrator.Request{
		Data:   []byte(`{"name":"Helen"}`),
		Schema: jsonschema.SourceFromURL(server.URL),
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	name, _ := capture.form.Schema.Child("name")
	if name == nil || name.Label != "Full name" {
		t.Fatalf("schema overlay not applied: %+v", name)
	}
}

func TestGenerate_HTTPDisabledByDefault(t *testing.T) {
	gen := orchestrator.New()
	_, err := gen.Generate(testsupport.Context(), orchestrator.Request{
		Data:   []byte(`{}`),
		Schema: jsonschema.SourceFromURL("http://127.0.0.1:1/schema.json"),
	})
	if err == nil {
		t.Fatal("expected error when http support is disabled")
	}
}

func TestGenerate_SchemaNodeBypassesLoader(t *testing.T) {
	capture := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(capture)

	overlay := &schema.Node{
		Children: map[string]*schema.Node{
			"name": {Label: "Display name"},
		},
	}

	gen := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("capture"),
	)
	if _, err := gen.Generate(testsupport.Context(), orchestrator.Request{
		Data:       []byte(`{"name":"Helen"}`),
		SchemaNode: overlay,
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	name, _ := capture.form.Schema.Child("name")
	if name == nil || name.Label != "Display name" {
		t.Fatalf("overlay not applied: %+v", name)
	}
}

func TestGenerate_UnknownRenderer(t *testing.T) {
	gen := orchestrator.New()
	if _, err := gen.Generate(testsupport.Context(), orchestrator.Request{
		Data:     []byte(`{}`),
		Renderer: "ghost",
	}); err == nil {
		t.Fatal("expected error for unknown renderer")
	}
}

func TestEditor_AllowsStructuralWork(t *testing.T) {
	gen := orchestrator.New()

	editor, err := gen.Editor(testsupport.Context(), orchestrator.Request{
		Data: []byte(`{"tags":["a"]}`),
	})
	if err != nil {
		t.Fatalf("editor: %v", err)
	}
	if _, err := editor.Apply(jsonform.AddItem{Path: "tags", Value: "b"}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	got := testsupport.AsMap(editor.GetData()).(map[string]any)
	if len(got["tags"].([]any)) != 2 {
		t.Fatalf("tags = %v", got["tags"])
	}
}
