package vanilla

import (
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-jsonform/pkg/path"
	"github.com/goliatone/go-jsonform/pkg/render"
	"github.com/goliatone/go-jsonform/pkg/schema"
	"github.com/goliatone/go-jsonform/pkg/testsupport"
)

func buildSchema(t *testing.T) *schema.Node {
	t.Helper()
	address := schema.NewObject()
	address.Label = "Address"
	address.Path = "address"
	address.PutChild("city", &schema.Node{Kind: schema.KindString, Label: "City", Path: "address.city"})

	root := schema.NewObject()
	root.PutChild("name", &schema.Node{Kind: schema.KindString, Label: "Name", Path: "name"})
	root.PutChild("age", &schema.Node{Kind: schema.KindNumber, Label: "Age", Path: "age"})
	root.PutChild("active", &schema.Node{Kind: schema.KindBoolean, Label: "Active", Path: "active"})
	root.PutChild("address", address)
	return root
}

func renderHTML(t *testing.T, form render.Form, options render.RenderOptions, opts ...Option) string {
	t.Helper()
	r, err := New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(testsupport.Context(), form, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRender_BasicForm(t *testing.T) {
	html := renderHTML(t, render.Form{
		Title:  "Profile",
		Schema: buildSchema(t),
		Values: path.FlatValues{
			"name":         "Helen",
			"age":          float64(30),
			"active":       true,
			"address.city": "Oslo",
		},
	}, render.RenderOptions{})

	for _, want := range []string{
		`<h2 class="jsonform-title">Profile</h2>`,
		`name="name"`,
		`value="Helen"`,
		`type="number"`,
		`type="checkbox"`,
		` checked`,
		`<legend>Address</legend>`,
		`name="address.city"`,
		`value="Oslo"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("output missing %q:\n%s", want, html)
		}
	}
}

func TestRender_FieldOrderFollowsSchemaOrder(t *testing.T) {
	html := renderHTML(t, render.Form{Schema: buildSchema(t)}, render.RenderOptions{})

	name := strings.Index(html, `name="name"`)
	age := strings.Index(html, `name="age"`)
	active := strings.Index(html, `name="active"`)
	if name < 0 || age < 0 || active < 0 {
		t.Fatalf("fields missing:\n%s", html)
	}
	if !(name < age && age < active) {
		t.Fatalf("field order wrong: name=%d age=%d active=%d", name, age, active)
	}
}

func TestRender_SelectFromPossible(t *testing.T) {
	root := schema.NewObject()
	root.PutChild("status", &schema.Node{
		Kind:     schema.KindString,
		Label:    "Status",
		Path:     "status",
		Possible: []any{"open", "closed"},
	})

	html := renderHTML(t, render.Form{
		Schema: root,
		Values: path.FlatValues{"status": "closed"},
	}, render.RenderOptions{})

	if !strings.Contains(html, `<option value="open">`) {
		t.Fatalf("open option missing:\n%s", html)
	}
	if !strings.Contains(html, `<option value="closed" selected>`) {
		t.Fatalf("selected option missing:\n%s", html)
	}
}

func TestRender_ArrayRows(t *testing.T) {
	root := schema.NewObject()
	root.PutChild("tags", &schema.Node{
		Kind:  schema.KindArray,
		Label: "Tags",
		Path:  "tags",
		Items: &schema.Node{Kind: schema.KindString},
	})

	html := renderHTML(t, render.Form{
		Schema: root,
		Values: path.FlatValues{"tags.0": "a", "tags.1": "b"},
	}, render.RenderOptions{})

	if !strings.Contains(html, `name="tags.0"`) || !strings.Contains(html, `name="tags.1"`) {
		t.Fatalf("row inputs missing:\n%s", html)
	}
	if strings.Index(html, `name="tags.0"`) > strings.Index(html, `name="tags.1"`) {
		t.Fatal("rows out of order")
	}
}

func TestRender_UntypedNodeIsInert(t *testing.T) {
	root := schema.NewObject()
	root.PutChild("mystery", &schema.Node{Kind: schema.KindUndefined, Label: "Mystery", Path: "mystery"})

	html := renderHTML(t, render.Form{Schema: root}, render.RenderOptions{})
	if !strings.Contains(html, "jsonform-field--unsupported") {
		t.Fatalf("placeholder missing:\n%s", html)
	}
	if strings.Contains(html, `<input`) {
		t.Fatalf("untyped node produced an input:\n%s", html)
	}
}

func TestRender_FieldErrors(t *testing.T) {
	root := schema.NewObject()
	root.PutChild("age", &schema.Node{Kind: schema.KindNumber, Label: "Age", Path: "age"})

	html := renderHTML(t, render.Form{Schema: root}, render.RenderOptions{
		Errors: map[string][]string{"age": {"must be positive"}},
	})
	if !strings.Contains(html, `<span class="jsonform-error">must be positive</span>`) {
		t.Fatalf("error message missing:\n%s", html)
	}
}

func TestRender_SanitizesLabels(t *testing.T) {
	root := schema.NewObject()
	root.PutChild("name", &schema.Node{
		Kind:  schema.KindString,
		Label: `<script>alert(1)</script>Name`,
		Path:  "name",
	})

	html := renderHTML(t, render.Form{Schema: root}, render.RenderOptions{})
	if strings.Contains(html, "<script>") {
		t.Fatalf("label not sanitized:\n%s", html)
	}
	if !strings.Contains(html, "Name") {
		t.Fatalf("label text lost:\n%s", html)
	}
}

func TestRender_ThemeChrome(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme:   "dusk",
		Variant: "compact",
		CSSVars: map[string]string{
			"--jsonform-accent": "#336699",
		},
		AssetURL: func(string) string { return "/assets/vanilla.css" },
	}

	html := renderHTML(t, render.Form{Schema: buildSchema(t)}, render.RenderOptions{}, WithThemeConfig(cfg))

	for _, want := range []string{
		"theme-dusk",
		"theme-dusk--compact",
		"--jsonform-accent: #336699;",
		`href="/assets/vanilla.css"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("output missing %q:\n%s", want, html)
		}
	}
}

func TestRender_RequiresSchema(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(testsupport.Context(), render.Form{}, render.RenderOptions{}); err == nil {
		t.Fatal("expected error without a schema")
	}
}
