// Package vanilla renders a schema tree as dependency-free HTML form markup.
// Labels and help text pass through a strict sanitizer before they reach the
// templates, and an optional theme configuration contributes CSS variables
// and stylesheet links.
package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-jsonform/pkg/convert"
	"github.com/goliatone/go-jsonform/pkg/path"
	"github.com/goliatone/go-jsonform/pkg/render"
	rendertemplate "github.com/goliatone/go-jsonform/pkg/render/template"
	gotemplate "github.com/goliatone/go-jsonform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-jsonform/pkg/schema"
)

// Option configures the vanilla renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	themeConfig      *theme.RendererConfig
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(dir string) Option {
	return func(cfg *config) {
		if dir == "" {
			return
		}
		cfg.templateFS = os.DirFS(dir)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithThemeConfig applies theme tokens, CSS variables, and asset URLs to the
// rendered chrome.
func WithThemeConfig(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.themeConfig = cfg
	}
}

// Renderer implements render.FormRenderer producing HTML.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	themeConfig *theme.RendererConfig
	sanitizer   *bluemonday.Policy
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		themeConfig: cfg.themeConfig,
		sanitizer:   bluemonday.StrictPolicy(),
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render walks the schema in order and produces the form markup.
func (r *Renderer) Render(ctx context.Context, form render.Form, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("vanilla renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if form.Schema == nil {
		return nil, errors.New("vanilla renderer: schema is required")
	}

	body, err := r.renderNode(form.Schema, "", form.Values, options)
	if err != nil {
		return nil, err
	}

	context := map[string]any{
		"title": r.sanitizer.Sanitize(form.Title),
		"body":  body,
	}
	applyTheme(context, r.themeConfig)

	out, err := r.templates.RenderTemplate("form", context)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) renderNode(node *schema.Node, at string, values path.FlatValues, options render.RenderOptions) (string, error) {
	if node == nil {
		return "", nil
	}
	switch node.Kind {
	case schema.KindObject:
		var parts []string
		for _, name := range node.Order {
			child, ok := node.Child(name)
			if !ok {
				continue
			}
			html, err := r.renderNode(child, path.Join(at, name), values, options)
			if err != nil {
				return "", err
			}
			parts = append(parts, html)
		}
		inner := strings.Join(parts, "\n")
		if at == "" {
			return inner, nil
		}
		return r.templates.RenderTemplate("fieldset", map[string]any{
			"path":   at,
			"legend": r.labelFor(node, at),
			"body":   inner,
		})
	case schema.KindArray:
		return r.renderArray(node, at, values, options)
	case schema.KindUndefined, schema.KindNull, schema.KindFunction, schema.KindError, "":
		// Untyped nodes render as an inert placeholder rather than failing.
		return r.templates.RenderTemplate("unsupported", map[string]any{
			"path":  at,
			"label": r.labelFor(node, at),
		})
	default:
		return r.renderLeaf(node, at, values, options)
	}
}

func (r *Renderer) renderArray(node *schema.Node, at string, values path.FlatValues, options render.RenderOptions) (string, error) {
	indices := elementIndices(at, values)
	var rows []string
	for _, index := range indices {
		html, err := r.renderNode(node.Items, path.Join(at, path.Index(index).String()), values, options)
		if err != nil {
			return "", err
		}
		rows = append(rows, html)
	}
	return r.templates.RenderTemplate("collection", map[string]any{
		"path":   at,
		"legend": r.labelFor(node, at),
		"rows":   rows,
	})
}

func (r *Renderer) renderLeaf(node *schema.Node, at string, values path.FlatValues, options render.RenderOptions) (string, error) {
	current := values[at]
	fieldErrors := options.Errors[at]

	if len(node.Possible) > 0 {
		opts := make([]map[string]any, len(node.Possible))
		for i, possible := range node.Possible {
			display := convert.Display(possible)
			opts[i] = map[string]any{
				"value":    display,
				"selected": current != nil && convert.Display(current) == display,
			}
		}
		return r.templates.RenderTemplate("select", map[string]any{
			"path":    at,
			"label":   r.labelFor(node, at),
			"options": opts,
			"errors":  fieldErrors,
		})
	}

	if node.Kind == schema.KindBoolean {
		checked, _ := current.(bool)
		return r.templates.RenderTemplate("checkbox", map[string]any{
			"path":    at,
			"label":   r.labelFor(node, at),
			"checked": checked,
			"errors":  fieldErrors,
		})
	}

	return r.templates.RenderTemplate("input", map[string]any{
		"path":      at,
		"label":     r.labelFor(node, at),
		"inputType": inputTypeFor(node.Kind),
		"value":     convert.Display(current),
		"errors":    fieldErrors,
	})
}

func (r *Renderer) labelFor(node *schema.Node, at string) string {
	label := node.Label
	if label == "" {
		label = at
	}
	return r.sanitizer.Sanitize(label)
}

func inputTypeFor(kind schema.Kind) string {
	switch kind {
	case schema.KindNumber:
		return "number"
	case schema.KindDate:
		return "datetime-local"
	default:
		return "text"
	}
}

// elementIndices collects the distinct element indices present under an array
// path, in ascending order.
func elementIndices(at string, values path.FlatValues) []int {
	prefix, err := path.Parse(at)
	if err != nil {
		return nil
	}
	seen := make(map[int]struct{})
	var indices []int
	for key := range values {
		parsed, err := path.Parse(key)
		if err != nil || len(parsed) <= len(prefix) || !parsed.HasPrefix(prefix) {
			continue
		}
		seg := parsed[len(prefix)]
		if seg.Kind != path.SegmentIndex {
			continue
		}
		if _, dup := seen[seg.Index]; dup {
			continue
		}
		seen[seg.Index] = struct{}{}
		indices = append(indices, seg.Index)
	}
	sort.Ints(indices)
	return indices
}

func applyTheme(context map[string]any, cfg *theme.RendererConfig) {
	if cfg == nil {
		return
	}
	context["theme"] = cfg.Theme
	context["themeVariant"] = cfg.Variant
	if len(cfg.CSSVars) > 0 {
		var vars []string
		for name, value := range cfg.CSSVars {
			vars = append(vars, fmt.Sprintf("%s: %s;", name, value))
		}
		sort.Strings(vars)
		context["themeCSSVars"] = strings.Join(vars, " ")
	}
	if cfg.AssetURL != nil {
		if href := cfg.AssetURL("vanilla.stylesheet"); href != "" {
			context["themeStylesheet"] = href
		}
	}
}
