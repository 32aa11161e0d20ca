// Package orchestrator coordinates the full pipeline from raw JSON data and
// an optional user schema document to rendered form output. It applies
// sensible defaults (vanilla renderer, embedded templates, offline-first
// schema loading) while remaining open to dependency injection.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	jsonform "github.com/goliatone/go-jsonform"
	internalloader "github.com/goliatone/go-jsonform/internal/jsonschema/loader"
	pkgjsonschema "github.com/goliatone/go-jsonform/pkg/jsonschema"
	"github.com/goliatone/go-jsonform/pkg/render"
	"github.com/goliatone/go-jsonform/pkg/renderers/vanilla"
	"github.com/goliatone/go-jsonform/pkg/schema"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom schema document loader.
func WithLoader(loader pkgjsonschema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithLoaderOptions configures the built-in loader (filesystem, HTTP client,
// timeouts). Ignored when WithLoader supplies a loader of its own.
func WithLoaderOptions(options ...pkgjsonschema.LoaderOption) Option {
	return func(o *Orchestrator) {
		o.loaderOptions = append(o.loaderOptions, options...)
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithEditorOptions appends editor options applied to every request, e.g. a
// custom labeler or converter registry.
func WithEditorOptions(options ...jsonform.Option) Option {
	return func(o *Orchestrator) {
		o.editorOptions = append(o.editorOptions, options...)
	}
}

// Orchestrator wires the schema loader, the editor core, and the renderer
// registry into a single Generate call.
type Orchestrator struct {
	loader          pkgjsonschema.Loader
	loaderOptions   []pkgjsonschema.LoaderOption
	registry        *render.Registry
	defaultRenderer string
	editorOptions   []jsonform.Option
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalloader.NewFetcher(pkgjsonschema.NewLoaderOptions(o.loaderOptions...))
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		if err := o.registry.Register(renderer); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: register default renderer: %w", err)
		}
	}
}

// Request describes the inputs required to render a form.
type Request struct {
	// Data holds the raw JSON document the form edits. Optional; an empty
	// object is assumed when both Data and Value are absent.
	Data []byte

	// Value supplies the data as an in-memory value instead of raw JSON.
	// Ignored when Data is set.
	Value any

	// Schema identifies where the user schema document lives. Optional when
	// SchemaNode or SchemaBytes is supplied.
	Schema pkgjsonschema.Source

	// SchemaBytes allows callers to bypass the loader when they already have
	// the document payload.
	SchemaBytes []byte

	// SchemaNode allows callers to bypass loading and parsing entirely.
	SchemaNode *schema.Node

	// Title is handed through to the renderer.
	Title string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request instructions such as server-side
	// errors that renderers can surface.
	RenderOptions render.RenderOptions
}

// Generate executes the loader, editor, and renderer sequence and returns the
// rendered bytes (HTML for the default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	editor, err := o.buildEditor(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, render.Form{
		Title:  req.Title,
		Schema: editor.Schema(),
		Values: editor.Values(),
	}, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Editor builds the editor for a request without rendering, for callers that
// want to apply structural edits or push values before producing output.
func (o *Orchestrator) Editor(ctx context.Context, req Request) (*jsonform.Editor, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	return o.buildEditor(ctx, req)
}

func (o *Orchestrator) buildEditor(ctx context.Context, req Request) (*jsonform.Editor, error) {
	overlay, err := o.resolveSchema(ctx, req)
	if err != nil {
		return nil, err
	}

	options := append([]jsonform.Option{}, o.editorOptions...)
	if len(req.Data) > 0 {
		options = append(options, jsonform.WithJSON(req.Data))
	} else if req.Value != nil {
		options = append(options, jsonform.WithData(req.Value))
	}
	if overlay != nil {
		options = append(options, jsonform.WithSchema(overlay))
	}
	options = append(options, jsonform.WithTitle(req.Title), jsonform.WithAutoInit(false))

	editor, err := jsonform.New(options...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build editor: %w", err)
	}
	return editor, nil
}

func (o *Orchestrator) resolveSchema(ctx context.Context, req Request) (*schema.Node, error) {
	if req.SchemaNode != nil {
		return req.SchemaNode, nil
	}

	raw := req.SchemaBytes
	if raw == nil && req.Schema != nil {
		doc, err := o.loader.Load(ctx, req.Schema)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load schema: %w", err)
		}
		raw = doc.Raw()
	}
	if raw == nil {
		return nil, nil
	}

	node, err := internalloader.Load(raw)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse schema: %w", err)
	}
	return node, nil
}

func (o *Orchestrator) rendererFor(name string) (render.FormRenderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.Names()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}
