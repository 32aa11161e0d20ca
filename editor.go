// Package jsonform generates editable form descriptions from arbitrary JSON
// data. It infers a field schema from the data, lets callers overlay a
// partial schema of their own, and marshals between nested JSON and the flat
// path-addressed state interactive controls work with.
//
// The schema tree owned by an Editor is mutated in place by structural edits
// and must be treated as owned by a single goroutine; the core performs no
// locking of its own.
package jsonform

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-jsonform/pkg/convert"
	"github.com/goliatone/go-jsonform/pkg/document"
	"github.com/goliatone/go-jsonform/pkg/model"
	"github.com/goliatone/go-jsonform/pkg/path"
	"github.com/goliatone/go-jsonform/pkg/render"
	"github.com/goliatone/go-jsonform/pkg/schema"
)

// Option customises an Editor before its schema is built.
type Option func(*config)

type config struct {
	data       any
	defaults   *document.Object
	userSchema *schema.Node
	labeler    func(string) string
	converters *convert.Registry
	renderer   render.FormRenderer
	title      string
	autoInit   bool
}

// WithData seeds the editor with the JSON value the form edits. Defaults to
// an empty object.
func WithData(data any) Option {
	return func(cfg *config) {
		cfg.data = data
	}
}

// WithJSON seeds the editor from raw JSON bytes, preserving object key order.
func WithJSON(raw []byte) Option {
	return func(cfg *config) {
		value, err := document.Decode(raw)
		if err != nil {
			return
		}
		cfg.data = value
	}
}

// WithDefaults layers the seeded data over a defaults document: values the
// data carries win, defaults fill the gaps. Only applies when the data is a
// keyed mapping.
func WithDefaults(defaults *document.Object) Option {
	return func(cfg *config) {
		cfg.defaults = defaults
	}
}

// WithSchema overlays a user-supplied partial schema over the inferred one.
func WithSchema(node *schema.Node) Option {
	return func(cfg *config) {
		cfg.userSchema = node
	}
}

// WithLabeler overrides label derivation for fields without explicit labels.
func WithLabeler(labeler func(string) string) Option {
	return func(cfg *config) {
		cfg.labeler = labeler
	}
}

// WithConverters replaces the default type-conversion registry.
func WithConverters(registry *convert.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.converters = registry
		}
	}
}

// WithRenderer attaches the rendering collaborator invoked by Init.
func WithRenderer(renderer render.FormRenderer) Option {
	return func(cfg *config) {
		cfg.renderer = renderer
	}
}

// WithTitle sets the form title handed to renderers.
func WithTitle(title string) Option {
	return func(cfg *config) {
		cfg.title = title
	}
}

// WithAutoInit controls whether New invokes the renderer immediately.
// Enabled by default; disable it to drive rendering yourself.
func WithAutoInit(enabled bool) Option {
	return func(cfg *config) {
		cfg.autoInit = enabled
	}
}

// Editor owns a decorated schema tree and the live flat control state, and
// reconstructs nested JSON from it on demand.
type Editor struct {
	builder    model.Builder
	schema     *schema.Node
	converters *convert.Registry
	renderer   render.FormRenderer
	title      string
	flat       path.FlatValues
	rendered   []byte
}

// New builds an Editor: the data's schema is inferred, the user schema is
// merged over it, every node is decorated, and the flat control state is
// seeded from the data. With auto-init enabled (the default) the configured
// renderer runs before New returns.
func New(options ...Option) (*Editor, error) {
	cfg := config{autoInit: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.data == nil {
		cfg.data = document.New()
	}
	if cfg.defaults != nil {
		if obj, ok := cfg.data.(*document.Object); ok {
			cfg.data = model.MergeValues(cfg.defaults.Clone(), obj)
		}
	}
	if cfg.converters == nil {
		cfg.converters = convert.NewRegistry()
	}

	var builderOpts []model.BuilderOption
	if cfg.labeler != nil {
		builderOpts = append(builderOpts, model.WithLabeler(cfg.labeler))
	}
	builder := model.NewBuilder(builderOpts...)

	e := &Editor{
		builder:    builder,
		converters: cfg.converters,
		renderer:   cfg.renderer,
		title:      cfg.title,
	}
	e.schema = builder.Normalize(builder.Infer(cfg.data), cfg.userSchema)
	e.flat = ControlValues("", cfg.data)

	if cfg.autoInit && cfg.renderer != nil {
		if err := e.Init(context.Background()); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Schema returns the editor's decorated schema tree. The tree is owned by the
// editor: structural edits mutate it in place and it must not be shared
// across goroutines.
func (e *Editor) Schema() *schema.Node {
	return e.schema
}

// Values returns a copy of the live flat control state.
func (e *Editor) Values() path.FlatValues {
	return e.flat.Clone()
}

// Init runs the configured renderer against the current schema and state and
// caches its output for Rendered.
func (e *Editor) Init(ctx context.Context) error {
	if e.renderer == nil {
		return errors.New("jsonform: no renderer configured")
	}
	out, err := e.renderer.Render(ctx, render.Form{
		Title:  e.title,
		Schema: e.schema,
		Values: e.flat.Clone(),
	}, render.RenderOptions{})
	if err != nil {
		return fmt.Errorf("jsonform: render: %w", err)
	}
	e.rendered = out
	return nil
}

// Rendered returns the output of the last Init call.
func (e *Editor) Rendered() []byte {
	return e.rendered
}

// GetData reassembles nested JSON from the flat control state. Paths marked
// with the pending "+" sentinel are excluded: they belong to editors for
// items that have not been committed yet.
func (e *Editor) GetData() any {
	return e.assemble(false)
}

// GetDataIncludingPending reassembles nested JSON keeping pending paths.
func (e *Editor) GetDataIncludingPending() any {
	return e.assemble(true)
}

func (e *Editor) assemble(includePending bool) any {
	flat := make(path.FlatValues, len(e.flat))
	for key, value := range e.flat {
		parsed, err := path.Parse(key)
		if err != nil {
			continue
		}
		if !includePending && parsed.IsPending() {
			continue
		}
		flat[key] = value
	}
	return path.FoldArrays(path.Unflatten(flat))
}

// SetData replaces the control state rooted at prefix with the flat values of
// v, leaving state outside the prefix untouched. An empty prefix replaces
// everything. It returns the flat values a renderer should push into its
// controls.
func (e *Editor) SetData(prefix string, v any) (path.FlatValues, error) {
	if _, err := path.Parse(prefix); err != nil {
		return nil, fmt.Errorf("jsonform: set data: %w", err)
	}
	incoming := ControlValues(prefix, v)
	if prefix == "" {
		e.flat = incoming.Clone()
		return incoming, nil
	}
	parsed := path.MustParse(prefix)
	for key := range e.flat {
		target, err := path.Parse(key)
		if err == nil && target.HasPrefix(parsed) {
			delete(e.flat, key)
		}
	}
	for key, value := range incoming {
		e.flat[key] = value
	}
	return incoming, nil
}

// SetValue coerces a raw control value against the schema node addressed by
// dotted and stores it in the flat state. Paths with no schema node are
// stored uncoerced; the schema stays authoritative for shape, not presence.
func (e *Editor) SetValue(dotted string, raw any) error {
	parsed, err := path.Parse(dotted)
	if err != nil {
		return fmt.Errorf("jsonform: set value: %w", err)
	}
	if parsed.IsRoot() {
		return errors.New("jsonform: set value: path is required")
	}
	value := raw
	if node, ok := e.nodeAt(parsed); ok && node.Kind.Elementary() {
		converted, err := e.converters.Convert(node.Kind, raw)
		if err != nil {
			return fmt.Errorf("jsonform: set value %q: %w", dotted, err)
		}
		value = converted
	}
	e.flat[dotted] = value
	return nil
}

// ControlValues flattens v into per-control path/value pairs rooted at
// prefix. Unlike the marshalling flatten, arrays are expanded element by
// element because every element has its own control.
func ControlValues(prefix string, v any) path.FlatValues {
	out := make(path.FlatValues)
	controlValuesInto(out, prefix, v)
	return out
}

func controlValuesInto(out path.FlatValues, prefix string, v any) {
	switch container := v.(type) {
	case *document.Object:
		container.Range(func(key string, value any) bool {
			controlValuesInto(out, path.Join(prefix, key), value)
			return true
		})
	case map[string]any:
		flat := path.Flatten(container)
		for key, value := range flat {
			controlValuesInto(out, path.Join(prefix, key), value)
		}
	case []any:
		for i, item := range container {
			controlValuesInto(out, path.Join(prefix, path.Index(i).String()), item)
		}
	default:
		if prefix != "" {
			out[prefix] = v
		}
	}
}

// nodeAt resolves the schema node for a data path, skipping index and pending
// segments (array elements share their parent's element schema).
func (e *Editor) nodeAt(p path.Path) (*schema.Node, bool) {
	node := e.schema
	for _, seg := range p {
		if node == nil {
			return nil, false
		}
		switch seg.Kind {
		case path.SegmentIndex, path.SegmentPending:
			if node.Kind == schema.KindArray {
				node = node.Items
			}
		default:
			if node.Kind == schema.KindArray && node.Items != nil {
				node = node.Items
			}
			child, ok := node.Child(seg.Name)
			if !ok {
				return nil, false
			}
			node = child
		}
	}
	if node == nil {
		return nil, false
	}
	return node, true
}
