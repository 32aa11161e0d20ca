// Package tui renders a schema tree as an interactive terminal session: one
// prompt per leaf field, driven by survey. The collected answers flow back
// through the flat path map, so the session doubles as a reference
// implementation of the renderer side of the marshalling contract.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-jsonform/pkg/convert"
	"github.com/goliatone/go-jsonform/pkg/document"
	"github.com/goliatone/go-jsonform/pkg/path"
	"github.com/goliatone/go-jsonform/pkg/render"
	"github.com/goliatone/go-jsonform/pkg/schema"
)

// Renderer implements render.FormRenderer for terminal-driven sessions.
type Renderer struct {
	driver     PromptDriver
	converters *convert.Registry
	maxRetries int

	collected path.FlatValues
}

// New constructs a TUI renderer with defaults (survey driver, default
// coercions, two retries per field).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:     newSurveyDriver(),
		converters: convert.NewRegistry(),
		maxRetries: 2,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "application/json"
}

// Values returns the flat path map collected by the last Render call.
func (r *Renderer) Values() path.FlatValues {
	return r.collected.Clone()
}

// Render prompts for every field in schema order, seeds defaults from
// form.Values, and returns the reconstructed JSON document.
func (r *Renderer) Render(ctx context.Context, form render.Form, _ render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if form.Schema == nil {
		return nil, errors.New("tui: schema is required")
	}
	if form.Title != "" {
		if err := r.driver.Info(ctx, form.Title); err != nil {
			return nil, err
		}
	}

	r.collected = make(path.FlatValues)
	if err := r.promptNode(ctx, form.Schema, "", form.Values); err != nil {
		return nil, err
	}

	data := path.FoldArrays(path.Unflatten(r.collected))
	payload, err := document.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("tui: serialize: %w", err)
	}
	return payload, nil
}

func (r *Renderer) promptNode(ctx context.Context, node *schema.Node, at string, seed path.FlatValues) error {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case schema.KindObject:
		for _, name := range node.Order {
			child, ok := node.Child(name)
			if !ok {
				continue
			}
			if err := r.promptNode(ctx, child, path.Join(at, name), seed); err != nil {
				return err
			}
		}
		return nil
	case schema.KindArray:
		return r.promptArray(ctx, node, at, seed)
	case schema.KindUndefined, schema.KindNull, schema.KindFunction, schema.KindError, "":
		// Untyped or unsupported nodes render as opaque: note and move on.
		return r.driver.Info(ctx, fmt.Sprintf("skipping %s (no usable type)", labelFor(node, at)))
	default:
		return r.promptLeaf(ctx, node, at, seed)
	}
}

func (r *Renderer) promptArray(ctx context.Context, node *schema.Node, at string, seed path.FlatValues) error {
	index := 0
	for key := range seed {
		parsed, err := path.Parse(key)
		if err != nil {
			continue
		}
		prefix := path.MustParse(at)
		if len(parsed) > len(prefix) && parsed.HasPrefix(prefix) {
			if seg := parsed[len(prefix)]; seg.Kind == path.SegmentIndex && seg.Index >= index {
				index = seg.Index + 1
			}
		}
	}
	for {
		more, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add an item to %s?", labelFor(node, at)),
			Default: false,
		})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		itemPath := path.Join(at, path.Index(index).String())
		if err := r.promptNode(ctx, node.Items, itemPath, seed); err != nil {
			return err
		}
		index++
	}
}

func (r *Renderer) promptLeaf(ctx context.Context, node *schema.Node, at string, seed path.FlatValues) error {
	if len(node.Possible) > 0 {
		return r.promptSelect(ctx, node, at, seed)
	}
	if node.Kind == schema.KindBoolean {
		current, _ := seed[at].(bool)
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: labelFor(node, at),
			Default: current,
		})
		if err != nil {
			return err
		}
		r.collected[at] = answer
		return nil
	}

	defaultText := ""
	if current, ok := seed[at]; ok {
		defaultText = convert.Display(current)
	}
	for attempt := 0; ; attempt++ {
		raw, err := r.driver.Input(ctx, InputConfig{
			Message: labelFor(node, at),
			Default: defaultText,
		})
		if err != nil {
			return err
		}
		typed, err := r.converters.Convert(node.Kind, raw)
		if err == nil {
			r.collected[at] = typed
			return nil
		}
		if attempt >= r.maxRetries {
			r.collected[at] = raw
			return nil
		}
		if err := r.driver.Info(ctx, err.Error()); err != nil {
			return err
		}
	}
}

func (r *Renderer) promptSelect(ctx context.Context, node *schema.Node, at string, seed path.FlatValues) error {
	options := make([]string, len(node.Possible))
	defaultIndex := 0
	current, hasCurrent := seed[at]
	for i, possible := range node.Possible {
		options[i] = convert.Display(possible)
		if hasCurrent && convert.Display(current) == options[i] {
			defaultIndex = i
		}
	}
	choice, err := r.driver.Select(ctx, SelectConfig{
		Message:      labelFor(node, at),
		Options:      options,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return err
	}
	if choice < 0 || choice >= len(node.Possible) {
		return fmt.Errorf("tui: selection %d out of range for %q", choice, at)
	}
	r.collected[at] = node.Possible[choice]
	return nil
}

func labelFor(node *schema.Node, at string) string {
	if node != nil && node.Label != "" {
		return node.Label
	}
	if at != "" {
		return at
	}
	return "value"
}
