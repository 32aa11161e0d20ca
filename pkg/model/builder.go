// Package model exposes the schema inference and normalization engine.
// Builders reside in internal/model but operate on the node types defined in
// pkg/schema.
package model

import (
	"github.com/goliatone/go-jsonform/internal/model"
	"github.com/goliatone/go-jsonform/pkg/document"
	"github.com/goliatone/go-jsonform/pkg/schema"
)

// Builder infers a schema tree from runtime data and normalizes it against an
// optional user overlay.
type Builder interface {
	// Infer derives a schema tree describing the shape of value.
	Infer(value any) *schema.Node
	// Normalize merges user over inferred and decorates every node with
	// label, path, name, and order metadata.
	Normalize(inferred, user *schema.Node) *schema.Node
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(string) string
}

// WithLabeler overrides the default label generation function. The default
// uses the field name verbatim; HumanizeLabeler is available for friendlier
// output.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// HumanizeLabeler splits camelCase and snake/kebab names into title-cased
// words.
func HumanizeLabeler(name string) string {
	return model.HumanizeLabeler(name)
}

// MergeValues layers b over a key by key, recursing where both sides are
// keyed mappings. It mutates and returns a; shape mismatches resolve by
// overwriting with b's value.
func MergeValues(a, b *document.Object) *document.Object {
	return model.MergeValues(a, b)
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	internalOpts := model.Options{}
	if cfg.labeler != nil {
		internalOpts.Labeler = cfg.labeler
	}

	return model.New(internalOpts)
}
