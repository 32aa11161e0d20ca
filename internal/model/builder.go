package model

import (
	"github.com/goliatone/go-jsonform/pkg/document"
	"github.com/goliatone/go-jsonform/pkg/schema"
)

// Builder infers schema trees from runtime data and normalizes them against
// user-supplied overlays.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Infer walks a runtime value and produces a schema tree describing its shape.
// Elementary values yield a bare leaf node. Keyed mappings yield an object
// node with one child per key, in key insertion order. Array element schemas
// are inferred from element zero only; an empty array yields an undefined
// element kind, a documented limitation rather than something to repair here.
//
// The input must be acyclic. That invariant is assumed, not enforced.
func (b *Builder) Infer(value any) *schema.Node {
	kind := schema.KindOf(value)
	switch kind {
	case schema.KindObject:
		return b.inferObject(value)
	case schema.KindArray:
		return schema.NewArray(b.inferItems(value))
	default:
		return schema.NewLeaf(kind)
	}
}

func (b *Builder) inferObject(value any) *schema.Node {
	node := schema.NewObject()
	forEachPair(value, func(key string, child any) {
		switch schema.KindOf(child) {
		case schema.KindArray:
			node.PutChild(key, schema.NewArray(b.inferItems(child)))
		case schema.KindObject:
			node.PutChild(key, b.inferObject(child))
		default:
			node.PutChild(key, schema.NewLeaf(schema.KindOf(child)))
		}
	})
	return node
}

func (b *Builder) inferItems(value any) *schema.Node {
	first, ok := firstElement(value)
	if !ok {
		return schema.NewLeaf(schema.KindUndefined)
	}
	return b.Infer(first)
}

func forEachPair(value any, fn func(key string, child any)) {
	switch container := value.(type) {
	case *document.Object:
		container.Range(func(key string, child any) bool {
			fn(key, child)
			return true
		})
	case map[string]any:
		for _, key := range sortedMapKeys(container) {
			fn(key, container[key])
		}
	}
}

func firstElement(value any) (any, bool) {
	items, ok := value.([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}
	return items[0], true
}
