package model

import (
	"github.com/goliatone/go-jsonform/pkg/document"
	"github.com/goliatone/go-jsonform/pkg/schema"
)

// MergeValues merges b into a key by key, recursing when both sides are keyed
// mappings, and returns the mutated a. Any shape mismatch resolves by
// overwriting with b's value; nothing is ever raised. It is the merge
// primitive behind override composition wherever plain data (defaults,
// prefill values) needs layering.
func MergeValues(a, b *document.Object) *document.Object {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	b.Range(func(key string, incoming any) bool {
		existing, ok := a.Get(key)
		if ok && schema.KindOf(existing) == schema.KindObject && schema.KindOf(incoming) == schema.KindObject {
			left, leftOK := existing.(*document.Object)
			right, rightOK := incoming.(*document.Object)
			if leftOK && rightOK {
				a.Set(key, MergeValues(left, right))
				return true
			}
			// Mappings of an unexpected concrete shape fall through to
			// overwrite.
		}
		a.Set(key, incoming)
		return true
	})
	return a
}
