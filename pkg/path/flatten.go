package path

import (
	"sort"

	"github.com/goliatone/go-jsonform/pkg/document"
)

// FlatValues maps dotted path strings to raw values. It is the intermediate
// form exchanged with the rendering layer: one entry per live control.
type FlatValues map[string]any

// Clone returns a shallow copy of the flat map.
func (f FlatValues) Clone() FlatValues {
	if f == nil {
		return nil
	}
	out := make(FlatValues, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Flatten walks v and produces one entry per leaf, joining keys with dots.
// Only keyed mappings are descended into; arrays stay as single flat entries
// and are expanded later by FoldArrays on the way back.
func Flatten(v any) FlatValues {
	out := make(FlatValues)
	flattenInto(out, "", v)
	return out
}

func flattenInto(out FlatValues, prefix string, v any) {
	switch container := v.(type) {
	case *document.Object:
		container.Range(func(key string, value any) bool {
			flattenEntry(out, Join(prefix, key), value)
			return true
		})
	case map[string]any:
		for _, key := range sortedKeys(container) {
			flattenEntry(out, Join(prefix, key), container[key])
		}
	default:
		if prefix != "" {
			out[prefix] = v
		}
	}
}

func flattenEntry(out FlatValues, key string, value any) {
	switch value.(type) {
	case *document.Object, map[string]any:
		flattenInto(out, key, value)
	default:
		out[key] = value
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Unflatten is the inverse of Flatten: each dotted key is split into segments,
// intermediate objects are created on demand, and the value lands at the final
// segment. Keys are processed in sorted order, so when a key and a deeper key
// under it both exist ("a" alongside "a.b") the deeper entry wins by replacing
// the shallower value with an object. Malformed keys (empty segments) are
// skipped.
func Unflatten(flat FlatValues) *document.Object {
	root := document.New()
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		parsed, err := Parse(key)
		if err != nil || len(parsed) == 0 {
			continue
		}
		current := root
		for _, seg := range parsed[:len(parsed)-1] {
			name := seg.String()
			child, ok := current.Get(name)
			next, isObject := child.(*document.Object)
			if !ok || !isObject {
				next = document.New()
				current.Set(name, next)
			}
			current = next
		}
		current.Set(parsed[len(parsed)-1].String(), flat[key])
	}
	return root
}

// FoldArrays converts every object whose keys are all non-negative integers,
// and which is non-empty, into a slice ordered by ascending numeric key. The
// walk recurses into every composite child whether or not the parent itself
// converts; objects with mixed numeric and non-numeric keys stay objects.
// Numeric ordering matters: "10" must land after "2".
func FoldArrays(v any) any {
	switch container := v.(type) {
	case *document.Object:
		folded := document.New()
		container.Range(func(key string, value any) bool {
			folded.Set(key, FoldArrays(value))
			return true
		})
		if seq, ok := foldObject(folded); ok {
			return seq
		}
		return folded
	case map[string]any:
		folded := document.New()
		for _, key := range sortedKeys(container) {
			folded.Set(key, FoldArrays(container[key]))
		}
		if seq, ok := foldObject(folded); ok {
			return seq
		}
		return folded
	case []any:
		out := make([]any, len(container))
		for i, item := range container {
			out[i] = FoldArrays(item)
		}
		return out
	default:
		return v
	}
}

func foldObject(obj *document.Object) ([]any, bool) {
	keys := obj.Keys()
	if len(keys) == 0 {
		return nil, false
	}
	type indexed struct {
		index int
		value any
	}
	items := make([]indexed, 0, len(keys))
	for _, key := range keys {
		idx, ok := parseIndex(key)
		if !ok {
			return nil, false
		}
		items = append(items, indexed{index: idx, value: obj.Value(key)})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].index < items[j].index })
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item.value
	}
	return out, true
}
