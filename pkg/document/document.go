// Package document provides the insertion-ordered object representation the
// schema and marshalling layers are built on. Go maps do not preserve key
// order, yet field layout is driven entirely by the order in which keys were
// first seen, so JSON objects are decoded into *Object values that remember
// their insertion order and survive a marshal round trip unchanged.
package document

// Object is a JSON object that preserves key insertion order. Set on an
// existing key updates the value in place without moving the key; Delete
// removes the key and closes the gap.
type Object struct {
	entries []entry
	index   map[string]int
}

type entry struct {
	key   string
	value any
}

// New returns an empty ordered object.
func New() *Object {
	return &Object{index: make(map[string]int)}
}

// FromPairs builds an object from alternating key/value arguments. It is a
// test and fixture convenience; keys keep the order they are listed in.
func FromPairs(pairs ...any) *Object {
	obj := New()
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		obj.Set(key, pairs[i+1])
	}
	return obj
}

// Len reports the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.entries)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.entries[i].value, true
}

// Value returns the value stored under key, or nil when absent.
func (o *Object) Value(key string) any {
	v, _ := o.Get(key)
	return v
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.index[key]
	return ok
}

// Set stores value under key. New keys append; existing keys keep their
// position.
func (o *Object) Set(key string, value any) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.entries[i].value = value
		return
	}
	o.index[key] = len(o.entries)
	o.entries = append(o.entries, entry{key: key, value: value})
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if o == nil {
		return false
	}
	i, ok := o.index[key]
	if !ok {
		return false
	}
	o.entries = append(o.entries[:i], o.entries[i+1:]...)
	delete(o.index, key)
	for j := i; j < len(o.entries); j++ {
		o.index[o.entries[j].key] = j
	}
	return true
}

// Keys returns the keys in insertion order. The slice is a copy.
func (o *Object) Keys() []string {
	if o == nil || len(o.entries) == 0 {
		return nil
	}
	keys := make([]string, len(o.entries))
	for i, e := range o.entries {
		keys[i] = e.key
	}
	return keys
}

// Range calls fn for each key/value pair in insertion order until fn returns
// false.
func (o *Object) Range(fn func(key string, value any) bool) {
	if o == nil {
		return
	}
	for _, e := range o.entries {
		if !fn(e.key, e.value) {
			return
		}
	}
}

// Clone returns a deep copy: nested *Object values and []any slices are
// cloned, scalar values are shared.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	out := &Object{
		entries: make([]entry, len(o.entries)),
		index:   make(map[string]int, len(o.index)),
	}
	for i, e := range o.entries {
		out.entries[i] = entry{key: e.key, value: CloneValue(e.value)}
		out.index[e.key] = i
	}
	return out
}

// CloneValue deep-copies composite values (*Object, []any); everything else is
// returned as-is.
func CloneValue(v any) any {
	switch val := v.(type) {
	case *Object:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneValue(item)
		}
		return out
	default:
		return v
	}
}
