package path

import (
	"github.com/goliatone/go-jsonform/pkg/document"
)

// FindValue walks root one segment at a time and returns the value addressed
// by the dotted path. Absence is not an error: the second return is false as
// soon as any segment is missing. The empty path returns root unchanged.
func FindValue(root any, dotted string) (any, bool) {
	parsed, err := Parse(dotted)
	if err != nil {
		return nil, false
	}
	return Resolve(root, parsed)
}

// Resolve is FindValue over an already-parsed path.
func Resolve(root any, p Path) (any, bool) {
	current := root
	for _, seg := range p {
		next, ok := step(current, seg)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func step(current any, seg Segment) (any, bool) {
	switch container := current.(type) {
	case *document.Object:
		return container.Get(seg.String())
	case map[string]any:
		v, ok := container[seg.String()]
		return v, ok
	case []any:
		if seg.Kind != SegmentIndex || seg.Index >= len(container) {
			return nil, false
		}
		return container[seg.Index], true
	default:
		return nil, false
	}
}
