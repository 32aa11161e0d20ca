// Package path implements the dotted-path addressing scheme used to marshal
// between nested JSON values and per-field form state. Paths are parsed into a
// validated segment sequence instead of being sliced ad hoc, and the flatten /
// unflatten / fold operations are pure functions over the value model.
package path

import (
	"fmt"
	"strconv"
	"strings"
)

// Pending is the sentinel segment marking an in-progress "new item" editor, an
// array element or field definition that has not been committed yet.
const Pending = "+"

// SegmentKind discriminates the three segment shapes a path can hold.
type SegmentKind int

const (
	// SegmentField addresses a named object field.
	SegmentField SegmentKind = iota
	// SegmentIndex addresses an array element by position.
	SegmentIndex
	// SegmentPending marks a not-yet-committed element.
	SegmentPending
)

// Segment is one step of a path.
type Segment struct {
	Kind  SegmentKind
	Name  string
	Index int
}

// Path is a parsed dotted path. The zero value addresses the root.
type Path []Segment

// Field returns a field segment.
func Field(name string) Segment { return Segment{Kind: SegmentField, Name: name} }

// Index returns an array-index segment.
func Index(i int) Segment { return Segment{Kind: SegmentIndex, Index: i} }

// Parse splits a dotted path string into validated segments. The empty string
// parses to the root path. Segments consisting only of digits become index
// segments, "+" becomes the pending sentinel, anything else is a field name.
// Empty segments (leading, trailing, or doubled dots) are rejected.
func Parse(raw string) (Path, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ".")
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("path: empty segment in %q", raw)
		}
		if part == Pending {
			path = append(path, Segment{Kind: SegmentPending})
			continue
		}
		if idx, ok := parseIndex(part); ok {
			path = append(path, Segment{Kind: SegmentIndex, Index: idx, Name: part})
			continue
		}
		path = append(path, Segment{Kind: SegmentField, Name: part})
	}
	return path, nil
}

// MustParse is Parse for trusted literals; it panics on malformed input.
func MustParse(raw string) Path {
	path, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return path
}

func parseIndex(part string) (int, bool) {
	for _, r := range part {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(part)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// String renders the path back to dotted form.
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = seg.String()
	}
	return strings.Join(parts, ".")
}

// String renders a single segment.
func (s Segment) String() string {
	switch s.Kind {
	case SegmentPending:
		return Pending
	case SegmentIndex:
		if s.Name != "" {
			return s.Name
		}
		return strconv.Itoa(s.Index)
	default:
		return s.Name
	}
}

// IsRoot reports whether the path addresses the root value.
func (p Path) IsRoot() bool { return len(p) == 0 }

// IsPending reports whether any segment is the pending sentinel. Paths that
// are pending carry editor state that must not leak into reconstructed data.
func (p Path) IsPending() bool {
	for _, seg := range p {
		if seg.Kind == SegmentPending {
			return true
		}
	}
	return false
}

// Child returns a new path extended by a field segment.
func (p Path) Child(name string) Path {
	return p.append(Field(name))
}

// At returns a new path extended by an index segment.
func (p Path) At(i int) Path {
	return p.append(Index(i))
}

// Parent returns the path without its final segment, and that final segment.
// Calling Parent on the root returns the root and a zero segment.
func (p Path) Parent() (Path, Segment) {
	if len(p) == 0 {
		return nil, Segment{}
	}
	return p[:len(p)-1], p[len(p)-1]
}

func (p Path) append(seg Segment) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = seg
	return out
}

// HasPrefix reports whether p starts with the given prefix path.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i, seg := range prefix {
		if p[i].String() != seg.String() {
			return false
		}
	}
	return true
}

// Join glues a prefix string and a key into a dotted path string. Either part
// may be empty.
func Join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + "." + key
}
