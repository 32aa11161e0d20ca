package jsonform

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-jsonform/pkg/path"
	"github.com/goliatone/go-jsonform/pkg/schema"
)

// Edit is a structural command applied to the editor's schema tree and flat
// state through a single entry point. Keeping edits as values makes them
// replayable and testable without any UI attached.
type Edit interface {
	apply(e *Editor) (*schema.Node, error)
}

// AddField adds a named child to the object node at Parent. Node may be nil,
// in which case an undefined leaf is created and left for a later edit to
// type. The new subtree is decorated before it is returned.
type AddField struct {
	Parent string
	Name   string
	Node   *schema.Node
}

// DeleteField removes the field at Path from its parent, dropping any flat
// state stored under it.
type DeleteField struct {
	Path string
}

// AddItem appends a new element to the array at Path, seeding flat state with
// the element schema's default values. Value, when non-nil, overrides the
// defaults.
type AddItem struct {
	Path  string
	Value any
}

// DeleteItem removes the array element at Path (a path ending in an index).
// Remaining elements keep their indices; reconstruction compacts them by
// ascending numeric order.
type DeleteItem struct {
	Path string
}

// Apply executes a structural edit against the editor's schema tree and flat
// state, returning the node the edit affected. The tree is mutated in place;
// the renderer must re-synchronize its controls with the result.
func (e *Editor) Apply(edit Edit) (*schema.Node, error) {
	if edit == nil {
		return nil, errors.New("jsonform: edit is required")
	}
	return edit.apply(e)
}

func (a AddField) apply(e *Editor) (*schema.Node, error) {
	if a.Name == "" {
		return nil, errors.New("jsonform: add field: name is required")
	}
	parsed, err := path.Parse(a.Parent)
	if err != nil {
		return nil, fmt.Errorf("jsonform: add field: %w", err)
	}
	parent, ok := e.nodeAt(parsed)
	if !ok {
		return nil, fmt.Errorf("jsonform: add field: parent %q not found", a.Parent)
	}
	if parent.Kind != schema.KindObject {
		return nil, fmt.Errorf("jsonform: add field: %q is not an object", a.Parent)
	}
	if _, exists := parent.Child(a.Name); exists {
		return nil, fmt.Errorf("jsonform: add field: field %q already exists", a.Name)
	}

	node := a.Node
	if node == nil {
		node = schema.NewLeaf(schema.KindUndefined)
	}
	parent.PutChild(a.Name, node)
	e.decorateSubtree(parent)

	added, _ := parent.Child(a.Name)
	if added.Kind.Elementary() {
		e.flat[added.Path] = schema.DefaultValue(added.Kind)
	}
	return added, nil
}

func (d DeleteField) apply(e *Editor) (*schema.Node, error) {
	parsed, err := path.Parse(d.Path)
	if err != nil {
		return nil, fmt.Errorf("jsonform: delete field: %w", err)
	}
	if parsed.IsRoot() {
		return nil, errors.New("jsonform: delete field: cannot delete the root")
	}
	parentPath, last := parsed.Parent()
	if last.Kind != path.SegmentField {
		return nil, fmt.Errorf("jsonform: delete field: %q does not address a field", d.Path)
	}
	parent, ok := e.nodeAt(parentPath)
	if !ok {
		return nil, fmt.Errorf("jsonform: delete field: parent of %q not found", d.Path)
	}
	if !parent.RemoveChild(last.Name) {
		return nil, fmt.Errorf("jsonform: delete field: field %q not found", d.Path)
	}
	e.dropUnder(parsed)
	return parent, nil
}

func (a AddItem) apply(e *Editor) (*schema.Node, error) {
	parsed, err := path.Parse(a.Path)
	if err != nil {
		return nil, fmt.Errorf("jsonform: add item: %w", err)
	}
	node, ok := e.nodeAt(parsed)
	if !ok {
		return nil, fmt.Errorf("jsonform: add item: array %q not found", a.Path)
	}
	if node.Kind != schema.KindArray {
		return nil, fmt.Errorf("jsonform: add item: %q is not an array", a.Path)
	}

	index := e.nextIndex(parsed)
	itemPath := parsed.At(index)

	if a.Value != nil {
		for key, flat := range ControlValues(itemPath.String(), a.Value) {
			e.flat[key] = flat
		}
	} else {
		e.seedDefaults(itemPath.String(), node.Items)
	}
	return node.Items, nil
}

func (d DeleteItem) apply(e *Editor) (*schema.Node, error) {
	parsed, err := path.Parse(d.Path)
	if err != nil {
		return nil, fmt.Errorf("jsonform: delete item: %w", err)
	}
	if parsed.IsRoot() {
		return nil, errors.New("jsonform: delete item: path is required")
	}
	parentPath, last := parsed.Parent()
	if last.Kind != path.SegmentIndex {
		return nil, fmt.Errorf("jsonform: delete item: %q does not address an element", d.Path)
	}
	node, ok := e.nodeAt(parentPath)
	if !ok || node.Kind != schema.KindArray {
		return nil, fmt.Errorf("jsonform: delete item: array for %q not found", d.Path)
	}
	if removed := e.dropUnder(parsed); removed == 0 {
		return nil, fmt.Errorf("jsonform: delete item: element %q not found", d.Path)
	}
	return node, nil
}

// dropUnder removes every flat entry at or below the given path, returning
// the number of entries removed.
func (e *Editor) dropUnder(p path.Path) int {
	removed := 0
	for key := range e.flat {
		target, err := path.Parse(key)
		if err != nil {
			continue
		}
		if target.HasPrefix(p) {
			delete(e.flat, key)
			removed++
		}
	}
	return removed
}

// nextIndex returns one past the highest element index currently stored under
// an array path.
func (e *Editor) nextIndex(arrayPath path.Path) int {
	next := 0
	depth := len(arrayPath)
	for key := range e.flat {
		target, err := path.Parse(key)
		if err != nil || len(target) <= depth || !target.HasPrefix(arrayPath) {
			continue
		}
		seg := target[depth]
		if seg.Kind == path.SegmentIndex && seg.Index >= next {
			next = seg.Index + 1
		}
	}
	return next
}

// seedDefaults writes the canonical default value for every leaf reachable
// under a schema node, one flat entry per control a renderer would show.
// Empty arrays seed nothing; their rows arrive through later AddItem edits.
func (e *Editor) seedDefaults(prefix string, n *schema.Node) {
	switch {
	case n == nil:
		e.flat[prefix] = schema.Undefined
	case n.Kind == schema.KindObject:
		for _, name := range n.Order {
			child, ok := n.Child(name)
			if !ok {
				continue
			}
			e.seedDefaults(path.Join(prefix, name), child)
		}
	case n.Kind == schema.KindArray:
		// no rows yet
	default:
		e.flat[prefix] = schema.DefaultValue(n.Kind)
	}
}

// decorateSubtree re-runs decoration from the given node so freshly added
// children pick up label, path, name, and order metadata. Parent paths are
// already stamped, so normalizing the subtree in place is sufficient.
func (e *Editor) decorateSubtree(node *schema.Node) {
	decorated := e.builder.Normalize(node, nil)
	*node = *decorated
}
