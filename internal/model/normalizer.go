package model

import (
	"sort"

	"github.com/goliatone/go-jsonform/pkg/path"
	"github.com/goliatone/go-jsonform/pkg/schema"
)

// Normalize merges a user-supplied partial schema over the inferred one, then
// decorates every node with derived metadata: label, path, name, and the
// order list of composite nodes. The returned tree is a fresh copy; neither
// input is mutated. Normalizing an already-decorated tree with a nil overlay
// is a no-op for label, path, name, and order.
func (b *Builder) Normalize(inferred, user *schema.Node) *schema.Node {
	merged := mergeNodes(inferred, user)
	if merged == nil {
		merged = schema.NewObject()
	}
	b.decorate(merged, "", "")
	return merged
}

// mergeNodes overlays user onto base key by key, recursing where both sides
// are composite. Scalar attributes from the overlay win whenever they are
// set; shape mismatches resolve by overwrite, never by error.
func mergeNodes(base, overlay *schema.Node) *schema.Node {
	if overlay == nil {
		return base.Clone()
	}
	if base == nil {
		return overlay.Clone()
	}

	out := base.Clone()
	if overlay.Kind != "" {
		out.Kind = overlay.Kind
	}
	if overlay.Label != "" {
		out.Label = overlay.Label
	}
	if overlay.Name != "" {
		out.Name = overlay.Name
	}
	if overlay.Path != "" {
		out.Path = overlay.Path
	}
	if overlay.Possible != nil {
		out.Possible = append([]any(nil), overlay.Possible...)
	}
	out.Deletable = out.Deletable || overlay.Deletable
	out.Editable = out.Editable || overlay.Editable
	out.AddField = out.AddField || overlay.AddField
	out.DeletableFields = out.DeletableFields || overlay.DeletableFields
	out.EditableFields = out.EditableFields || overlay.EditableFields

	if overlay.Items != nil {
		out.Items = mergeNodes(base.Items, overlay.Items)
	}
	if len(overlay.Children) > 0 {
		if out.Children == nil {
			out.Children = make(map[string]*schema.Node, len(overlay.Children))
		}
		for _, name := range overlayChildNames(overlay) {
			child := overlay.Children[name]
			if existing, ok := out.Children[name]; ok {
				out.Children[name] = mergeNodes(existing, child)
				continue
			}
			out.PutChild(name, mergeNodes(nil, child))
		}
	}
	if overlay.Order != nil {
		out.Order = append([]string(nil), overlay.Order...)
	}
	return out
}

// overlayChildNames enumerates an overlay's children deterministically: its
// Order first, then any unlisted names sorted.
func overlayChildNames(node *schema.Node) []string {
	seen := make(map[string]struct{}, len(node.Children))
	names := make([]string, 0, len(node.Children))
	for _, name := range node.Order {
		if _, ok := node.Children[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	var rest []string
	for name := range node.Children {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// decorate stamps derived metadata onto a node and recurses into composite
// children. Children are visited before the parent's order list is settled so
// newly discovered keys are known when the list is synthesized.
func (b *Builder) decorate(node *schema.Node, parentPath, name string) {
	if node == nil {
		return
	}

	if node.Kind == "" || node.Kind == schema.KindUndefined {
		if len(node.Possible) > 0 {
			node.Kind = schema.KindOf(node.Possible[0])
		}
		// Otherwise the kind stays undefined; renderers must treat such
		// nodes as opaque rather than fail.
	}

	if name != "" {
		if node.Label == "" {
			node.Label = b.opts.Labeler(name)
		}
		node.Name = name
		node.Path = path.Join(parentPath, name)
	}

	switch {
	case node.Kind == schema.KindObject:
		for childName, child := range node.Children {
			b.decorate(child, node.Path, childName)
		}
		ensureOrder(node)
	case node.Kind == schema.KindArray && node.Items != nil:
		if node.Items.HasMoreFields() || node.Items.Kind == schema.KindObject {
			// The element schema inherits the array's path so element
			// children address themselves relative to it.
			node.Items.Path = node.Path
			b.decorate(node.Items, node.Path, "")
		} else if node.Items.Kind == "" && len(node.Items.Possible) > 0 {
			node.Items.Kind = schema.KindOf(node.Items.Possible[0])
		}
	}
}

// ensureOrder synthesizes the order list for a composite node that lacks one,
// and appends any child the existing list misses. Nodes built through
// PutChild already carry insertion order; hand-built maps fall back to sorted
// names so the result stays deterministic.
func ensureOrder(node *schema.Node) {
	if len(node.Children) == 0 {
		return
	}
	listed := make(map[string]struct{}, len(node.Order))
	order := node.Order[:0]
	for _, name := range node.Order {
		if _, ok := node.Children[name]; !ok {
			continue
		}
		if _, dup := listed[name]; dup {
			continue
		}
		listed[name] = struct{}{}
		order = append(order, name)
	}
	var missing []string
	for name := range node.Children {
		if _, ok := listed[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	node.Order = append(order, missing...)
}

func sortedMapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
