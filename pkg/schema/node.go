package schema

// Node describes a single form field. Elementary nodes carry just the kind
// plus presentation metadata; object nodes own Children keyed by field name
// with Order defining presentation order; array nodes describe their element
// shape through Items.
//
// Order is a first-class attribute, never a reserved key inside Children, so
// field names can never collide with layout metadata.
type Node struct {
	Kind     Kind   `json:"kind,omitempty"`
	Name     string `json:"name,omitempty"`
	Label    string `json:"label,omitempty"`
	Path     string `json:"path,omitempty"`
	Possible []any  `json:"possible,omitempty"`

	Children map[string]*Node `json:"children,omitempty"`
	Order    []string         `json:"order,omitempty"`
	Items    *Node            `json:"items,omitempty"`

	// UI policy flags, passed through to renderers unchanged.
	Deletable       bool `json:"deletable,omitempty"`
	Editable        bool `json:"editable,omitempty"`
	AddField        bool `json:"addField,omitempty"`
	DeletableFields bool `json:"deletableFields,omitempty"`
	EditableFields  bool `json:"editableFields,omitempty"`
}

// NewObject returns an empty object node.
func NewObject() *Node {
	return &Node{Kind: KindObject, Children: make(map[string]*Node)}
}

// NewArray returns an array node with the supplied element schema.
func NewArray(items *Node) *Node {
	return &Node{Kind: KindArray, Items: items}
}

// NewLeaf returns an elementary node of the given kind.
func NewLeaf(kind Kind) *Node {
	return &Node{Kind: kind}
}

// HasMoreFields reports whether the node needs recursive decoration: true for
// object nodes and for array nodes whose element schema is itself composite.
func (n *Node) HasMoreFields() bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case KindObject:
		return true
	case KindArray:
		return n.Items != nil && !n.Items.Kind.Elementary()
	default:
		return false
	}
}

// Child returns the named child of an object node.
func (n *Node) Child(name string) (*Node, bool) {
	if n == nil || n.Children == nil {
		return nil, false
	}
	child, ok := n.Children[name]
	return child, ok
}

// PutChild stores child under name. Unknown names append to Order; known
// names replace the node and keep their slot.
func (n *Node) PutChild(name string, child *Node) {
	if n.Children == nil {
		n.Children = make(map[string]*Node)
	}
	if _, exists := n.Children[name]; !exists {
		n.Order = append(n.Order, name)
	}
	n.Children[name] = child
}

// RemoveChild deletes the named child and its Order slot, reporting whether
// it was present.
func (n *Node) RemoveChild(name string) bool {
	if n == nil || n.Children == nil {
		return false
	}
	if _, ok := n.Children[name]; !ok {
		return false
	}
	delete(n.Children, name)
	for i, existing := range n.Order {
		if existing == name {
			n.Order = append(n.Order[:i], n.Order[i+1:]...)
			break
		}
	}
	return true
}

// OrderedChildren returns the children following Order. Children missing an
// Order slot are skipped; callers that need every child should normalize the
// schema first.
func (n *Node) OrderedChildren() []*Node {
	if n == nil || len(n.Order) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(n.Order))
	for _, name := range n.Order {
		if child, ok := n.Children[name]; ok {
			out = append(out, child)
		}
	}
	return out
}

// Clone returns a deep copy of the node and everything below it.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	if n.Possible != nil {
		out.Possible = append([]any(nil), n.Possible...)
	}
	if n.Order != nil {
		out.Order = append([]string(nil), n.Order...)
	}
	if n.Children != nil {
		out.Children = make(map[string]*Node, len(n.Children))
		for name, child := range n.Children {
			out.Children[name] = child.Clone()
		}
	}
	out.Items = n.Items.Clone()
	return &out
}
