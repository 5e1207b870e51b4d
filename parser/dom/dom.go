package dom

import "iter"

// Dom is the top-level container: the ordered sequence of root-level
// nodes. A full document keeps its root <html> element here like any
// other node; fragments simply have several root siblings. Dom is a plain
// value with no hidden state, so independent parses never contend.
type Dom struct {
	Children []Node
}

// New returns an empty Dom for manual assembly.
func New() *Dom {
	return &Dom{}
}

// All walks every node of the tree depth-first, root siblings first. The
// sequence is lazy and restartable.
func (d *Dom) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		walk(d.Children, yield)
	}
}

// Descendants walks the element's subtree depth-first, the element itself
// excluded.
func (e *Element) Descendants() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		walk(e.Children, yield)
	}
}

func walk(nodes []Node, yield func(Node) bool) bool {
	for _, n := range nodes {
		if !yield(n) {
			return false
		}
		if e, ok := n.(*Element); ok {
			if !walk(e.Children, yield) {
				return false
			}
		}
	}
	return true
}

// Equal reports structural equality of both trees, ignoring source spans.
func (d *Dom) Equal(o *Dom) bool {
	if d == nil || o == nil {
		return d == o
	}
	if len(d.Children) != len(o.Children) {
		return false
	}
	for i := range d.Children {
		if !Equal(d.Children[i], o.Children[i]) {
			return false
		}
	}
	return true
}
