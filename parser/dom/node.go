// Package dom holds the tree produced by parsing: a closed set of node
// kinds (Element, Text, Comment) under a Dom root, plus the two
// serializers over that tree (structured JSON and formatted markup).
package dom

import (
	"github.com/pkg/errors"
)

// ElementVariant tells whether an element can carry children.
type ElementVariant uint

const (
	// Normal elements have an explicit close tag and may have children,
	// ex: <div></div>.
	Normal ElementVariant = iota
	// Void elements never have children and render self-closing,
	// ex: <br/> and <meta>.
	Void
)

func (v ElementVariant) String() string {
	switch v {
	case Normal:
		return "normal"
	case Void:
		return "void"
	default:
		return "unknown"
	}
}

// Node is one node of the parsed tree. The set of implementations is
// closed: *Element, Text and Comment. Consumers switch exhaustively over
// these three kinds.
type Node interface {
	node()
}

// Text is a leaf holding character data verbatim, whitespace included.
type Text string

func (Text) node() {}

// Comment is a leaf holding the raw comment body, delimiters excluded.
type Comment string

func (Comment) node() {}

// Element is a named node with attributes and owned children. Elements
// own their subtree outright; there are no parent back-pointers.
type Element struct {
	// Name of the tag with its original casing preserved.
	Name string
	// Variant of the element, normal or void.
	Variant ElementVariant
	// Attributes in first-seen order with unique keys.
	Attributes Attributes
	// Children in document order. Always empty for void elements.
	Children []Node
	// SourceSpan of the element in the parsed input. Zero for elements
	// built programmatically. Not part of structural equality.
	SourceSpan SourceSpan
}

func (*Element) node() {}

// NewElement builds an empty element, rejecting names that break the tag
// lexical rule.
func NewElement(name string, variant ElementVariant) (*Element, error) {
	if !ValidName(name) {
		return nil, errors.Wrapf(ErrInvalidInput, "invalid element name %q", name)
	}
	return &Element{Name: name, Variant: variant}, nil
}

// AppendChild adds a child node, refusing on void elements so the
// no-children invariant holds at construction time rather than by
// convention.
func (e *Element) AppendChild(n Node) error {
	if e.Variant == Void {
		return errors.Wrapf(ErrInvalidInput, "void element <%s> cannot have children", e.Name)
	}
	e.Children = append(e.Children, n)
	return nil
}

// ValidName reports whether name matches the tag lexical rule: a leading
// letter followed by letters, digits and hyphens.
func ValidName(name string) bool {
	if name == "" || !isLetter(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return false
		}
	}
	return true
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameByte(b byte) bool {
	return isLetter(b) || (b >= '0' && b <= '9') || b == '-'
}

// Equal compares two nodes structurally: kind, name, variant, attribute
// entries in order, and children recursively. Source spans are ignored.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case Text:
		y, ok := b.(Text)
		return ok && x == y
	case Comment:
		y, ok := b.(Comment)
		return ok && x == y
	case *Element:
		y, ok := b.(*Element)
		return ok && x.Equal(y)
	}
	return false
}

// Equal reports structural equality with another element, ignoring source
// spans.
func (e *Element) Equal(o *Element) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.Name != o.Name || e.Variant != o.Variant {
		return false
	}
	if !e.Attributes.Equal(o.Attributes) {
		return false
	}
	if len(e.Children) != len(o.Children) {
		return false
	}
	for i := range e.Children {
		if !Equal(e.Children[i], o.Children[i]) {
			return false
		}
	}
	return true
}
