package parser

import (
	"fmt"
	"strings"

	"litdom/parser/dom"
)

// voidElements are the tags that never contain children and close
// themselves even without a trailing slash.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// TreeConstructor folds the token stream into a dom tree under the
// recovery policy: unmatched opens are closed implicitly, dangling closes
// are discarded, and none of it is an error. Each irregularity is
// recorded as a warning.
type TreeConstructor struct {
	dom          *dom.Dom
	openElements []*dom.Element
	warnings     []string
	warnHandler  func(string)
}

// NewTreeConstructor creates a TreeConstructor with an empty tree.
func NewTreeConstructor() *TreeConstructor {
	return &TreeConstructor{dom: dom.New()}
}

// ProcessToken feeds one token into the tree.
func (c *TreeConstructor) ProcessToken(t Token) {
	switch t.TokenType {
	case textToken:
		c.insertText(t)
	case commentToken:
		c.insertComment(t)
	case startTagToken:
		c.insertElement(t)
	case endTagToken:
		c.processEndTag(t)
	case doctypeToken:
		// The doctype marker does not map to a node kind; it is consumed
		// so a doctype-only document still parses to an empty tree.
	case endOfFileToken:
		c.closeAllOpenElements(t)
	}
}

// Finish returns the completed tree. Parse drives the end-of-file token
// through ProcessToken first, so the close loop here only matters for
// callers feeding tokens by hand that stop early.
func (c *TreeConstructor) Finish() *dom.Dom {
	for len(c.openElements) > 0 {
		top := c.openElements[len(c.openElements)-1]
		c.warn("unclosed element <%s> implicitly closed at end of input", top.Name)
		c.openElements = c.openElements[:len(c.openElements)-1]
	}
	return c.dom
}

// Warnings returns the recovered irregularities seen so far, in order.
func (c *TreeConstructor) Warnings() []string {
	return c.warnings
}

// currentChildren is the insertion point: the children of the top open
// element, or the root sequence when the stack is empty.
func (c *TreeConstructor) currentChildren() *[]dom.Node {
	if len(c.openElements) == 0 {
		return &c.dom.Children
	}
	return &c.openElements[len(c.openElements)-1].Children
}

// insertText appends character data, merging with a preceding text leaf
// so recovered fragments read back as one node.
func (c *TreeConstructor) insertText(t Token) {
	children := c.currentChildren()
	if n := len(*children); n > 0 {
		if prev, ok := (*children)[n-1].(dom.Text); ok {
			(*children)[n-1] = prev + dom.Text(t.Data)
			return
		}
	}
	*children = append(*children, dom.Text(t.Data))
}

func (c *TreeConstructor) insertComment(t Token) {
	children := c.currentChildren()
	*children = append(*children, dom.Comment(t.Data))
}

func (c *TreeConstructor) insertElement(t Token) {
	variant := dom.Normal
	if t.SelfClosing || voidElements[strings.ToLower(t.TagName)] {
		variant = dom.Void
	}
	el := &dom.Element{
		Name:       t.TagName,
		Variant:    variant,
		SourceSpan: t.Span,
	}
	if t.Attributes != nil {
		el.Attributes = *t.Attributes
	}
	if cls, ok := el.Attributes.Get("class"); ok {
		el.Attributes.Set("class", normalizeClass(cls))
	}

	children := c.currentChildren()
	*children = append(*children, el)
	if variant == dom.Normal {
		c.openElements = append(c.openElements, el)
	}
}

// processEndTag searches the open-element stack from the top for a
// case-sensitive name match. Everything above the match is closed
// implicitly; a close tag with no match anywhere is dangling and is
// dropped without touching the stack.
func (c *TreeConstructor) processEndTag(t Token) {
	for i := len(c.openElements) - 1; i >= 0; i-- {
		if c.openElements[i].Name != t.TagName {
			continue
		}
		for j := len(c.openElements) - 1; j > i; j-- {
			c.warn("unclosed element <%s> implicitly closed by </%s>", c.openElements[j].Name, t.TagName)
			c.endSpan(c.openElements[j], t.Span)
		}
		c.endSpan(c.openElements[i], t.Span)
		c.openElements = c.openElements[:i]
		return
	}
	c.warn("discarded dangling close tag </%s>", t.TagName)
}

func (c *TreeConstructor) closeAllOpenElements(t Token) {
	for j := len(c.openElements) - 1; j >= 0; j-- {
		c.warn("unclosed element <%s> implicitly closed at end of input", c.openElements[j].Name)
		c.endSpan(c.openElements[j], t.Span)
	}
	c.openElements = c.openElements[:0]
}

func (c *TreeConstructor) endSpan(el *dom.Element, s dom.SourceSpan) {
	el.SourceSpan.End = s.End
	el.SourceSpan.EndLine = s.EndLine
	el.SourceSpan.EndColumn = s.EndColumn
}

func (c *TreeConstructor) warn(format string, args ...interface{}) {
	w := fmt.Sprintf(format, args...)
	c.warnings = append(c.warnings, w)
	if c.warnHandler != nil {
		c.warnHandler(w)
	}
}

// normalizeClass collapses the whitespace in a class token list to single
// spaces so a line-wrapped class attribute reads back as the value it was
// rendered from.
func normalizeClass(v string) string {
	return strings.Join(strings.Fields(v), " ")
}
