package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"litdom/parser/dom"
)

func mustParse(t *testing.T, in string) *dom.Dom {
	t.Helper()
	d, err := Parse(in)
	require.NoError(t, err)
	return d
}

func asElement(t *testing.T, n dom.Node) *dom.Element {
	t.Helper()
	e, ok := n.(*dom.Element)
	require.True(t, ok, "expected element, got %T", n)
	return e
}

func TestDanglingCloseTagDiscarded(t *testing.T) {
	p := NewParser("<div>text</h1></div>")
	d, err := p.Parse()
	require.NoError(t, err)

	require.Len(t, d.Children, 1)
	div := asElement(t, d.Children[0])
	require.Equal(t, "div", div.Name)
	require.Equal(t, []dom.Node{dom.Text("text")}, div.Children)

	require.Len(t, p.Warnings(), 1)
	require.Contains(t, p.Warnings()[0], "dangling close tag </h1>")
}

func TestInterleavedTagsCloseImplicitly(t *testing.T) {
	p := NewParser("<b><i>x</b></i>")
	d, err := p.Parse()
	require.NoError(t, err)

	require.Len(t, d.Children, 1)
	b := asElement(t, d.Children[0])
	require.Equal(t, "b", b.Name)
	require.Len(t, b.Children, 1)
	i := asElement(t, b.Children[0])
	require.Equal(t, "i", i.Name)
	require.Equal(t, []dom.Node{dom.Text("x")}, i.Children)

	// one implicit close of <i>, one dangling </i>
	require.Len(t, p.Warnings(), 2)
	require.Contains(t, p.Warnings()[0], "unclosed element <i>")
	require.Contains(t, p.Warnings()[1], "dangling close tag </i>")
}

func TestVoidElementsAutoClose(t *testing.T) {
	d := mustParse(t, "text<br>more")
	require.Len(t, d.Children, 3)
	require.Equal(t, dom.Text("text"), d.Children[0])
	br := asElement(t, d.Children[1])
	require.Equal(t, "br", br.Name)
	require.Equal(t, dom.Void, br.Variant)
	require.Empty(t, br.Children)
	require.Equal(t, dom.Text("more"), d.Children[2])
}

func TestSelfClosingIsVoid(t *testing.T) {
	d := mustParse(t, "<div id=cat />")
	require.Len(t, d.Children, 1)
	div := asElement(t, d.Children[0])
	require.Equal(t, "div", div.Name)
	require.Equal(t, dom.Void, div.Variant)
	id, ok := div.Attributes.Get("id")
	require.True(t, ok)
	require.Equal(t, "cat", id)
	require.Empty(t, div.Children)
}

func TestCustomElementNamesKeepCasing(t *testing.T) {
	d := mustParse(t, "<C4-t/>")
	require.Len(t, d.Children, 1)
	require.Equal(t, "C4-t", asElement(t, d.Children[0]).Name)
}

func TestCloseTagsMatchCaseSensitively(t *testing.T) {
	p := NewParser("<Div></div>")
	d, err := p.Parse()
	require.NoError(t, err)

	require.Len(t, d.Children, 1)
	require.Equal(t, "Div", asElement(t, d.Children[0]).Name)

	require.Len(t, p.Warnings(), 2)
	require.Contains(t, p.Warnings()[0], "dangling close tag </div>")
	require.Contains(t, p.Warnings()[1], "implicitly closed at end of input")
}

func TestCommentsAreRetained(t *testing.T) {
	d := mustParse(t, "<div><!-- note --></div>")
	div := asElement(t, d.Children[0])
	require.Equal(t, []dom.Node{dom.Comment(" note ")}, div.Children)
}

func TestDoctypeOnlyDocumentParsesEmpty(t *testing.T) {
	d := mustParse(t, "<!doctype html>")
	require.Empty(t, d.Children)
}

func TestRootSiblings(t *testing.T) {
	d := mustParse(t, "<div>a</div><p>b</p>")
	require.Len(t, d.Children, 2)
	require.Equal(t, "div", asElement(t, d.Children[0]).Name)
	require.Equal(t, "p", asElement(t, d.Children[1]).Name)
}

func TestTextMergesAcrossDiscardedTokens(t *testing.T) {
	d := mustParse(t, "a</nope>b")
	require.Equal(t, []dom.Node{dom.Text("ab")}, d.Children)
}

func TestClassAttributeWhitespaceNormalized(t *testing.T) {
	d := mustParse(t, "<div class=\"a   b\n  c\"></div>")
	div := asElement(t, d.Children[0])
	cls, ok := div.Attributes.Get("class")
	require.True(t, ok)
	require.Equal(t, "a b c", cls)
}

func TestAttributeOrderPreserved(t *testing.T) {
	d := mustParse(t, `<div b="1" a="2" c="3"></div>`)
	div := asElement(t, d.Children[0])
	require.Equal(t, []string{"b", "a", "c"}, div.Attributes.Keys())
}

func TestUnclosedTagsCloseAtEOF(t *testing.T) {
	p := NewParser("<html><body><p>hi")
	d, err := p.Parse()
	require.NoError(t, err)

	html := asElement(t, d.Children[0])
	body := asElement(t, html.Children[0])
	pEl := asElement(t, body.Children[0])
	require.Equal(t, []dom.Node{dom.Text("hi")}, pEl.Children)

	require.Len(t, p.Warnings(), 3)
	for _, w := range p.Warnings() {
		require.Contains(t, w, "end of input")
	}
}

func TestElementSourceSpans(t *testing.T) {
	in := "<div>\n  <p>hi</p>\n</div>"
	d := mustParse(t, in)

	div := asElement(t, d.Children[0])
	require.Equal(t, 0, div.SourceSpan.Start)
	require.Equal(t, len(in), div.SourceSpan.End)
	require.Equal(t, 1, div.SourceSpan.StartLine)
	require.Equal(t, 3, div.SourceSpan.EndLine)

	var p *dom.Element
	for n := range d.All() {
		if e, ok := n.(*dom.Element); ok && e.Name == "p" {
			p = e
		}
	}
	require.NotNil(t, p)
	require.Equal(t, 2, p.SourceSpan.StartLine)
	require.Equal(t, 3, p.SourceSpan.StartColumn)
	require.Equal(t, strings.Index(in, "</p>")+len("</p>"), p.SourceSpan.End)
}

func TestWarningHandlerObservesRecoveries(t *testing.T) {
	var seen []string
	p := NewParser("<div></h1></div>", WithWarningHandler(func(w string) {
		seen = append(seen, w)
	}))
	_, err := p.Parse()
	require.NoError(t, err)
	require.Equal(t, p.Warnings(), seen)
	require.Len(t, seen, 1)
}
