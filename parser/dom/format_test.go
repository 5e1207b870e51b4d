package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatInlineTextChild(t *testing.T) {
	e := &Element{Name: "div", Children: []Node{Text("Hello")}}
	e.Attributes.Set("id", "x")
	d := New()
	d.Children = append(d.Children, e)

	require.Equal(t, "<div id=\"x\">Hello</div>\n", d.String())
}

func TestFormatVoidAndEmptyElements(t *testing.T) {
	d := New()
	d.Children = append(d.Children,
		&Element{Name: "br", Variant: Void},
		&Element{Name: "div"},
	)
	// void renders self-closing, an empty normal element never collapses
	require.Equal(t, "<br/>\n<div></div>\n", d.String())
}

func TestFormatNesting(t *testing.T) {
	span := &Element{Name: "span", Children: []Node{Text("a")}}
	div := &Element{Name: "div", Children: []Node{span, Comment("c")}}
	d := New()
	d.Children = append(d.Children, div)

	want := `<div>
  <span>a</span>
  <!--c-->
</div>
`
	require.Equal(t, want, d.String())
}

func TestFormatQuoteChoice(t *testing.T) {
	e := &Element{Name: "div", Variant: Void}
	e.Attributes.Set("cat", "she says: 'mjau'")
	e.Attributes.Set("horse", `horse says: "pffff"`)

	out := FormatNode(e, Pretty())
	require.Equal(t, `<div cat="she says: 'mjau'" horse='horse says: "pffff"'/>`, out)
}

func TestFormatEscapesValueWithBothQuotes(t *testing.T) {
	e := &Element{Name: "div", Variant: Void}
	e.Attributes.Set("x", `a"b'c`)
	e.Attributes.Set("y", `end\`)

	out := FormatNode(e, Pretty())
	require.Equal(t, `<div x="a\"b'c" y="end\\"/>`, out)
}

func TestFormatValuelessAttribute(t *testing.T) {
	e := &Element{Name: "script", Variant: Normal}
	e.Attributes.Set("defer", "")
	e.Attributes.Set("src", "app.js")

	out := FormatNode(e, Pretty())
	require.Equal(t, `<script defer src="app.js"></script>`, out)
}

func TestFormatLongHeaderSplitsAttributes(t *testing.T) {
	e := &Element{Name: "div"}
	e.Attributes.Set("long_attribute", "Hallo Welt, wie geht es dir heute am Morgen")
	e.Attributes.Set("other_long_attribute", "Es ist wirklich schön")
	d := New()
	d.Children = append(d.Children, e)

	want := `<div
  long_attribute="Hallo Welt, wie geht es dir heute am Morgen"
  other_long_attribute="Es ist wirklich schön"
></div>
`
	require.Equal(t, want, d.String())
}

func TestFormatClassWrapBreaksAtTokenBoundaries(t *testing.T) {
	class := strings.TrimSpace(strings.Repeat("token-name ", 12))
	e := &Element{Name: "div", Children: []Node{Text("x")}}
	e.Attributes.Set("class", class)
	d := New()
	d.Children = append(d.Children, e)

	out := d.String()
	lines := strings.Split(out, "\n")
	wrapped := 0
	for _, line := range lines {
		require.LessOrEqual(t, len(line), 80, "line too long: %q", line)
		wrapped += strings.Count(line, "token-name")
	}
	require.Equal(t, 12, wrapped, "no token may be split:\n%s", out)
	require.Greater(t, len(lines), 5)
}

func TestFormatSkipsBlankTextInPrettyMode(t *testing.T) {
	div := &Element{Name: "div", Children: []Node{Text("\n  "), Text("a"), Text("\t")}}
	d := New()
	d.Children = append(d.Children, div)

	require.Equal(t, "<div>a</div>\n", d.String())
}

func TestFormatCompact(t *testing.T) {
	span := &Element{Name: "span", Children: []Node{Text("B ")}}
	a := &Element{Name: "a", Children: []Node{span, Text("Budget")}}
	a.Attributes.Set("href", "/x")
	d := New()
	d.Children = append(d.Children, a)

	require.Equal(t, `<a href="/x"><span>B </span>Budget</a>`, d.Format(Compact()))
}

func TestElementString(t *testing.T) {
	e := &Element{Name: "p", Children: []Node{Text("hi")}}
	require.Equal(t, "<p>hi</p>", e.String())
}
