package dom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidName(t *testing.T) {
	valid := []string{"div", "C4-t", "Cat", "h1", "my-element"}
	for _, name := range valid {
		require.True(t, ValidName(name), name)
	}
	invalid := []string{"", "9div", "-x", "di v", "a_b", "a.b"}
	for _, name := range invalid {
		require.False(t, ValidName(name), name)
	}
}

func TestNewElementRejectsBadNames(t *testing.T) {
	_, err := NewElement("9bad", Normal)
	require.ErrorIs(t, err, ErrInvalidInput)

	e, err := NewElement("div", Normal)
	require.NoError(t, err)
	require.Equal(t, "div", e.Name)
}

func TestVoidElementsRefuseChildren(t *testing.T) {
	br, err := NewElement("br", Void)
	require.NoError(t, err)
	err = br.AppendChild(Text("x"))
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Empty(t, br.Children)

	div, err := NewElement("div", Normal)
	require.NoError(t, err)
	require.NoError(t, div.AppendChild(Text("x")))
	require.Len(t, div.Children, 1)
}

func TestAttributesOrderAndOverwrite(t *testing.T) {
	var a Attributes
	a.Set("b", "1")
	a.Set("a", "2")
	a.Set("c", "3")
	a.Set("b", "9") // overwrite keeps position

	require.Equal(t, 3, a.Len())
	require.Equal(t, []string{"b", "a", "c"}, a.Keys())
	v, ok := a.Get("b")
	require.True(t, ok)
	require.Equal(t, "9", v)

	_, ok = a.Get("missing")
	require.False(t, ok)
}

func TestAttributesEqualIsOrderSensitive(t *testing.T) {
	var a, b Attributes
	a.Set("x", "1")
	a.Set("y", "2")
	b.Set("y", "2")
	b.Set("x", "1")
	require.False(t, a.Equal(b))

	var c Attributes
	c.Set("x", "1")
	c.Set("y", "2")
	require.True(t, a.Equal(c))
}

func TestNodeEqualIgnoresSpans(t *testing.T) {
	a := &Element{Name: "div", SourceSpan: SourceSpan{Start: 5, End: 9}}
	b := &Element{Name: "div"}
	require.True(t, Equal(a, b))

	require.True(t, Equal(Text("x"), Text("x")))
	require.False(t, Equal(Text("x"), Comment("x")))
	require.False(t, Equal(Text("x"), Text("y")))
	require.False(t, Equal(a, &Element{Name: "span"}))
}

func TestDomAllWalksDepthFirst(t *testing.T) {
	inner := &Element{Name: "b", Children: []Node{Text("x")}}
	root := &Element{Name: "div", Children: []Node{Text("a"), inner, Comment("c")}}
	d := New()
	d.Children = append(d.Children, root, Text("tail"))

	var got []Node
	for n := range d.All() {
		got = append(got, n)
	}
	require.Equal(t, []Node{root, Text("a"), inner, Text("x"), Comment("c"), Text("tail")}, got)

	// restartable
	count := 0
	for range d.All() {
		count++
	}
	require.Equal(t, 6, count)

	// early break is safe
	for range d.All() {
		break
	}

	var sub []Node
	for n := range root.Descendants() {
		sub = append(sub, n)
	}
	require.Equal(t, []Node{Text("a"), inner, Text("x"), Comment("c")}, sub)
}
