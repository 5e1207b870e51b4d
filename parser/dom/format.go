package dom

import (
	"strings"
)

// FormattingOptions controls the formatted markup output.
type FormattingOptions struct {
	// Quote is the preferred attribute quote. When a value contains the
	// preferred quote and not the other one, the other is used instead;
	// a value containing both gets the preferred quote with backslash
	// escapes.
	Quote byte
	// Indent is the number of spaces per tree depth.
	Indent int
	// MaxLen is the column at which tag headers split one attribute per
	// line and class token lists wrap.
	MaxLen int
	// NewLines switches the indented multi-line layout on. Without it the
	// whole tree renders on a single line and text stays verbatim.
	NewLines bool
}

// Pretty returns the indented, line-wrapped layout used by String.
func Pretty() FormattingOptions {
	return FormattingOptions{Quote: '"', Indent: 2, MaxLen: 80, NewLines: true}
}

// Compact returns a single-line layout that keeps text verbatim.
func Compact() FormattingOptions {
	return FormattingOptions{Quote: '"'}
}

// String renders the tree as indented markup. The output is a canonical
// re-rendering, not a byte-for-byte echo of the original input, and is
// stable: rendering, re-parsing and rendering again gives the same text.
func (d *Dom) String() string {
	return d.Format(Pretty())
}

// Format renders the tree as markup text under the given options.
func (d *Dom) Format(o FormattingOptions) string {
	var b strings.Builder
	for _, n := range d.Children {
		if o.NewLines && isBlankText(n) {
			continue
		}
		renderNode(&b, n, o, 0)
		if o.NewLines {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FormatNode renders a single node as markup text.
func FormatNode(n Node, o FormattingOptions) string {
	var b strings.Builder
	renderNode(&b, n, o, 0)
	return b.String()
}

func (e *Element) String() string {
	return FormatNode(e, Pretty())
}

func renderNode(b *strings.Builder, n Node, o FormattingOptions, depth int) {
	switch x := n.(type) {
	case Text:
		if !o.NewLines {
			b.WriteString(string(x))
			return
		}
		b.WriteString(padding(o, depth))
		b.WriteString(strings.TrimSpace(string(x)))
	case Comment:
		if o.NewLines {
			b.WriteString(padding(o, depth))
		}
		b.WriteString("<!--")
		b.WriteString(string(x))
		b.WriteString("-->")
	case *Element:
		renderElement(b, x, o, depth)
	}
}

func renderElement(b *strings.Builder, e *Element, o FormattingOptions, depth int) {
	if !o.NewLines {
		renderElementCompact(b, e, o)
		return
	}

	pad := padding(o, depth)
	open := "<" + e.Name + inlineAttributes(e, o)
	closerLen := 1
	if e.Variant == Void {
		closerLen = 2
	}

	multi := e.Attributes.Len() > 0 && len(pad)+len(open)+closerLen > o.MaxLen
	if multi {
		b.WriteString(pad)
		b.WriteByte('<')
		b.WriteString(e.Name)
		for k, v := range e.Attributes.All() {
			b.WriteByte('\n')
			writeAttributeLine(b, k, v, o, depth+1)
		}
		b.WriteByte('\n')
		b.WriteString(pad)
		if e.Variant == Void {
			b.WriteString("/>")
			return
		}
		b.WriteByte('>')
	} else {
		b.WriteString(pad)
		b.WriteString(open)
		if e.Variant == Void {
			b.WriteString("/>")
			return
		}
	}

	visible := visibleChildren(e.Children)
	if len(visible) == 0 {
		if !multi {
			b.WriteByte('>')
		}
		b.WriteString("</" + e.Name + ">")
		return
	}

	// A lone short text child stays on the same line as its tags.
	if !multi && len(visible) == 1 {
		if t, ok := visible[0].(Text); ok {
			text := strings.TrimSpace(string(t))
			inline := len(pad) + len(open) + 1 + len(text) + len(e.Name) + 3
			if !strings.Contains(text, "\n") && inline <= o.MaxLen {
				b.WriteByte('>')
				b.WriteString(text)
				b.WriteString("</" + e.Name + ">")
				return
			}
		}
	}

	if !multi {
		b.WriteByte('>')
	}
	for _, c := range visible {
		b.WriteByte('\n')
		renderNode(b, c, o, depth+1)
	}
	b.WriteByte('\n')
	b.WriteString(pad)
	b.WriteString("</" + e.Name + ">")
}

func renderElementCompact(b *strings.Builder, e *Element, o FormattingOptions) {
	b.WriteByte('<')
	b.WriteString(e.Name)
	b.WriteString(inlineAttributes(e, o))
	if e.Variant == Void {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range e.Children {
		renderNode(b, c, o, 0)
	}
	b.WriteString("</" + e.Name + ">")
}

func inlineAttributes(e *Element, o FormattingOptions) string {
	var b strings.Builder
	for k, v := range e.Attributes.All() {
		b.WriteByte(' ')
		b.WriteString(k)
		if v == "" {
			continue
		}
		q := chooseQuote(v, o.Quote)
		b.WriteByte('=')
		b.WriteByte(q)
		b.WriteString(escapeValue(v, q))
		b.WriteByte(q)
	}
	return b.String()
}

// writeAttributeLine writes one attribute on its own line, wrapping class
// token lists at token boundaries when the line would pass MaxLen.
func writeAttributeLine(b *strings.Builder, k, v string, o FormattingOptions, depth int) {
	pad := padding(o, depth)
	if v == "" {
		b.WriteString(pad)
		b.WriteString(k)
		return
	}
	q := chooseQuote(v, o.Quote)
	line := pad + k + "=" + string(q) + escapeValue(v, q) + string(q)
	if k != "class" || len(line) <= o.MaxLen {
		b.WriteString(line)
		return
	}

	cont := padding(o, depth+1)
	cur := pad + k + "=" + string(q)
	hasToken := false
	for _, tok := range strings.Fields(v) {
		tok = escapeValue(tok, q)
		switch {
		case !hasToken:
			cur += tok
			hasToken = true
		case len(cur)+1+len(tok)+1 > o.MaxLen:
			b.WriteString(cur)
			b.WriteByte('\n')
			cur = cont + tok
		default:
			cur += " " + tok
		}
	}
	b.WriteString(cur)
	b.WriteByte(q)
}

func chooseQuote(v string, preferred byte) byte {
	other := byte('\'')
	if preferred == '\'' {
		other = '"'
	}
	if strings.IndexByte(v, preferred) >= 0 && strings.IndexByte(v, other) < 0 {
		return other
	}
	return preferred
}

// escapeValue backslash-escapes the wrapping quote and the backslash
// itself, so a value containing both quote characters still reads back
// verbatim.
func escapeValue(v string, q byte) string {
	if strings.IndexByte(v, q) < 0 && strings.IndexByte(v, '\\') < 0 {
		return v
	}
	var b strings.Builder
	b.Grow(len(v) + 2)
	for i := 0; i < len(v); i++ {
		if v[i] == q || v[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(v[i])
	}
	return b.String()
}

func visibleChildren(children []Node) []Node {
	out := make([]Node, 0, len(children))
	for _, c := range children {
		if isBlankText(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func isBlankText(n Node) bool {
	t, ok := n.(Text)
	return ok && strings.TrimSpace(string(t)) == ""
}

func padding(o FormattingOptions, depth int) string {
	return strings.Repeat(" ", o.Indent*depth)
}
