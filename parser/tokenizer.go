package parser

import (
	"sort"
	"strings"

	"litdom/parser/dom"
)

// Tokenizer turns markup text into a lazy, ordered token stream. It is
// greedy and never backtracks across tree structure: tag syntax that
// cannot be matched lexically degrades to text instead of failing, so
// tokenization alone never raises an error.
type Tokenizer struct {
	input   string
	pos     int
	lines   []int // byte offset of each line start, for span positions
	builder *tokenBuilder
	tok     Token
	done    bool
}

// NewTokenizer creates a tokenizer over the given markup text.
func NewTokenizer(input string) *Tokenizer {
	lines := []int{0}
	for i := 0; i < len(input); i++ {
		if input[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &Tokenizer{
		input:   input,
		lines:   lines,
		builder: newTokenBuilder(),
	}
}

// Next scans the next token. It returns false once the end-of-file token
// has been produced.
func (z *Tokenizer) Next() bool {
	if z.done {
		return false
	}
	if z.pos >= len(z.input) {
		z.tok = Token{TokenType: endOfFileToken, Span: z.span(z.pos, z.pos)}
		z.done = true
		return true
	}
	if z.input[z.pos] == '<' {
		if tok, ok := z.scanMarkup(); ok {
			z.tok = tok
			return true
		}
	}
	z.tok = z.scanText()
	return true
}

// Token returns the token scanned by the last call to Next.
func (z *Tokenizer) Token() Token {
	return z.tok
}

// position resolves a byte offset to a 1-indexed line and column.
func (z *Tokenizer) position(off int) (line, col int) {
	i := sort.SearchInts(z.lines, off+1) - 1
	return i + 1, off - z.lines[i] + 1
}

func (z *Tokenizer) span(start, end int) dom.SourceSpan {
	sl, sc := z.position(start)
	el, ec := z.position(end)
	return dom.SourceSpan{
		Start:       start,
		End:         end,
		StartLine:   sl,
		EndLine:     el,
		StartColumn: sc,
		EndColumn:   ec,
	}
}

// scanText consumes character data up to the next '<'. The first byte is
// taken unconditionally so that a '<' rejected by scanMarkup becomes
// ordinary text.
func (z *Tokenizer) scanText() Token {
	start := z.pos
	z.pos++
	for z.pos < len(z.input) && z.input[z.pos] != '<' {
		z.pos++
	}
	return Token{TokenType: textToken, Data: z.input[start:z.pos], Span: z.span(start, z.pos)}
}

// scanMarkup dispatches on the construct starting at the current '<'. It
// reports false without consuming anything when the input is not valid
// markup here, leaving the '<' to be re-read as text.
func (z *Tokenizer) scanMarkup() (Token, bool) {
	rest := z.input[z.pos:]
	switch {
	case strings.HasPrefix(rest, "<!--"):
		return z.scanComment(), true
	case len(rest) >= 2 && rest[1] == '!':
		if len(rest) >= 9 && strings.EqualFold(rest[2:9], "doctype") {
			return z.scanDoctype(), true
		}
		return z.scanBogusComment(), true
	case len(rest) >= 3 && rest[1] == '/' && isTagNameStart(rest[2]):
		return z.scanEndTag()
	case len(rest) >= 2 && isTagNameStart(rest[1]):
		return z.scanStartTag()
	}
	return Token{}, false
}

func (z *Tokenizer) scanComment() Token {
	start := z.pos
	body := z.pos + len("<!--")
	end := strings.Index(z.input[body:], "-->")
	if end < 0 {
		// unterminated comment runs to the end of input
		z.pos = len(z.input)
		return Token{TokenType: commentToken, Data: z.input[body:], Span: z.span(start, z.pos)}
	}
	z.pos = body + end + len("-->")
	return Token{TokenType: commentToken, Data: z.input[body : body+end], Span: z.span(start, z.pos)}
}

// scanBogusComment handles "<!" constructs that are neither comments nor
// doctypes; everything up to the next '>' becomes comment data.
func (z *Tokenizer) scanBogusComment() Token {
	start := z.pos
	body := z.pos + len("<!")
	end := strings.IndexByte(z.input[body:], '>')
	if end < 0 {
		z.pos = len(z.input)
		return Token{TokenType: commentToken, Data: z.input[body:], Span: z.span(start, z.pos)}
	}
	z.pos = body + end + 1
	return Token{TokenType: commentToken, Data: z.input[body : body+end], Span: z.span(start, z.pos)}
}

func (z *Tokenizer) scanDoctype() Token {
	start := z.pos
	body := z.pos + len("<!")
	end := strings.IndexByte(z.input[body:], '>')
	if end < 0 {
		z.pos = len(z.input)
		return Token{TokenType: doctypeToken, Data: z.input[body:], Span: z.span(start, z.pos)}
	}
	z.pos = body + end + 1
	return Token{TokenType: doctypeToken, Data: z.input[body : body+end], Span: z.span(start, z.pos)}
}

// scanEndTag reads "</name ...>". Anything between the name and '>' is
// discarded; close tags carry no attributes.
func (z *Tokenizer) scanEndTag() (Token, bool) {
	start := z.pos
	i := z.pos + len("</")
	j := i
	for j < len(z.input) && isTagNameByte(z.input[j]) {
		j++
	}
	end := strings.IndexByte(z.input[j:], '>')
	if end < 0 {
		return Token{}, false
	}
	z.pos = j + end + 1
	z.builder.newToken()
	z.builder.setName(z.input[i:j])
	return z.builder.endTagToken(z.span(start, z.pos)), true
}

// scanStartTag reads "<name attr=value ...>" including the self-closing
// form. It fails, consuming nothing, when the tag is unterminated.
func (z *Tokenizer) scanStartTag() (Token, bool) {
	start := z.pos
	i := z.pos + 1
	j := i
	for j < len(z.input) && isTagNameByte(z.input[j]) {
		j++
	}

	b := z.builder
	b.newToken()
	b.setName(z.input[i:j])

	p := j
	for {
		for p < len(z.input) && isWhitespace(z.input[p]) {
			p++
		}
		if p >= len(z.input) {
			return Token{}, false
		}
		switch z.input[p] {
		case '>':
			z.pos = p + 1
			return b.startTagToken(z.span(start, z.pos)), true
		case '/':
			if p+1 < len(z.input) && z.input[p+1] == '>' {
				b.enableSelfClosing()
				z.pos = p + 2
				return b.startTagToken(z.span(start, z.pos)), true
			}
			p++
			continue
		}

		key, value, next, ok := z.scanAttribute(p)
		if !ok {
			return Token{}, false
		}
		b.commitAttribute(key, value)
		p = next
	}
}

// scanAttribute reads one key[=value] pair starting at p, which is known
// to not be whitespace, '>' or '/'. It reports false on an unterminated
// quoted value.
func (z *Tokenizer) scanAttribute(p int) (key, value string, next int, ok bool) {
	ks := p
	// A leading '=' sticks to the attribute name rather than starting an
	// empty one.
	if z.input[p] == '=' {
		p++
	}
	for p < len(z.input) && !isWhitespace(z.input[p]) && z.input[p] != '=' && z.input[p] != '>' && z.input[p] != '/' {
		p++
	}
	key = z.input[ks:p]

	q := p
	for q < len(z.input) && isWhitespace(z.input[q]) {
		q++
	}
	if q >= len(z.input) || z.input[q] != '=' {
		return key, "", p, true
	}
	p = q + 1
	for p < len(z.input) && isWhitespace(z.input[p]) {
		p++
	}
	if p >= len(z.input) {
		return "", "", 0, false
	}

	if c := z.input[p]; c == '\'' || c == '"' {
		value, next, ok := z.scanQuotedValue(p+1, c)
		if !ok {
			return "", "", 0, false
		}
		return key, value, next, true
	}

	vs := p
	for p < len(z.input) && !isWhitespace(z.input[p]) && z.input[p] != '>' {
		p++
	}
	return key, z.input[vs:p], p, true
}

// scanQuotedValue reads a quoted value starting just after the opening
// quote. A backslash escapes the quote character and the backslash
// itself; any other byte after a backslash is kept verbatim. It reports
// false when the closing quote is missing.
func (z *Tokenizer) scanQuotedValue(p int, q byte) (string, int, bool) {
	var b strings.Builder
	for p < len(z.input) {
		c := z.input[p]
		switch {
		case c == '\\' && p+1 < len(z.input) && (z.input[p+1] == q || z.input[p+1] == '\\'):
			b.WriteByte(z.input[p+1])
			p += 2
		case c == q:
			return b.String(), p + 1, true
		default:
			b.WriteByte(c)
			p++
		}
	}
	return "", 0, false
}

func isTagNameStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isTagNameByte(b byte) bool {
	return isTagNameStart(b) || (b >= '0' && b <= '9') || b == '-'
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\f' || b == '\r'
}
