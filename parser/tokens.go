package parser

import (
	"litdom/parser/dom"
)

type tokenType uint

const (
	textToken tokenType = iota
	startTagToken
	endTagToken
	commentToken
	doctypeToken
	endOfFileToken
)

func (t tokenType) String() string {
	switch t {
	case textToken:
		return "textToken"
	case startTagToken:
		return "startTagToken"
	case endTagToken:
		return "endTagToken"
	case commentToken:
		return "commentToken"
	case doctypeToken:
		return "doctypeToken"
	case endOfFileToken:
		return "endOfFileToken"
	default:
		return "unknownToken"
	}
}

// Token is a concrete token that is ready to be emitted.
type Token struct {
	TokenType   tokenType
	TagName     string
	Attributes  *dom.Attributes
	SelfClosing bool
	Data        string
	Span        dom.SourceSpan
}

// tokenBuilder accumulates the pieces of a tag token while the tokenizer
// scans it.
type tokenBuilder struct {
	name        string
	attributes  *dom.Attributes
	selfClosing bool
}

func newTokenBuilder() *tokenBuilder {
	return &tokenBuilder{attributes: &dom.Attributes{}}
}

// newToken clears the builder for the next tag.
func (b *tokenBuilder) newToken() {
	b.name = ""
	b.attributes = &dom.Attributes{}
	b.selfClosing = false
}

func (b *tokenBuilder) setName(name string) {
	b.name = name
}

func (b *tokenBuilder) enableSelfClosing() {
	b.selfClosing = true
}

// commitAttribute ends the creation of a key/value pair. A repeated key
// keeps its first position but takes the latest value.
func (b *tokenBuilder) commitAttribute(key, value string) {
	if key == "" {
		return
	}
	b.attributes.Set(key, value)
}

// startTagToken creates a start tag token from the builder contents.
func (b *tokenBuilder) startTagToken(span dom.SourceSpan) Token {
	return Token{
		TokenType:   startTagToken,
		TagName:     b.name,
		Attributes:  b.attributes,
		SelfClosing: b.selfClosing,
		Span:        span,
	}
}

// endTagToken creates an end tag token from the builder contents.
func (b *tokenBuilder) endTagToken(span dom.SourceSpan) Token {
	return Token{
		TokenType: endTagToken,
		TagName:   b.name,
		Span:      span,
	}
}
