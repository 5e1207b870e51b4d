// Package parser turns HTML/XHTML text into a dom tree. It is lenient by
// design: tag-matching irregularities are recovered through an
// open-element stack and surfaced as warnings, never as errors. The same
// entry point handles full documents and fragments; a fragment simply
// parses to several root siblings.
package parser

import (
	"unicode/utf8"

	"github.com/pkg/errors"

	"litdom/parser/dom"
)

// Parser wires a Tokenizer to a TreeConstructor for one input. A Parser
// is single-use; independent parses share nothing and may run
// concurrently.
type Parser struct {
	Tokenizer       *Tokenizer
	TreeConstructor *TreeConstructor

	input string
}

// Option configures a Parser.
type Option func(*Parser)

// WithWarningHandler registers a hook that observes each recovery warning
// as it happens. The parser itself never logs.
func WithWarningHandler(h func(string)) Option {
	return func(p *Parser) {
		p.TreeConstructor.warnHandler = h
	}
}

// NewParser creates a parser for the given markup text.
func NewParser(input string, opts ...Option) *Parser {
	p := &Parser{
		Tokenizer:       NewTokenizer(input),
		TreeConstructor: NewTreeConstructor(),
		input:           input,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs the full pipeline and returns the best-effort tree. The only
// failure is input that cannot be tokenized at all; empty input parses to
// an empty tree.
func (p *Parser) Parse() (*dom.Dom, error) {
	if !utf8.ValidString(p.input) {
		return nil, errors.Wrap(dom.ErrInvalidInput, "input is not valid UTF-8")
	}
	for p.Tokenizer.Next() {
		p.TreeConstructor.ProcessToken(p.Tokenizer.Token())
	}
	return p.TreeConstructor.Finish(), nil
}

// Warnings returns the recovery warnings collected during Parse.
func (p *Parser) Warnings() []string {
	return p.TreeConstructor.Warnings()
}

// Parse is the convenience form of NewParser().Parse().
func Parse(input string) (*dom.Dom, error) {
	return NewParser(input).Parse()
}

// ParseFragment parses a markup fragment into its sequence of root
// sibling nodes, for composing trees programmatically.
func ParseFragment(input string) ([]dom.Node, error) {
	d, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return d.Children, nil
}
