// Package parser assembles Tiny ASTs from a materialized token sequence.
// The token cursor gives the parser arbitrary lookahead and cheap rollback:
// ambiguous alternatives are tried speculatively and the cursor is rewound
// when a production fails to reduce.
package parser

import (
	"github.com/tinypl/tiny/internal/ast"
	"github.com/tinypl/tiny/internal/diag"
	"github.com/tinypl/tiny/internal/lexer"
	"github.com/tinypl/tiny/internal/stream"
)

// ParseError captures a recoverable parsing error with location context.
type ParseError struct {
	Message  string
	Meta     diag.Metadata
	Severity diag.Severity
	Code     diag.Code
	Help     string
}

// ToDiagnostic converts a parse error into a shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	code := e.Code
	if code == "" {
		code = diag.CodeParserUnexpectedToken
	}
	return diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: e.Severity,
		Code:     code,
		Message:  e.Message,
		Meta:     e.Meta,
		Help:     e.Help,
	}
}

// Parser implements a recursive descent parser for Tiny.
//
// Invariants:
//   - Lookahead: toks is the only token source. Productions read via next/
//     peek and roll back failed alternatives with Seek, so the cursor
//     position always marks exactly how much input a production consumed.
//   - Diagnostics: errors is an append-only accumulator of recoverable
//     diagnostics. Callers consult Errors() after ParseFile; negative tests
//     assert ordering, so mutations must remain append-only and stable.
//   - Arena: every node is allocated in the file's own Tree; no node ever
//     crosses between files.
type Parser struct {
	toks *stream.Stream[lexer.Token]
	tree *ast.Tree

	errors   []ParseError
	filename string
}

// Option configures a Parser.
type Option func(*Parser)

// WithFilename configures the parser to attribute emitted metadata to the
// provided filename when a token carries none.
func WithFilename(name string) Option {
	return func(p *Parser) {
		p.filename = name
	}
}

// New creates a parser over a materialized token sequence.
func New(toks []lexer.Token, opts ...Option) *Parser {
	p := &Parser{toks: stream.New(toks)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse tokenizes and parses one source file in a single call, returning the
// AST and every diagnostic either stage produced.
func Parse(source, filename string) (*ast.File, []diag.Diagnostic) {
	lx := lexer.New(source, filename)
	toks := lx.Lex()

	p := New(toks, WithFilename(filename))
	file := p.ParseFile()

	var diags []diag.Diagnostic
	for _, e := range lx.Errors {
		diags = append(diags, e.ToDiagnostic())
	}
	for _, e := range p.Errors() {
		diags = append(diags, e.ToDiagnostic())
	}
	return file, diags
}

// Errors returns the recoverable diagnostics collected while parsing.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// next consumes and returns the upcoming token.
func (p *Parser) next() lexer.Token {
	return p.toks.Get()
}

// peek returns the upcoming token without consuming it.
func (p *Parser) peek() lexer.Token {
	return p.toks.Peek()
}

// peekAt returns the token n positions ahead of the cursor without moving
// it. peekAt(0) is peek.
func (p *Parser) peekAt(n int) lexer.Token {
	pos := p.toks.Pos()
	p.toks.Advance(n)
	tok := p.toks.Peek()
	p.toks.Seek(pos)
	return tok
}

// expect consumes the upcoming token when it matches tt. On mismatch it
// reports an error, leaves the cursor untouched and returns ok=false.
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, bool) {
	tok := p.peek()
	if tok.Type != tt {
		p.reportExpected(string(tt), tok)
		return tok, false
	}
	return p.next(), true
}

// accept consumes the upcoming token when it matches tt and reports whether
// it did. No diagnostic is emitted on mismatch.
func (p *Parser) accept(tt lexer.TokenType) (lexer.Token, bool) {
	if p.peek().Type != tt {
		return lexer.Token{}, false
	}
	return p.next(), true
}

func (p *Parser) meta(tok lexer.Token) diag.Metadata {
	m := tok.Meta
	if m.Filename == "" {
		m.Filename = p.filename
	}
	return m
}

func (p *Parser) reportError(msg string, meta diag.Metadata) {
	if meta.Filename == "" {
		meta.Filename = p.filename
	}
	p.errors = append(p.errors, ParseError{
		Message:  msg,
		Meta:     meta,
		Severity: diag.SeverityError,
	})
}

func (p *Parser) reportExpected(expected string, found lexer.Token) {
	msg := "expected '" + expected + "', found '" + describeToken(found) + "'"
	meta := p.meta(found)
	p.errors = append(p.errors, ParseError{
		Message:  msg,
		Meta:     meta,
		Severity: diag.SeverityError,
		Code:     diag.CodeParserExpectedToken,
	})
}

func (p *Parser) reportUnexpected(found lexer.Token, context string) {
	msg := "unexpected token '" + describeToken(found) + "'"
	if context != "" {
		msg += " in " + context
	}
	p.errors = append(p.errors, ParseError{
		Message:  msg,
		Meta:     p.meta(found),
		Severity: diag.SeverityError,
		Code:     diag.CodeParserUnexpectedToken,
	})
}

func describeToken(tok lexer.Token) string {
	if tok.IsEOF() {
		return "end of file"
	}
	if tok.Raw != "" {
		return tok.Raw
	}
	return string(tok.Type)
}

// sync skips tokens until the next plausible statement boundary so one error
// does not cascade through the rest of the file.
func (p *Parser) sync() {
	for {
		tok := p.peek()
		if tok.IsEOF() {
			return
		}
		switch tok.Type {
		case lexer.FUNC, lexer.STRUCT, lexer.TRAIT, lexer.IF, lexer.FOR,
			lexer.RETURN, lexer.RBRACE, lexer.IMPORT, lexer.MODULE:
			return
		}
		p.next()
	}
}
