// Package lexer turns Tiny source text into a materialized token sequence.
// The lexer drives a rune stream and the parser later drives a token stream;
// both lean on the same cursor primitive for lookahead and rollback.
package lexer

import (
	"fmt"
	"unicode"

	"github.com/tinypl/tiny/internal/diag"
	"github.com/tinypl/tiny/internal/stream"
)

type LexErrorKind int

const (
	ErrUnterminatedString LexErrorKind = iota
	ErrUnterminatedChar
	ErrMalformedNumber
	ErrIllegalRune
)

type LexError struct {
	Kind    LexErrorKind
	Message string
	Meta    diag.Metadata
}

func (k LexErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	case ErrUnterminatedChar:
		return diag.CodeLexerUnterminatedChar
	case ErrMalformedNumber:
		return diag.CodeLexerMalformedNumber
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Meta:     e.Meta,
	}
}

// Lexer tokenizes one source file. All input is materialized up front; the
// cursor gives cheap lookahead without any pushback buffer.
type Lexer struct {
	src      *stream.Stream[rune]
	filename string
	line     int // line of the next unread rune (1-based)
	column   int // column of the next unread rune (1-based)

	Errors []LexError
}

// New creates a lexer over input. The filename is attached to every token's
// metadata for diagnostics.
func New(input, filename string) *Lexer {
	return &Lexer{
		src:      stream.New([]rune(input)),
		filename: filename,
		line:     1,
		column:   1,
	}
}

func (l *Lexer) addError(kind LexErrorKind, msg string, meta diag.Metadata) {
	l.Errors = append(l.Errors, LexError{Kind: kind, Message: msg, Meta: meta})
}

// next consumes one rune and keeps the line/column bookkeeping current.
func (l *Lexer) next() rune {
	r := l.src.Get()
	if r == '\n' {
		l.line++
		l.column = 1
	} else if r != 0 {
		l.column++
	}
	return r
}

func (l *Lexer) peek() rune {
	return l.src.Peek()
}

// mark snapshots the location of the token about to be scanned.
type mark struct {
	line, column, offset int
}

func (l *Lexer) mark() mark {
	return mark{line: l.line, column: l.column, offset: l.src.Pos()}
}

func (l *Lexer) metaFrom(m mark) diag.Metadata {
	return diag.Metadata{
		Filename: l.filename,
		Line:     m.line,
		Column:   m.column,
		Start:    m.offset,
		End:      l.src.Pos(),
	}
}

// Lex scans the whole input and returns every token followed by a final EOF
// token. Lexical errors are collected in Errors; scanning continues past
// them so one pass reports everything.
func (l *Lexer) Lex() []Token {
	var toks []Token
	for {
		tok := l.scan()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func (l *Lexer) scan() Token {
	l.skipTrivia()

	m := l.mark()
	if l.src.Exhausted() {
		return Token{Type: EOF, Meta: l.metaFrom(m)}
	}

	r := l.next()
	switch {
	case isIdentStart(r):
		return l.scanIdent(m, r)
	case unicode.IsDigit(r):
		return l.scanNumber(m, r)
	case r == '"':
		return l.scanString(m)
	case r == '\'':
		return l.scanChar(m)
	default:
		return l.scanOperator(m, r)
	}
}

// skipTrivia consumes whitespace and comments. Line comments run to the end
// of line; block comments do not nest.
func (l *Lexer) skipTrivia() {
	for {
		r := l.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			l.next()
		case r == '/':
			l.src.Skip()
			second := l.src.Peek()
			l.src.Backup()
			if second == '/' {
				for !l.src.Exhausted() && l.peek() != '\n' {
					l.next()
				}
			} else if second == '*' {
				l.next()
				l.next()
				l.skipBlockComment()
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	for !l.src.Exhausted() {
		if l.next() == '*' && l.peek() == '/' {
			l.next()
			return
		}
	}
}

func (l *Lexer) scanIdent(m mark, first rune) Token {
	raw := []rune{first}
	for isIdentPart(l.peek()) {
		raw = append(raw, l.next())
	}

	s := string(raw)
	return Token{Type: LookupIdent(s), Raw: s, Value: s, Meta: l.metaFrom(m)}
}

func (l *Lexer) scanNumber(m mark, first rune) Token {
	raw := []rune{first}
	for unicode.IsDigit(l.peek()) {
		raw = append(raw, l.next())
	}

	typ := INT
	if l.peek() == '.' {
		// Only consume the dot when a digit follows; `1.foo` stays a member
		// access on an integer literal.
		l.src.Skip()
		digit := unicode.IsDigit(l.src.Peek())
		l.src.Backup()

		if digit {
			typ = DECIMAL
			raw = append(raw, l.next())
			for unicode.IsDigit(l.peek()) {
				raw = append(raw, l.next())
			}
		}
	}

	if isIdentStart(l.peek()) {
		// `12abc` is one malformed token, not INT followed by IDENT.
		meta := l.metaFrom(m)
		l.addError(ErrMalformedNumber, fmt.Sprintf("malformed number literal %q", string(raw)), meta)
		for isIdentPart(l.peek()) {
			raw = append(raw, l.next())
		}
		return Token{Type: ILLEGAL, Raw: string(raw), Value: string(raw), Meta: l.metaFrom(m)}
	}

	s := string(raw)
	return Token{Type: typ, Raw: s, Value: s, Meta: l.metaFrom(m)}
}

func (l *Lexer) scanString(m mark) Token {
	var value []rune
	raw := []rune{'"'}

	for {
		if l.src.Exhausted() || l.peek() == '\n' {
			meta := l.metaFrom(m)
			l.addError(ErrUnterminatedString, "unterminated string literal", meta)
			return Token{Type: ILLEGAL, Raw: string(raw), Value: string(value), Meta: meta}
		}

		r := l.next()
		raw = append(raw, r)
		if r == '"' {
			break
		}
		if r == '\\' {
			esc := l.next()
			raw = append(raw, esc)
			value = append(value, unescape(esc))
			continue
		}
		value = append(value, r)
	}

	return Token{Type: STRING, Raw: string(raw), Value: string(value), Meta: l.metaFrom(m)}
}

func (l *Lexer) scanChar(m mark) Token {
	raw := []rune{'\''}

	if l.src.Exhausted() {
		meta := l.metaFrom(m)
		l.addError(ErrUnterminatedChar, "unterminated character literal", meta)
		return Token{Type: ILLEGAL, Raw: string(raw), Meta: meta}
	}

	r := l.next()
	raw = append(raw, r)
	if r == '\\' {
		esc := l.next()
		raw = append(raw, esc)
		r = unescape(esc)
	}

	if l.peek() != '\'' {
		meta := l.metaFrom(m)
		l.addError(ErrUnterminatedChar, "unterminated character literal", meta)
		return Token{Type: ILLEGAL, Raw: string(raw), Value: string(r), Meta: meta}
	}
	raw = append(raw, l.next())

	return Token{Type: CHAR, Raw: string(raw), Value: string(r), Meta: l.metaFrom(m)}
}

func (l *Lexer) scanOperator(m mark, r rune) Token {
	mk := func(t TokenType, raw string) Token {
		return Token{Type: t, Raw: raw, Value: raw, Meta: l.metaFrom(m)}
	}

	// two-rune operators first
	if next := l.peek(); next != 0 {
		two := string([]rune{r, next})
		switch two {
		case ":=", "+=", "-=", "*=", "/=", "==", "!=", "<=", ">=", "&&", "||":
			l.next()
			return mk(TokenType(two), two)
		}
	}

	switch r {
	case '=', '+', '-', '*', '/', '^', '<', '>', '!', '&', '$', ',', ':', ';', '.', '(', ')', '{', '}', '[', ']':
		return mk(TokenType(string(r)), string(r))
	}

	meta := l.metaFrom(m)
	l.addError(ErrIllegalRune, fmt.Sprintf("illegal character %q", string(r)), meta)
	return Token{Type: ILLEGAL, Raw: string(r), Value: string(r), Meta: meta}
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return r
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
