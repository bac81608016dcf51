// Package diag holds the source-location metadata attached to every AST node
// and the diagnostics surfaced by the lexer and parser.
package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageLexer  Stage = "lexer"
	StageParser Stage = "parser"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	CodeLexerUnterminatedString Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerUnterminatedChar   Code = "LEXER_UNTERMINATED_CHAR"
	CodeLexerMalformedNumber    Code = "LEXER_MALFORMED_NUMBER"
	CodeLexerIllegalRune        Code = "LEXER_ILLEGAL_RUNE"

	CodeParserUnexpectedToken Code = "PARSER_UNEXPECTED_TOKEN"
	CodeParserExpectedToken   Code = "PARSER_EXPECTED_TOKEN"
	CodeParserInvalidLiteral  Code = "PARSER_INVALID_LITERAL"
)

// Metadata is the source-location handle carried by tokens, AST nodes and
// lookup errors. Offsets are rune indexes into the original source; Line and
// Column are 1-based.
type Metadata struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the location.
func (m Metadata) String() string {
	if m.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", m.Filename, m.Line, m.Column)
	}
	return fmt.Sprintf("%d:%d", m.Line, m.Column)
}

// IsValid returns true if the metadata has valid location information.
func (m Metadata) IsValid() bool {
	return m.Line > 0 && m.Column > 0
}

// Merge returns metadata covering both m and other. The caller passes the
// earliest location first; only the end offset grows.
func (m Metadata) Merge(other Metadata) Metadata {
	if other.End > m.End {
		m.End = other.End
	}
	return m
}

// Diagnostic is a compiler diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Meta     Metadata
	Help     string
}

// WithHelp returns a copy of the diagnostic with the given help text.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
