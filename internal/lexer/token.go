package lexer

import "github.com/tinypl/tiny/internal/diag"

// TokenType represents the type of a token.
type TokenType string

// Token represents a lexical token.
type Token struct {
	Type  TokenType
	Raw   string        // exact runes from source
	Value string        // decoded value (for strings/chars), same as Raw for others
	Meta  diag.Metadata // source location information
}

// Token type constants
const (
	// Special tokens. The zero Token has an empty type; the parser treats it
	// like EOF so soft end-of-stream reads stay harmless.
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT   TokenType = "IDENT"   // x, counter, Vector2
	INT     TokenType = "INT"     // 42
	DECIMAL TokenType = "DECIMAL" // 3.14
	STRING  TokenType = "STRING"  // "hello"
	CHAR    TokenType = "CHAR"    // 'a'

	// Operators
	ASSIGN     TokenType = "="
	DECLARE    TokenType = ":="
	PLUS       TokenType = "+"
	MINUS      TokenType = "-"
	ASTERISK   TokenType = "*"
	SLASH      TokenType = "/"
	CARET      TokenType = "^"
	SUM_ASSIGN TokenType = "+="
	SUB_ASSIGN TokenType = "-="
	MUL_ASSIGN TokenType = "*="
	DIV_ASSIGN TokenType = "/="

	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LT     TokenType = "<"
	GT     TokenType = ">"
	LE     TokenType = "<="
	GE     TokenType = ">="

	AND  TokenType = "&&"
	OR   TokenType = "||"
	BANG TokenType = "!"

	AMPERSAND TokenType = "&"
	DOLLAR    TokenType = "$"

	// Delimiters
	COMMA     TokenType = ","
	COLON     TokenType = ":"
	SEMICOLON TokenType = ";"
	DOT       TokenType = "."

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	MODULE TokenType = "MODULE"
	IMPORT TokenType = "IMPORT"
	AS     TokenType = "AS"
	FUNC   TokenType = "FUNC"
	STRUCT TokenType = "STRUCT"
	TRAIT  TokenType = "TRAIT"
	IF     TokenType = "IF"
	ELSE   TokenType = "ELSE"
	FOR    TokenType = "FOR"
	IN     TokenType = "IN"
	TO     TokenType = "TO"
	STEP   TokenType = "STEP"
	RETURN TokenType = "RETURN"
	CONST  TokenType = "CONST"
	TRUE   TokenType = "TRUE"
	FALSE  TokenType = "FALSE"
	NONE   TokenType = "NONE"
)

var keywords = map[string]TokenType{
	"module": MODULE,
	"import": IMPORT,
	"as":     AS,
	"func":   FUNC,
	"struct": STRUCT,
	"trait":  TRAIT,
	"if":     IF,
	"else":   ELSE,
	"for":    FOR,
	"in":     IN,
	"to":     TO,
	"step":   STEP,
	"return": RETURN,
	"const":  CONST,
	"true":   TRUE,
	"false":  FALSE,
	"none":   NONE,
}

// LookupIdent checks if the identifier is a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsEOF reports whether the token ends the stream. The zero Token counts as
// EOF so soft end-of-stream reads from a token stream behave like the real
// end marker.
func (t Token) IsEOF() bool {
	return t.Type == EOF || t.Type == ""
}
