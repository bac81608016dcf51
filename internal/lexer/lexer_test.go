package lexer

import (
	"testing"

	"github.com/tinypl/tiny/internal/diag"
)

func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	l := New(input, "test.ty")
	toks := l.Lex()
	for _, e := range l.Errors {
		t.Fatalf("unexpected lex error: %s", e.Message)
	}
	return toks
}

func TestLexBasic(t *testing.T) {
	input := `x := 10`

	tests := []struct {
		expectedType TokenType
		expectedRaw  string
	}{
		{IDENT, "x"},
		{DECLARE, ":="},
		{INT, "10"},
		{EOF, ""},
	}

	toks := lexAll(t, input)
	if len(toks) != len(tests) {
		t.Fatalf("token count = %d, want %d", len(toks), len(tests))
	}

	for i, tt := range tests {
		if toks[i].Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, toks[i].Type)
		}
		if toks[i].Raw != tt.expectedRaw {
			t.Fatalf("tests[%d] - raw wrong. expected=%q, got=%q",
				i, tt.expectedRaw, toks[i].Raw)
		}
	}
}

func TestLexOperators(t *testing.T) {
	input := `= := + - * / ^ += -= *= /= == != < > <= >= && || ! & $ , : ; . ( ) { } [ ]`

	expected := []TokenType{
		ASSIGN, DECLARE, PLUS, MINUS, ASTERISK, SLASH, CARET,
		SUM_ASSIGN, SUB_ASSIGN, MUL_ASSIGN, DIV_ASSIGN,
		EQ, NOT_EQ, LT, GT, LE, GE, AND, OR, BANG, AMPERSAND, DOLLAR,
		COMMA, COLON, SEMICOLON, DOT,
		LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET,
		EOF,
	}

	toks := lexAll(t, input)
	for i, want := range expected {
		if toks[i].Type != want {
			t.Fatalf("step %d - expected token %q, got %q", i, want, toks[i].Type)
		}
	}
}

func TestLexKeywords(t *testing.T) {
	input := `module import as func struct trait if else for in to step return const true false none identifier`

	expected := []TokenType{
		MODULE, IMPORT, AS, FUNC, STRUCT, TRAIT, IF, ELSE, FOR, IN, TO,
		STEP, RETURN, CONST, TRUE, FALSE, NONE, IDENT, EOF,
	}

	toks := lexAll(t, input)
	for i, want := range expected {
		if toks[i].Type != want {
			t.Fatalf("step %d - expected token %q, got %q", i, want, toks[i].Type)
		}
	}
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
		raw   string
	}{
		{"0", INT, "0"},
		{"1343456", INT, "1343456"},
		{"3.14", DECIMAL, "3.14"},
		{"0.5", DECIMAL, "0.5"},
	}

	for _, tt := range tests {
		toks := lexAll(t, tt.input)
		if toks[0].Type != tt.typ || toks[0].Raw != tt.raw {
			t.Errorf("lex(%q) = %q %q, want %q %q", tt.input, toks[0].Type, toks[0].Raw, tt.typ, tt.raw)
		}
	}
}

func TestLexIntDotMember(t *testing.T) {
	toks := lexAll(t, "1.str")

	expected := []TokenType{INT, DOT, IDENT, EOF}
	for i, want := range expected {
		if toks[i].Type != want {
			t.Fatalf("step %d - expected token %q, got %q", i, want, toks[i].Type)
		}
	}
}

func TestLexStrings(t *testing.T) {
	toks := lexAll(t, `"hello" "with \"escape\"" "tab\there"`)

	tests := []struct {
		typ   TokenType
		value string
	}{
		{STRING, "hello"},
		{STRING, `with "escape"`},
		{STRING, "tab\there"},
		{EOF, ""},
	}

	for i, tt := range tests {
		if toks[i].Type != tt.typ || toks[i].Value != tt.value {
			t.Fatalf("step %d - got %q %q, want %q %q", i, toks[i].Type, toks[i].Value, tt.typ, tt.value)
		}
	}
}

func TestLexChar(t *testing.T) {
	toks := lexAll(t, `'a' '\n'`)

	if toks[0].Type != CHAR || toks[0].Value != "a" {
		t.Fatalf("first char token = %q %q", toks[0].Type, toks[0].Value)
	}
	if toks[1].Type != CHAR || toks[1].Value != "\n" {
		t.Fatalf("second char token = %q %q", toks[1].Type, toks[1].Value)
	}
}

func TestLexComments(t *testing.T) {
	input := "x // trailing comment\n/* block\ncomment */ y"

	toks := lexAll(t, input)
	expected := []TokenType{IDENT, IDENT, EOF}
	for i, want := range expected {
		if toks[i].Type != want {
			t.Fatalf("step %d - expected token %q, got %q", i, want, toks[i].Type)
		}
	}
}

func TestLexMetadata(t *testing.T) {
	input := "module main\nx := 1"

	toks := lexAll(t, input)

	want := []diag.Metadata{
		{Filename: "test.ty", Line: 1, Column: 1, Start: 0, End: 6},    // module
		{Filename: "test.ty", Line: 1, Column: 8, Start: 7, End: 11},   // main
		{Filename: "test.ty", Line: 2, Column: 1, Start: 12, End: 13},  // x
		{Filename: "test.ty", Line: 2, Column: 3, Start: 14, End: 16},  // :=
		{Filename: "test.ty", Line: 2, Column: 6, Start: 17, End: 18},  // 1
	}

	for i, m := range want {
		if toks[i].Meta != m {
			t.Errorf("token %d metadata = %+v, want %+v", i, toks[i].Meta, m)
		}
	}
}

func TestLexUnterminatedString(t *testing.T) {
	l := New(`"never closed`, "test.ty")
	toks := l.Lex()

	if len(l.Errors) != 1 {
		t.Fatalf("error count = %d, want 1", len(l.Errors))
	}
	if l.Errors[0].Kind != ErrUnterminatedString {
		t.Fatalf("error kind = %d, want ErrUnterminatedString", l.Errors[0].Kind)
	}
	if toks[0].Type != ILLEGAL {
		t.Fatalf("token type = %q, want ILLEGAL", toks[0].Type)
	}

	d := l.Errors[0].ToDiagnostic()
	if d.Stage != diag.StageLexer || d.Code != diag.CodeLexerUnterminatedString {
		t.Fatalf("diagnostic = %+v", d)
	}
}

func TestLexMalformedNumber(t *testing.T) {
	l := New("12abc", "test.ty")
	toks := l.Lex()

	if len(l.Errors) != 1 || l.Errors[0].Kind != ErrMalformedNumber {
		t.Fatalf("errors = %+v, want one ErrMalformedNumber", l.Errors)
	}
	if toks[0].Type != ILLEGAL || toks[0].Raw != "12abc" {
		t.Fatalf("token = %q %q, want ILLEGAL 12abc", toks[0].Type, toks[0].Raw)
	}
}

func TestLexIllegalRune(t *testing.T) {
	l := New("x ? y", "test.ty")
	l.Lex()

	if len(l.Errors) != 1 || l.Errors[0].Kind != ErrIllegalRune {
		t.Fatalf("errors = %+v, want one ErrIllegalRune", l.Errors)
	}
}

func TestLexUnicodeIdentifiers(t *testing.T) {
	toks := lexAll(t, "héllo := wörld")

	if toks[0].Type != IDENT || toks[0].Raw != "héllo" {
		t.Fatalf("first token = %q %q", toks[0].Type, toks[0].Raw)
	}
	if toks[2].Type != IDENT || toks[2].Raw != "wörld" {
		t.Fatalf("third token = %q %q", toks[2].Type, toks[2].Raw)
	}
}
