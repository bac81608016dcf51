package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tinypl/tiny/internal/diag"
)

func TestMetadataString(t *testing.T) {
	tests := []struct {
		meta diag.Metadata
		want string
	}{
		{diag.Metadata{Filename: "main.ty", Line: 3, Column: 7}, "main.ty:3:7"},
		{diag.Metadata{Line: 1, Column: 1}, "1:1"},
	}

	for _, tt := range tests {
		if got := tt.meta.String(); got != tt.want {
			t.Errorf("Metadata%+v.String() = %q, want %q", tt.meta, got, tt.want)
		}
	}
}

func TestMetadataMerge(t *testing.T) {
	a := diag.Metadata{Filename: "main.ty", Line: 1, Column: 1, Start: 0, End: 4}
	b := diag.Metadata{Filename: "main.ty", Line: 1, Column: 9, Start: 8, End: 13}

	merged := a.Merge(b)
	if merged.Start != 0 || merged.End != 13 {
		t.Fatalf("Merge() = %+v, want Start=0 End=13", merged)
	}
	if merged.Line != 1 || merged.Column != 1 {
		t.Fatalf("Merge() moved the start location: %+v", merged)
	}

	// Merging a shorter span must not shrink the metadata.
	shrunk := merged.Merge(a)
	if shrunk.End != 13 {
		t.Fatalf("Merge() with an earlier span shrank End to %d", shrunk.End)
	}
}

func TestFormatterSnippet(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatterTo(&buf)
	f.AddSource("main.ty", "module main\n\nint x = \"oops\"\n")

	f.Format(diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     diag.CodeParserInvalidLiteral,
		Message:  "cannot assign a string to an int",
		Meta:     diag.Metadata{Filename: "main.ty", Line: 3, Column: 9, Start: 21, End: 27},
	})

	out := buf.String()
	for _, want := range []string{
		"cannot assign a string to an int",
		"main.ty:3:9",
		`int x = "oops"`,
		"^",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatterMissingSource(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatterTo(&buf)

	f.Format(diag.Diagnostic{
		Severity: diag.SeverityWarning,
		Message:  "unused import",
		Meta:     diag.Metadata{Filename: "no/such/file.ty", Line: 2, Column: 1},
	})

	out := buf.String()
	if !strings.Contains(out, "unused import") {
		t.Fatalf("header missing from output:\n%s", out)
	}
}
