package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// Formatter renders diagnostics with source code snippets and a caret under
// the offending column.
type Formatter struct {
	out         io.Writer
	sourceCache map[string]string
}

// NewFormatter creates a formatter writing to stderr.
func NewFormatter() *Formatter {
	return NewFormatterTo(os.Stderr)
}

// NewFormatterTo creates a formatter writing to the given writer.
func NewFormatterTo(out io.Writer) *Formatter {
	return &Formatter{
		out:         out,
		sourceCache: make(map[string]string),
	}
}

// AddSource seeds the source cache so snippets can be rendered without
// touching the filesystem (used for in-memory input such as the REPL).
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// LoadSource loads source code for a file (cached).
func (f *Formatter) LoadSource(filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// Format renders a single diagnostic. If the source for the diagnostic's file
// cannot be loaded, the snippet is omitted and only the header is printed.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	if d.Meta.IsValid() {
		if src, err := f.LoadSource(d.Meta.Filename); err == nil && src != "" {
			f.printSnippet(src, d.Meta)
		}
	}

	if d.Help != "" {
		fmt.Fprintf(f.out, "  %s: %s\n", noteStyle.Render("help"), d.Help)
	}
}

// FormatAll renders a list of diagnostics in order.
func (f *Formatter) FormatAll(ds []Diagnostic) {
	for _, d := range ds {
		f.Format(d)
	}
}

func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = string(SeverityError)
	}

	style := errorStyle
	switch d.Severity {
	case SeverityWarning:
		style = warningStyle
	case SeverityNote:
		style = noteStyle
	}

	if d.Code != "" {
		fmt.Fprintf(f.out, "%s: %s\n", style.Render(fmt.Sprintf("%s[%s]", severity, d.Code)), d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", style.Render(severity), d.Message)
	}
	fmt.Fprintf(f.out, "  %s %s\n", gutterStyle.Render("-->"), d.Meta)
}

// printSnippet prints the offending line with one line of context on each
// side, plus a caret run under the span.
func (f *Formatter) printSnippet(src string, meta Metadata) {
	lines := strings.Split(src, "\n")
	if meta.Line < 1 || meta.Line > len(lines) {
		return
	}

	first := meta.Line - 1
	if first < 1 {
		first = 1
	}
	last := meta.Line + 1
	if last > len(lines) {
		last = len(lines)
	}

	width := len(fmt.Sprintf("%d", last))
	for n := first; n <= last; n++ {
		gutter := gutterStyle.Render(fmt.Sprintf(" %*d |", width, n))
		fmt.Fprintf(f.out, "%s %s\n", gutter, lines[n-1])

		if n == meta.Line {
			col := meta.Column
			if col < 1 {
				col = 1
			}
			span := meta.End - meta.Start
			if span < 1 {
				span = 1
			}
			if col-1 > len(lines[n-1]) {
				col = len(lines[n-1]) + 1
			}
			pad := strings.Repeat(" ", col-1)
			carets := errorStyle.Render(strings.Repeat("^", span))
			fmt.Fprintf(f.out, "%s %s%s\n", gutterStyle.Render(fmt.Sprintf(" %s |", strings.Repeat(" ", width))), pad, carets)
		}
	}
}
