package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/peterh/liner"
	"github.com/samber/do"
	"github.com/spf13/cobra"

	"github.com/tinypl/tiny/internal/diag"
	"github.com/tinypl/tiny/internal/parser"
)

const replFilename = "repl"

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively parse statements and inspect their ASTs",
		RunE: func(cmd *cobra.Command, args []string) error {
			injector, err := newInjector()
			if err != nil {
				return err
			}
			return runRepl(do.MustInvoke[*diag.Formatter](injector))
		},
	}
}

func runRepl(formatter *diag.Formatter) error {
	rl := liner.NewLiner()
	defer rl.Close()
	rl.SetCtrlCAborts(true)

	fmt.Println("tiny repl - enter statements, empty line or ctrl-d to quit")

	var buf strings.Builder
	for {
		prompt := ">> "
		if buf.Len() > 0 {
			prompt = ".. "
		}

		input, err := rl.Prompt(prompt)
		if err != nil {
			// ctrl-c or ctrl-d ends the session.
			return nil
		}
		if strings.TrimSpace(input) == "" && buf.Len() == 0 {
			return nil
		}

		rl.AppendHistory(input)
		buf.WriteString(input)
		buf.WriteByte('\n')
		if openBraces(buf.String()) > 0 {
			continue
		}

		src := "module repl\n" + buf.String()
		buf.Reset()

		file, diags := parser.Parse(src, replFilename)
		if len(diags) > 0 {
			formatter.AddSource(replFilename, src)
			formatter.FormatAll(diags)
			continue
		}
		for _, stmt := range file.Statements {
			out, err := json.MarshalIndent(stmt, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		}
	}
}

// openBraces counts unmatched braces so multi-line statements keep reading
// until they close. String literals are skipped; a brace inside a string does
// not hold the prompt open.
func openBraces(src string) int {
	depth := 0
	inString := false
	var prev rune
	for _, r := range src {
		switch {
		case inString:
			if r == '"' && prev != '\\' {
				inString = false
			}
		case r == '"':
			inString = true
		case r == '{':
			depth++
		case r == '}':
			depth--
		}
		prev = r
	}
	return depth
}
