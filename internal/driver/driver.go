// Package driver orchestrates compiler runs: it discovers sources, parses
// them on a worker pool and exports the resulting ASTs.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tinypl/tiny/internal/ast"
	"github.com/tinypl/tiny/internal/config"
	"github.com/tinypl/tiny/internal/diag"
	"github.com/tinypl/tiny/internal/explorer"
	"github.com/tinypl/tiny/internal/parser"
)

// Result is the outcome of one run over a source tree. Files and Diagnostics
// are ordered by source path regardless of which worker finished first.
type Result struct {
	RunID       string
	Files       []*ast.File
	Diagnostics []diag.Diagnostic
}

// HasErrors reports whether any stage rejected any file.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}

// Driver runs the front end over a configured source tree.
type Driver struct {
	cfg config.Config
}

// New creates a driver for the given settings.
func New(cfg config.Config) *Driver {
	return &Driver{cfg: cfg}
}

// Discover returns the source paths a run would parse, sorted and deduplicated
// across the configured patterns.
func (d *Driver) Discover() ([]string, error) {
	e := explorer.New(d.cfg.SourceRoot, d.cfg.SearchDepth)

	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range d.cfg.Patterns {
		found, err := e.Search(pattern)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Run discovers and parses every source file. Parsing is fanned out over the
// configured number of workers; each file is independent, so the only shared
// state is the result slots, which are indexed by file so output order stays
// stable.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	paths, err := d.Discover()
	if err != nil {
		return nil, err
	}

	files := make([]*ast.File, len(paths))
	diagsPerFile := make([][]diag.Diagnostic, len(paths))
	readErrs := make([]error, len(paths))

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := d.cfg.Workers
	if workers > len(paths) {
		workers = len(paths)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				src, err := os.ReadFile(paths[i])
				if err != nil {
					readErrs[i] = fmt.Errorf("driver: read %s: %w", paths[i], err)
					continue
				}
				files[i], diagsPerFile[i] = parser.Parse(string(src), paths[i])
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := errors.Join(readErrs...); err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.NewString()}
	for i := range paths {
		res.Files = append(res.Files, files[i])
		res.Diagnostics = append(res.Diagnostics, diagsPerFile[i]...)
	}
	return res, nil
}

// Dump writes one JSON document per parsed file under the configured output
// directory, mirroring the source tree layout with a .json suffix.
func (d *Driver) Dump(res *Result) error {
	for _, f := range res.Files {
		rel, err := filepath.Rel(d.cfg.SourceRoot, f.Path)
		if err != nil {
			rel = filepath.Base(f.Path)
		}
		out := filepath.Join(d.cfg.OutDir, rel+".json")

		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("driver: create %s: %w", filepath.Dir(out), err)
		}

		var data []byte
		if d.cfg.Pretty {
			data, err = f.ToJSONIndent()
		} else {
			data, err = f.ToJSON()
		}
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("driver: write %s: %w", out, err)
		}
	}
	return nil
}
