// Package explorer locates Tiny source files on disk. The driver hands its
// results straight to the parser, so Search keeps its output deterministic.
package explorer

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Explorer walks a directory tree collecting files that match a pattern.
type Explorer struct {
	root     string
	maxDepth int
}

// New creates an explorer rooted at root. maxDepth limits how many directory
// levels below the root are entered; zero or negative lifts the limit.
func New(root string, maxDepth int) *Explorer {
	return &Explorer{root: root, maxDepth: maxDepth}
}

// Search returns every file under the root whose base name matches pattern,
// in lexical order. The pattern is a base-name glob: an exact file name like
// "main.ty" or an extension form like "*.ty".
func (e *Explorer) Search(pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("explorer: bad pattern %q: %w", pattern, err)
	}

	var out []string
	err := filepath.WalkDir(e.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != e.root && e.maxDepth > 0 && e.depth(path) >= e.maxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("explorer: search under %s: %w", e.root, err)
	}
	return out, nil
}

// depth counts how many levels below the root a path sits.
func (e *Explorer) depth(path string) int {
	rel, err := filepath.Rel(e.root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
