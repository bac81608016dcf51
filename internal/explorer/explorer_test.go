package explorer

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte("module test\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func TestSearchByExtension(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "main.ty", "geometry/shapes.ty", "geometry/notes.txt", "README.md")

	e := New(root, 0)
	got, err := e.Search("*.ty")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	want := []string{
		filepath.Join(root, "geometry", "shapes.ty"),
		filepath.Join(root, "main.ty"),
	}
	if len(got) != len(want) {
		t.Fatalf("result = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSearchExactName(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "main.ty", "sub/main.ty", "sub/other.ty")

	e := New(root, 0)
	got, err := e.Search("main.ty")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("match count = %d, want 2: %v", len(got), got)
	}
}

func TestSearchDepthLimit(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "top.ty", "a/mid.ty", "a/b/deep.ty")

	e := New(root, 1)
	got, err := e.Search("*.ty")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "top.ty" {
		t.Fatalf("result = %v, want only top.ty", got)
	}

	e = New(root, 2)
	got, err = e.Search("*.ty")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("result = %v, want top.ty and mid.ty", got)
	}
}

func TestSearchBadPattern(t *testing.T) {
	e := New(t.TempDir(), 0)
	if _, err := e.Search("[unclosed"); err == nil {
		t.Fatal("expected an error for a malformed pattern")
	}
}

func TestSearchMissingRoot(t *testing.T) {
	e := New(filepath.Join(t.TempDir(), "does-not-exist"), 0)
	if _, err := e.Search("*.ty"); err == nil {
		t.Fatal("expected an error for a missing root")
	}
}
