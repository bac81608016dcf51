package ast

import (
	"encoding/json"
	"os"
)

// Import holds one import call: the name of the module and its optional
// alias. Immutable once constructed.
type Import struct {
	Module string
	Alias  string
}

// NewImport creates a standard (non-aliased) import.
func NewImport(module string) Import {
	return Import{Module: module}
}

// NewAliasedImport creates an aliased import.
func NewAliasedImport(module, alias string) Import {
	return Import{Module: module, Alias: alias}
}

// MarshalJSON serializes the import as {module, alias?}.
func (i Import) MarshalJSON() ([]byte, error) {
	out := struct {
		Module string `json:"module"`
		Alias  string `json:"alias,omitempty"`
	}{Module: i.Module, Alias: i.Alias}
	return json.Marshal(out)
}

// File is the Abstract Syntax Tree of one Tiny source file: the path that
// produced it, the module it belongs to, its imports and its top-level
// statements. The File owns the arena every statement lives in.
type File struct {
	Path       string
	Module     string
	Imports    []Import
	Statements []Node

	tree *Tree
}

// NewFile creates an empty File backed by a fresh arena.
func NewFile(path string) *File {
	return &File{Path: path, tree: NewTree()}
}

// Tree returns the arena owning this file's nodes. The parser allocates
// every node of the file through it.
func (f *File) Tree() *Tree {
	if f.tree == nil {
		f.tree = NewTree()
	}
	return f.tree
}

// AddImport appends an import, preserving source order.
func (f *File) AddImport(imp Import) {
	f.Imports = append(f.Imports, imp)
}

// AddStatement appends a top-level statement root.
func (f *File) AddStatement(n Node) {
	f.Statements = append(f.Statements, n)
}

// MarshalJSON serializes the file as
// {file, module, imports, statements} with statements recursively dumped in
// order. Output is deterministic: parsing the same source twice produces
// byte-identical documents.
func (f *File) MarshalJSON() ([]byte, error) {
	out := struct {
		File       string   `json:"file"`
		Module     string   `json:"module"`
		Imports    []Import `json:"imports"`
		Statements []Node   `json:"statements"`
	}{
		File:       f.Path,
		Module:     f.Module,
		Imports:    f.Imports,
		Statements: f.Statements,
	}
	if out.Imports == nil {
		out.Imports = []Import{}
	}
	if out.Statements == nil {
		out.Statements = []Node{}
	}
	return json.Marshal(out)
}

// ToJSON returns the file's canonical JSON document.
func (f *File) ToJSON() ([]byte, error) {
	return json.Marshal(f)
}

// ToJSONIndent returns the document with human-friendly indentation.
func (f *File) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

// DumpJSON writes the JSON document to path as UTF-8, creating or
// overwriting the file. A failed write is surfaced as an IOFailure; the
// target is left in an undefined state and the caller must treat any failure
// as "retry the whole dump".
func (f *File) DumpJSON(path string) error {
	data, err := f.ToJSONIndent()
	if err != nil {
		return newIOFailure("cannot serialize "+f.Path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return newIOFailure("cannot write AST dump to "+path, err)
	}
	return nil
}
