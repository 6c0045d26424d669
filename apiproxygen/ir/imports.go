package ir

import (
	"sort"
	"strconv"
)

// RuntimePath is the import path of the runtime package generated code calls.
const RuntimePath = "github.com/broady/apiproxy"

// ImportSet assigns a unique alias to every package a generated file refers to.
// The runtime package and context are always registered under their own names.
type ImportSet struct {
	byPath  map[string]string
	byAlias map[string]string
}

// NewImportSet creates an ImportSet with the runtime and context packages
// pre-registered.
func NewImportSet() *ImportSet {
	s := &ImportSet{
		byPath:  make(map[string]string),
		byAlias: make(map[string]string),
	}
	s.Add("context", "context")
	s.Add(RuntimePath, "apiproxy")
	return s
}

// Add registers path and returns its alias. name is the package's declared
// name; when another path already holds it, a numeric suffix is appended.
// Adding a path twice returns the same alias.
func (s *ImportSet) Add(path, name string) string {
	if alias, ok := s.byPath[path]; ok {
		return alias
	}
	alias := name
	for i := 2; ; i++ {
		if _, taken := s.byAlias[alias]; !taken {
			break
		}
		alias = name + strconv.Itoa(i)
	}
	s.byPath[path] = alias
	s.byAlias[alias] = path
	return alias
}

// Alias returns the alias registered for path.
func (s *ImportSet) Alias(path string) (string, bool) {
	alias, ok := s.byPath[path]
	return alias, ok
}

// Taken reports whether alias is in use, so that generated identifiers can
// avoid shadowing an import.
func (s *ImportSet) Taken(alias string) bool {
	_, ok := s.byAlias[alias]
	return ok
}

// Import is one entry of a generated import block.
type Import struct {
	Path  string
	Alias string // empty when the alias equals the last path element
}

// Imports returns the import entries for paths, sorted by path.
// Paths that were never added are ignored.
func (s *ImportSet) Imports(paths []string) []Import {
	seen := make(map[string]bool)
	var out []Import
	for _, p := range paths {
		alias, ok := s.byPath[p]
		if !ok || seen[p] {
			continue
		}
		seen[p] = true
		imp := Import{Path: p}
		if alias != lastElem(p) {
			imp.Alias = alias
		}
		out = append(out, imp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func lastElem(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
