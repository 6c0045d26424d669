// Package directive parses apiproxy directives from Go source files.
//
// Directives are line comments in the form:
//
//	//apiproxy:client <name>
//	//apiproxy:method <VERB> <url template>
//
// The client directive marks an interface type for proxy generation; name is
// the transport name the generated constructor passes to the client factory.
//
// The method directive marks a method of a client interface. The verb is not
// validated here; everything after it, trimmed, is the URL template.
package directive

import (
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

const prefix = "//apiproxy:"

// Kind represents the type of directive.
type Kind string

const (
	KindClient Kind = "client"
	KindMethod Kind = "method"
)

// Interface is an interface type carrying a client directive.
type Interface struct {
	Name       string         // type name
	ClientName string         // transport name from the directive
	Pos        token.Position // position of the directive
	Methods    []Method       // annotated methods, in source order
}

// Method returns the annotated method called name.
func (i *Interface) Method(name string) (Method, bool) {
	for _, m := range i.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// Method is an interface method carrying a method directive.
type Method struct {
	Name     string
	Verb     string // as written
	Template string
	Pos      token.Position // position of the directive
}

// Result contains all directives found in a package.
type Result struct {
	Interfaces []Interface

	// PackagePath is the import path of the parsed package.
	PackagePath string

	// PackageName is the declared name of the parsed package.
	PackageName string

	// Dir is the directory containing the package.
	Dir string
}

// Parse scans a Go package for apiproxy directives.
//
// The pattern follows go command semantics:
//   - "." for current directory
//   - Import path like "github.com/foo/bar"
//   - Absolute or relative directory path
//
// Returns an error if:
//   - The package cannot be loaded
//   - A directive is unknown or malformed
//   - A directive is not attached to an interface type or interface method
func Parse(pattern string) (*Result, error) {
	return ParseDir(pattern, "")
}

// ParseDir is like Parse but allows specifying a working directory.
// If dir is empty, the current directory is used.
func ParseDir(pattern, dir string) (*Result, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", pattern)
	}

	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found matching %q; specify a single package", pattern)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
	}

	return FromPackage(pkg)
}

// FromPackage extracts directives from an already loaded package.
// The package must have been loaded with at least NeedName and NeedSyntax.
func FromPackage(pkg *packages.Package) (*Result, error) {
	result := &Result{
		PackagePath: pkg.PkgPath,
		PackageName: pkg.Name,
	}
	if len(pkg.GoFiles) > 0 {
		result.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	for _, f := range pkg.Syntax {
		ifaces, err := parseFile(pkg.Fset, f)
		if err != nil {
			return nil, err
		}
		result.Interfaces = append(result.Interfaces, ifaces...)
	}
	return result, nil
}

type parsed struct {
	kind Kind
	args []string // fields after the directive name
	rest string   // raw text after the directive name, trimmed
	pos  token.Position
}

// parseFile extracts client interfaces from a single file.
func parseFile(fset *token.FileSet, f *ast.File) ([]Interface, error) {
	// Parse every directive comment up front so unknown or orphaned
	// directives are reported even when nothing consumes them.
	all := make(map[*ast.Comment]parsed)
	for _, cg := range f.Comments {
		for _, c := range cg.List {
			p, ok, err := parseComment(fset, c)
			if err != nil {
				return nil, err
			}
			if ok {
				all[c] = p
			}
		}
	}
	if len(all) == 0 {
		return nil, nil
	}

	used := make(map[*ast.Comment]bool)
	var ifaces []Interface

	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			it, ok := ts.Type.(*ast.InterfaceType)
			if !ok {
				continue
			}

			// A lone type declaration carries its doc on the GenDecl.
			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			client, ok, err := findOne(doc, all, KindClient)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			used[client.comment] = true
			if len(client.args) != 1 {
				return nil, fmt.Errorf("%s: //apiproxy:client expects exactly one client name", client.pos)
			}

			iface := Interface{
				Name:       ts.Name.Name,
				ClientName: client.args[0],
				Pos:        client.pos,
			}
			for _, field := range it.Methods.List {
				if _, isFunc := field.Type.(*ast.FuncType); !isFunc || len(field.Names) == 0 {
					continue // embedded interface or type constraint
				}
				m, annotated, err := findOne(field.Doc, all, KindMethod)
				if err != nil {
					return nil, err
				}
				if !annotated {
					continue
				}
				used[m.comment] = true
				if len(m.args) < 2 {
					return nil, fmt.Errorf("%s: //apiproxy:method expects a verb and a url template", m.pos)
				}
				verb := m.args[0]
				iface.Methods = append(iface.Methods, Method{
					Name:     field.Names[0].Name,
					Verb:     verb,
					Template: strings.TrimSpace(strings.TrimPrefix(m.rest, verb)),
					Pos:      m.pos,
				})
			}
			ifaces = append(ifaces, iface)
		}
	}

	// Check for unmatched directives
	for c, p := range all {
		if used[c] {
			continue
		}
		switch p.kind {
		case KindClient:
			return nil, fmt.Errorf("%s: //apiproxy:client directive must be followed by an interface type", p.pos)
		default:
			return nil, fmt.Errorf("%s: //apiproxy:method directive must be on a method of an //apiproxy:client interface", p.pos)
		}
	}

	return ifaces, nil
}

func parseComment(fset *token.FileSet, c *ast.Comment) (parsed, bool, error) {
	if !strings.HasPrefix(c.Text, prefix) {
		return parsed{}, false, nil
	}
	text := strings.TrimPrefix(c.Text, prefix)
	name, rest, _ := strings.Cut(text, " ")
	pos := fset.Position(c.Pos())

	switch Kind(name) {
	case KindClient, KindMethod:
	default:
		return parsed{}, false, fmt.Errorf("%s: unknown directive //apiproxy:%s", pos, name)
	}

	rest = strings.TrimSpace(rest)
	return parsed{
		kind: Kind(name),
		args: strings.Fields(rest),
		rest: rest,
		pos:  pos,
	}, true, nil
}

type match struct {
	parsed
	comment *ast.Comment
}

// findOne returns the single directive of kind in doc.
func findOne(doc *ast.CommentGroup, all map[*ast.Comment]parsed, kind Kind) (match, bool, error) {
	if doc == nil {
		return match{}, false, nil
	}
	var result match
	var ok bool
	for _, c := range doc.List {
		p, isDirective := all[c]
		if !isDirective || p.kind != kind {
			continue
		}
		if ok {
			return match{}, false, fmt.Errorf("multiple //apiproxy:%s directives found:\n  %s\n  %s",
				kind, result.pos, p.pos)
		}
		result = match{parsed: p, comment: c}
		ok = true
	}
	return result, ok, nil
}
