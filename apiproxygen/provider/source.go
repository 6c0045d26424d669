// Package provider extracts annotated interfaces from Go source code and
// converts them to the intermediate representation.
package provider

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"log/slog"
	"strings"

	"github.com/broady/apiproxy"
	"github.com/broady/apiproxy/apiproxygen/ir"
	"github.com/broady/apiproxy/internal/directive"
	"github.com/broady/apiproxy/internal/urltemplate"
	"golang.org/x/tools/go/packages"
)

// SourceProvider builds a schema by type-checking a Go package.
type SourceProvider struct {
	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

// SourceInputOptions configures source-based extraction.
type SourceInputOptions struct {
	// Package is the package pattern to analyze ("." or an import path).
	Package string

	// Dir is the working directory for the go command. Empty means the
	// current directory.
	Dir string

	// Interfaces restricts extraction to the named interfaces.
	// If empty, every //apiproxy:client interface is extracted.
	Interfaces []string
}

// BuildSchema loads the package, parses its directives and classifies every
// method of every client interface.
//
// Problems with individual methods are recorded as diagnostics on the schema.
// The error return is reserved for packages that cannot be loaded, malformed
// directives, and interfaces that cannot have a proxy at all.
func (p *SourceProvider) BuildSchema(ctx context.Context, opts SourceInputOptions) (*ir.Schema, error) {
	if opts.Package == "" {
		return nil, fmt.Errorf("no package specified")
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     opts.Dir,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, opts.Package)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", opts.Package)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found matching %q; specify a single package", opts.Package)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
	}

	found, err := directive.FromPackage(pkg)
	if err != nil {
		return nil, err
	}

	b := &schemaBuilder{
		pkg:    pkg,
		logger: p.Logger,
		schema: &ir.Schema{
			Package: ir.PackageInfo{
				Path: found.PackagePath,
				Name: found.PackageName,
				Dir:  found.Dir,
			},
		},
	}

	want := make(map[string]bool)
	for _, name := range opts.Interfaces {
		want[name] = true
	}
	for _, iface := range found.Interfaces {
		if len(want) > 0 && !want[iface.Name] {
			continue
		}
		delete(want, iface.Name)
		if err := b.addService(iface); err != nil {
			return nil, err
		}
	}
	for name := range want {
		return nil, fmt.Errorf("interface %s not found or not annotated with //apiproxy:client", name)
	}

	return b.schema, nil
}

// schemaBuilder accumulates services and diagnostics for one package.
type schemaBuilder struct {
	pkg    *packages.Package
	logger *slog.Logger
	schema *ir.Schema
}

func (b *schemaBuilder) debug(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Debug(msg, args...)
	}
}

func (b *schemaBuilder) addService(iface directive.Interface) error {
	obj, ok := b.pkg.Types.Scope().Lookup(iface.Name).(*types.TypeName)
	if !ok {
		return fmt.Errorf("%s: type %s not found", iface.Pos, iface.Name)
	}
	if named, ok := obj.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
		return fmt.Errorf("%s: generic interface %s cannot have a proxy", iface.Pos, iface.Name)
	}
	it, ok := obj.Type().Underlying().(*types.Interface)
	if !ok {
		return fmt.Errorf("%s: %s is not an interface", iface.Pos, iface.Name)
	}
	if !it.IsMethodSet() {
		return fmt.Errorf("%s: %s is a constraint interface and cannot have a proxy", iface.Pos, iface.Name)
	}

	svc := ir.ServiceDescriptor{
		Name:       iface.Name,
		ClientName: iface.ClientName,
		Pos:        iface.Pos,
		Imports:    ir.NewImportSet(),
	}
	// The proxy lives in its own package and refers back to the source one.
	svc.Imports.Add(b.pkg.PkgPath, b.pkg.Name)

	for i := range it.NumMethods() {
		fn := it.Method(i)
		if !fn.Exported() {
			return fmt.Errorf("%s: %s has unexported method %s; proxies are generated in a separate package",
				iface.Pos, iface.Name, fn.Name())
		}
		ann, annotated := iface.Method(fn.Name())
		m := b.buildMethod(&svc, fn, ann, annotated)
		b.debug("classified method", "method", m.FullName, "annotated", annotated, "valid", m.Valid)
		svc.Methods = append(svc.Methods, m)
	}

	b.schema.AddService(svc)
	return nil
}

func (b *schemaBuilder) buildMethod(svc *ir.ServiceDescriptor, fn *types.Func, ann directive.Method, annotated bool) ir.MethodDescriptor {
	sig := fn.Type().(*types.Signature)
	m := ir.MethodDescriptor{
		Name:         fn.Name(),
		FullName:     svc.Name + "." + fn.Name(),
		Variadic:     sig.Variadic(),
		Cancellation: -1,
		Valid:        true,
	}

	params := sig.Params()
	for i := range params.Len() {
		v := params.At(i)
		t := v.Type()
		var ref ir.TypeRef
		if m.Variadic && i == params.Len()-1 {
			ref = qualify(svc.Imports, t.(*types.Slice).Elem())
			ref.Expr = "..." + ref.Expr
		} else {
			ref = qualify(svc.Imports, t)
		}
		isCtx := isContext(t)
		if isCtx && m.Cancellation < 0 {
			m.Cancellation = i
		}
		m.Params = append(m.Params, ir.Param{Name: v.Name(), Type: ref, Context: isCtx})
	}

	results := sig.Results()
	for i := range results.Len() {
		m.Results = append(m.Results, qualify(svc.Imports, results.At(i).Type()))
	}

	if !annotated {
		// Left unimplemented; only the shape must allow returning an error.
		return m
	}
	pos := ann.Pos
	if pos.Filename == "" {
		pos = b.pkg.Fset.Position(fn.Pos())
	}
	m.Annotation = &ir.Annotation{Verb: strings.ToUpper(ann.Verb), Template: ann.Template, Pos: pos}

	if d, ok := b.check(svc.Name, &m, ann, results, pos); !ok {
		b.schema.AddDiagnostic(d)
		m.Valid = false
	}
	return m
}

// check validates an annotated method in a fixed order: template, parameter
// binding, verb, return type. Only the first problem is reported.
func (b *schemaBuilder) check(iface string, m *ir.MethodDescriptor, ann directive.Method, results *types.Tuple, pos token.Position) (ir.Diagnostic, bool) {
	tokens, err := urltemplate.Tokenize(ann.Template)
	if err != nil {
		return ir.InvalidTemplate.New(pos, iface, m.Name, ann.Template), false
	}

	if _, err := urltemplate.Bind(tokens, m.ParamNames()); err != nil {
		var bindErr *urltemplate.BindError
		name := ann.Template
		if errors.As(err, &bindErr) {
			name = bindErr.Placeholder
		}
		return ir.InvalidParameter.New(pos, iface, m.Name, name), false
	}

	if _, err := apiproxy.ParseVerb(ann.Verb); err != nil {
		return ir.UnsupportedVerb.New(pos, iface, m.Name, m.Annotation.Verb), false
	}

	result, ok := classifyResults(results)
	if !ok {
		return ir.InvalidReturnType.New(pos, iface, m.Name, resultString(m.Results)), false
	}
	if result >= 0 {
		ref := m.Results[result]
		m.Result = &ref
	}
	return ir.Diagnostic{}, true
}

// classifyResults accepts (error) and (T, error) with a JSON-decodable T.
// It returns the index of T, or -1 for (error).
func classifyResults(results *types.Tuple) (int, bool) {
	switch results.Len() {
	case 1:
		return -1, isError(results.At(0).Type())
	case 2:
		if !isError(results.At(1).Type()) {
			return 0, false
		}
		return 0, decodable(results.At(0).Type(), make(map[types.Type]bool))
	default:
		return 0, false
	}
}

// decodable reports whether encoding/json can unmarshal into t.
func decodable(t types.Type, seen map[types.Type]bool) bool {
	if seen[t] {
		return true
	}
	seen[t] = true

	if isError(t) {
		return false
	}
	switch u := t.Underlying().(type) {
	case *types.Basic:
		switch {
		case u.Kind() == types.UnsafePointer, u.Info()&types.IsComplex != 0:
			return false
		}
		return u.Kind() != types.Invalid
	case *types.Chan, *types.Signature:
		return false
	case *types.Interface:
		// Only the empty interface can receive arbitrary JSON.
		return u.Empty() || implementsUnmarshaler(t)
	case *types.Pointer:
		return decodable(u.Elem(), seen)
	case *types.Slice:
		return decodable(u.Elem(), seen)
	case *types.Array:
		return decodable(u.Elem(), seen)
	case *types.Map:
		return decodable(u.Elem(), seen)
	case *types.TypeParam:
		return false
	}
	return true
}

func implementsUnmarshaler(t types.Type) bool {
	ms := types.NewMethodSet(t)
	return ms.Lookup(nil, "UnmarshalJSON") != nil
}

var errorType = types.Universe.Lookup("error").Type()

func isError(t types.Type) bool {
	return types.Identical(t, errorType)
}

func isContext(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == "context" && obj.Name() == "Context"
}

// qualify renders t for the generated package, registering every package it
// refers to in imports.
func qualify(imports *ir.ImportSet, t types.Type) ir.TypeRef {
	var ref ir.TypeRef
	ref.Expr = types.TypeString(t, func(pkg *types.Package) string {
		alias := imports.Add(pkg.Path(), pkg.Name())
		ref.Packages = appendUnique(ref.Packages, pkg.Path())
		return alias
	})
	return ref
}

func appendUnique(s []string, v string) []string {
	for _, e := range s {
		if e == v {
			return s
		}
	}
	return append(s, v)
}

// resultString renders a result list the way it was declared.
func resultString(results []ir.TypeRef) string {
	exprs := make([]string, len(results))
	for i, r := range results {
		exprs[i] = r.Expr
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return "(" + strings.Join(exprs, ", ") + ")"
}
