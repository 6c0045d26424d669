package apiproxygen

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/broady/apiproxy/apiproxygen/ir"
	"golang.org/x/tools/imports"
)

//go:embed proxy.go.tmpl
var proxyTmpl string

var proxyTemplate = template.Must(template.New("proxy").Parse(proxyTmpl))

// RenderOptions configures Render.
type RenderOptions struct {
	Package string // package name of the generated file
	Version string // recorded in the file header
}

// fileContext is the data the proxy template executes with.
type fileContext struct {
	Version    string
	Package    string
	Imports    []ir.Import
	Source     string // alias of the package declaring the interface
	Service    string
	ClientName string
	Proxy      string
	Routes     []routeContext
	Methods    []methodContext
}

type routeContext struct {
	Var      string
	FullName string
	Template string
	Params   []string
}

type methodContext struct {
	Kind       string // get, noresult, notimpl, notimplpanic or invalid
	Proxy      string
	Name       string
	FullName   string
	Template   string
	Params     string
	Results    string
	ResultType string
	Ctx        string
	Route      string
	Args       string
	ErrResult  string
	Diagnostic string
	Panic      string
}

// FileName returns the name of the file generated for svc.
func FileName(svc *ir.ServiceDescriptor) string {
	return snakeCase(svc.Name) + "_proxy.go"
}

// Render generates the formatted proxy source for one service of schema.
func Render(schema *ir.Schema, svc *ir.ServiceDescriptor, opts RenderOptions) ([]byte, error) {
	if opts.Package == "" {
		opts.Package = DefaultOutPackage
	}
	if opts.Version == "" {
		opts.Version = "devel"
	}

	source, ok := svc.Imports.Alias(schema.Package.Path)
	if !ok {
		return nil, fmt.Errorf("service %s: source package %s not registered", svc.Name, schema.Package.Path)
	}

	fc := &fileContext{
		Version:    opts.Version,
		Package:    opts.Package,
		Source:     source,
		Service:    svc.Name,
		ClientName: svc.ClientName,
		Proxy:      svc.ProxyName(),
	}

	used := []string{ir.RuntimePath, schema.Package.Path}
	// Package-level names in the generated file.
	globals := newScope(svc.Imports.Taken, fc.Proxy, "New"+fc.Proxy)

	for i := range svc.Methods {
		m := &svc.Methods[i]
		mc, route, paths := buildMethod(schema, svc, m, globals)
		mc.Proxy = fc.Proxy
		used = append(used, paths...)
		if route != nil {
			fc.Routes = append(fc.Routes, *route)
		}
		fc.Methods = append(fc.Methods, mc)
	}
	fc.Imports = svc.Imports.Imports(used)

	var buf bytes.Buffer
	if err := proxyTemplate.Execute(&buf, fc); err != nil {
		return nil, fmt.Errorf("service %s: execute template: %w", svc.Name, err)
	}

	out, err := imports.Process(FileName(svc), buf.Bytes(), &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
	if err != nil {
		return nil, fmt.Errorf("service %s: format generated source: %w\n%s", svc.Name, err, buf.Bytes())
	}
	return out, nil
}

// buildMethod prepares the template data for one method. It returns the
// route to declare, if any, and the import paths the method refers to.
func buildMethod(schema *ir.Schema, svc *ir.ServiceDescriptor, m *ir.MethodDescriptor, globals *scope) (methodContext, *routeContext, []string) {
	mc := methodContext{
		Name:     m.Name,
		FullName: m.FullName,
	}
	var paths []string

	// Parameter names are local to the method; they only need to avoid the
	// receiver and import aliases.
	locals := newScope(svc.Imports.Taken, "p")
	params := make([]string, len(m.Params))
	args := make([]string, len(m.Params))
	for i, prm := range m.Params {
		want := prm.Name
		if want == "" || want == "_" {
			want = fmt.Sprintf("arg%d", i)
		}
		name := locals.name(want)
		params[i] = name + " " + prm.Type.Expr
		args[i] = name
		if m.Cancellation == i {
			mc.Ctx = name
		}
		paths = append(paths, prm.Type.Packages...)
	}
	mc.Params = strings.Join(params, ", ")
	mc.Args = strings.Join(args, ", ")
	for _, r := range m.Results {
		paths = append(paths, r.Packages...)
	}

	switch {
	case m.Annotation == nil:
		if n := len(m.Results); n > 0 && m.Results[n-1].Expr == "error" {
			mc.Kind = "notimpl"
			var named []string
			for i, r := range m.Results[:n-1] {
				named = append(named, locals.name(fmt.Sprintf("r%d", i))+" "+r.Expr)
			}
			mc.ErrResult = locals.name("err")
			named = append(named, mc.ErrResult+" error")
			mc.Results = "(" + strings.Join(named, ", ") + ")"
		} else {
			mc.Kind = "notimplpanic"
			mc.Results = resultList(m.Results)
		}
		return mc, nil, paths

	case !m.Valid:
		mc.Kind = "invalid"
		mc.Results = resultList(m.Results)
		mc.Diagnostic = "invalid method"
		if ds := schema.DiagnosticsFor(svc.Name, m.Name); len(ds) > 0 {
			mc.Diagnostic = ds[0].ID + ": " + ds[0].Message
		}
		mc.Panic = "apiproxy: " + m.FullName + ": " + mc.Diagnostic
		return mc, nil, paths
	}

	mc.Results = resultList(m.Results)
	mc.Template = m.Annotation.Template
	if mc.Ctx == "" {
		mc.Ctx = "context.Background()"
		paths = append(paths, "context")
	}
	mc.Route = globals.name(lowerFirst(svc.Name) + m.Name + "Route")
	if m.Result != nil {
		mc.Kind = "get"
		mc.ResultType = m.Result.Expr
	} else {
		mc.Kind = "noresult"
	}

	route := &routeContext{
		Var:      mc.Route,
		FullName: m.FullName,
		Template: m.Annotation.Template,
		Params:   m.ParamNames(),
	}
	return mc, route, paths
}

func resultList(results []ir.TypeRef) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return results[0].Expr
	}
	exprs := make([]string, len(results))
	for i, r := range results {
		exprs[i] = r.Expr
	}
	return "(" + strings.Join(exprs, ", ") + ")"
}
