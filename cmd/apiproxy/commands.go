package main

import (
	"context"
	"fmt"
	"io"

	"github.com/broady/apiproxy/apiproxygen"
	"github.com/broady/apiproxy/apiproxygen/ir"
)

type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintln(g.Stdout, "apiproxy "+g.Version)
	return nil
}

type GenCmd struct {
	Package      string   `arg:"" optional:"" default:"." help:"Package to scan (default: current directory)."`
	Out          string   `help:"Output directory (default: the proxies directory inside the package)." short:"o"`
	OutPackage   string   `help:"Package name of generated files." default:"proxies" name:"out-package"`
	Interface    []string `help:"Only generate proxies for these interfaces." short:"i"`
	WriteOnError bool     `help:"Write files even when diagnostics are reported." name:"write-on-error"`
}

func (c *GenCmd) Run(g *Globals) error {
	gen := apiproxygen.FromPackage(c.Package).
		Interfaces(c.Interface...).
		OutPackage(c.OutPackage).
		Version(g.Version).
		WithLogger(g.Logger)
	if c.WriteOnError {
		gen = gen.WriteOnError()
	}

	var (
		result *apiproxygen.Result
		err    error
	)
	if c.Out != "" {
		result, err = gen.ToDir(c.Out)
	} else {
		result, err = gen.Generate(context.Background())
	}
	if err != nil {
		return err
	}

	printDiagnostics(g.Stderr, result.Diagnostics)
	if result.Written {
		fmt.Fprintf(g.Stdout, "✓ Wrote %d files to %s\n", len(result.Files), result.OutDir)
	}
	if result.HasErrors() {
		return fmt.Errorf("%d diagnostics reported", len(result.Diagnostics))
	}
	return nil
}

type CheckCmd struct {
	Package   string   `arg:"" optional:"" default:"." help:"Package to scan (default: current directory)."`
	Interface []string `help:"Only check these interfaces." short:"i"`
}

func (c *CheckCmd) Run(g *Globals) error {
	result, err := apiproxygen.FromPackage(c.Package).
		Interfaces(c.Interface...).
		Version(g.Version).
		WithLogger(g.Logger).
		Check(context.Background())
	if err != nil {
		return err
	}

	printDiagnostics(g.Stderr, result.Diagnostics)
	if result.HasErrors() {
		return fmt.Errorf("%d diagnostics reported", len(result.Diagnostics))
	}

	var methods, implemented int
	for _, svc := range result.Schema.Services {
		for _, m := range svc.Methods {
			methods++
			if m.Implemented() {
				implemented++
			}
		}
	}
	fmt.Fprintf(g.Stdout, "✓ %d interfaces, %d methods (%d proxied)\n", len(result.Schema.Services), methods, implemented)
	return nil
}

func printDiagnostics(w io.Writer, ds []ir.Diagnostic) {
	for _, d := range ds {
		fmt.Fprintln(w, d.String())
	}
}
