package apiproxygen

import (
	"context"
	"log/slog"

	"github.com/broady/apiproxy/apiproxygen/sink"
)

// Generator provides a fluent API for proxy generation.
// Create with FromPackage and configure with method chaining.
//
// Example:
//
//	apiproxygen.FromPackage("./api").
//	    Interfaces("SampleService").
//	    ToDir("./api/proxies")
type Generator struct {
	cfg Config
}

// FromPackage creates a Generator for the package matching pattern.
func FromPackage(pattern string) *Generator {
	return &Generator{cfg: Config{Package: pattern}}
}

// Dir sets the working directory used to resolve the package pattern.
func (g *Generator) Dir(dir string) *Generator {
	g.cfg.Dir = dir
	return g
}

// Interfaces restricts generation to the named interfaces.
// Can be called multiple times.
func (g *Generator) Interfaces(names ...string) *Generator {
	g.cfg.Interfaces = append(g.cfg.Interfaces, names...)
	return g
}

// OutPackage sets the package name of the generated files.
func (g *Generator) OutPackage(name string) *Generator {
	g.cfg.OutPackage = name
	return g
}

// Version sets the generator version recorded in file headers.
func (g *Generator) Version(v string) *Generator {
	g.cfg.Version = v
	return g
}

// WriteOnError writes files even when diagnostics were reported.
func (g *Generator) WriteOnError() *Generator {
	g.cfg.WriteOnError = true
	return g
}

// WithLogger sets the logger receiving debug progress output.
func (g *Generator) WithLogger(l *slog.Logger) *Generator {
	g.cfg.Logger = l
	return g
}

// Generate writes files to the default output directory, the "proxies"
// directory inside the source package.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	return Generate(ctx, g.cfg, nil)
}

// ToDir writes files to dir.
func (g *Generator) ToDir(dir string) (*Result, error) {
	cfg := g.cfg
	cfg.OutDir = dir
	return Generate(context.Background(), cfg, nil)
}

// ToSink writes files to s.
func (g *Generator) ToSink(ctx context.Context, s sink.OutputSink) (*Result, error) {
	return Generate(ctx, g.cfg, s)
}

// Check extracts and renders without writing anything.
func (g *Generator) Check(ctx context.Context) (*Result, error) {
	cfg := g.cfg
	cfg.WriteOnError = false
	res, err := Generate(ctx, cfg, sink.NewMemorySink())
	if err != nil {
		return nil, err
	}
	res.Written = false
	return res, nil
}
