// Package apiproxygen generates HTTP proxy implementations for Go interfaces
// annotated with apiproxy directives.
//
// Given
//
//	//apiproxy:client MyHttpClient
//	type SampleService interface {
//	    //apiproxy:method GET organizations/{organizationId}
//	    ListAllIds(ctx context.Context, organizationId string) ([]uuid.UUID, error)
//	}
//
// the generator writes proxies/sample_service_proxy.go declaring
// SampleServiceProxy, which implements SampleService by sending
// GET organizations/<organizationId> through the transport named
// MyHttpClient and decoding the JSON response.
package apiproxygen

import (
	"context"
	"fmt"

	"github.com/broady/apiproxy/apiproxygen/ir"
	"github.com/broady/apiproxy/apiproxygen/provider"
	"github.com/broady/apiproxy/apiproxygen/sink"
)

// GeneratedFile is one rendered proxy source file.
type GeneratedFile struct {
	Path    string // relative to Result.OutDir
	Service string
	Content []byte
}

// Result is the outcome of a generation run.
type Result struct {
	// Schema is the extracted intermediate representation.
	Schema *ir.Schema

	// Files are the rendered files, one per service.
	Files []GeneratedFile

	// Diagnostics lists every problem found, across all services.
	Diagnostics []ir.Diagnostic

	// OutDir is the directory the files belong in.
	OutDir string

	// Written reports whether the files were handed to the sink.
	Written bool
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Result) HasErrors() bool {
	return ir.HasErrors(r.Diagnostics)
}

// Generate extracts the annotated interfaces of cfg.Package, renders a proxy
// for each and writes them to out. If out is nil, files are written to the
// configured output directory.
//
// Diagnostics do not make Generate fail: they are returned on the Result and
// suppress writing unless cfg.WriteOnError is set. The error return is for
// load, render and write failures.
func Generate(ctx context.Context, cfg Config, out sink.OutputSink) (*Result, error) {
	cfg = applyConfigDefaults(cfg)
	log := cfg.Logger

	log.Debug("loading package", "package", cfg.Package, "dir", cfg.Dir)
	p := &provider.SourceProvider{Logger: log}
	schema, err := p.BuildSchema(ctx, provider.SourceInputOptions{
		Package:    cfg.Package,
		Dir:        cfg.Dir,
		Interfaces: cfg.Interfaces,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	result := &Result{
		Schema:      schema,
		Diagnostics: schema.Diagnostics,
		OutDir:      cfg.outDir(schema.Package.Dir),
	}
	for _, d := range schema.Diagnostics {
		log.Debug("diagnostic", "id", d.ID, "pos", d.Pos.String(), "message", d.Message)
	}

	for i := range schema.Services {
		svc := &schema.Services[i]
		content, err := Render(schema, svc, RenderOptions{
			Package: cfg.OutPackage,
			Version: cfg.Version,
		})
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, GeneratedFile{
			Path:    FileName(svc),
			Service: svc.Name,
			Content: content,
		})
		log.Debug("rendered proxy", "service", svc.Name, "methods", len(svc.Methods))
	}

	if result.HasErrors() && !cfg.WriteOnError {
		log.Debug("not writing files", "diagnostics", len(result.Diagnostics))
		return result, nil
	}
	if len(result.Files) == 0 {
		return result, nil
	}

	if out == nil {
		out = sink.NewFilesystemSink(result.OutDir)
	}
	for _, f := range result.Files {
		if err := out.WriteFile(ctx, f.Path, f.Content); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
		log.Debug("wrote file", "path", f.Path, "bytes", len(f.Content))
	}
	result.Written = true
	return result, nil
}
