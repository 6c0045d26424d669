package apiproxygen

import (
	"log/slog"
	"path/filepath"
)

// DefaultOutPackage is the package name of generated proxies.
const DefaultOutPackage = "proxies"

// Config holds the configuration for proxy generation.
type Config struct {
	// Package is the package pattern to analyze, e.g. "." or
	// "github.com/acme/api".
	Package string

	// Dir is the working directory used to resolve Package.
	// Empty means the current directory.
	Dir string

	// OutDir is the directory generated files are written to.
	// Default: the "proxies" directory inside the source package.
	OutDir string

	// OutPackage is the package name of the generated files.
	// Default: "proxies"
	OutPackage string

	// Interfaces restricts generation to the named interfaces.
	// If empty, every //apiproxy:client interface is generated.
	Interfaces []string

	// Version is recorded in the header of generated files.
	// Default: "devel"
	Version string

	// WriteOnError writes files even when diagnostics were reported.
	// Methods with diagnostics panic when called.
	WriteOnError bool

	// Logger receives progress output at debug level. Nil discards it.
	Logger *slog.Logger
}

func applyConfigDefaults(cfg Config) Config {
	if cfg.Package == "" {
		cfg.Package = "."
	}
	if cfg.OutPackage == "" {
		cfg.OutPackage = DefaultOutPackage
	}
	if cfg.Version == "" {
		cfg.Version = "devel"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}

// outDir resolves the output directory for a package located in pkgDir.
func (cfg Config) outDir(pkgDir string) string {
	if cfg.OutDir != "" {
		return cfg.OutDir
	}
	return filepath.Join(pkgDir, cfg.OutPackage)
}
