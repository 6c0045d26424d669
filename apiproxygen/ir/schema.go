// Package ir defines the intermediate representation the apiproxy generator
// builds from annotated interfaces and renders into proxy source.
package ir

// Schema is everything extracted from one source package.
type Schema struct {
	// Package is the source Go package information.
	Package PackageInfo

	// Services contains one descriptor per //apiproxy:client interface,
	// in source order.
	Services []ServiceDescriptor

	// Diagnostics lists every problem found across all services.
	Diagnostics []Diagnostic
}

// PackageInfo identifies the package the interfaces were declared in.
type PackageInfo struct {
	// Path is the import path (e.g., "github.com/acme/api").
	Path string

	// Name is the declared package name (e.g., "api").
	Name string

	// Dir is the directory containing the package sources.
	Dir string
}

// AddService adds a service descriptor to the schema.
func (s *Schema) AddService(svc ServiceDescriptor) {
	s.Services = append(s.Services, svc)
}

// AddDiagnostic adds a diagnostic to the schema.
func (s *Schema) AddDiagnostic(d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}

// FindService looks up a service by name. Returns nil if not found.
func (s *Schema) FindService(name string) *ServiceDescriptor {
	for i := range s.Services {
		if s.Services[i].Name == name {
			return &s.Services[i]
		}
	}
	return nil
}

// HasErrors reports whether any diagnostic has error severity.
func (s *Schema) HasErrors() bool {
	return HasErrors(s.Diagnostics)
}

// DiagnosticsFor returns the diagnostics reported against a service method.
func (s *Schema) DiagnosticsFor(service, method string) []Diagnostic {
	var out []Diagnostic
	for _, d := range s.Diagnostics {
		if d.Interface == service && d.Method == method {
			out = append(out, d)
		}
	}
	return out
}
