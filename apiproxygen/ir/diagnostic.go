package ir

import (
	"fmt"
	"go/token"
)

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// DiagnosticDefinition is a stable diagnostic identifier and its message
// format. The format takes exactly one argument.
type DiagnosticDefinition struct {
	ID       string
	Severity Severity
	Format   string
}

var (
	// InvalidTemplate is reported when a URL template cannot be tokenized.
	InvalidTemplate = DiagnosticDefinition{ID: "APIPROXY01", Format: "Invalid UrlTemplate: '%s'."}

	// InvalidParameter is reported when a placeholder matches no parameter.
	InvalidParameter = DiagnosticDefinition{ID: "APIPROXY02", Format: "Invalid parameter '%s' in UrlTemplate."}

	// InvalidReturnType is reported when a method's results are not
	// (error) or (T, error) with a JSON-decodable T.
	InvalidReturnType = DiagnosticDefinition{ID: "APIPROXY03", Format: "Invalid return type '%s'."}

	// UnsupportedVerb is reported for any verb other than GET.
	UnsupportedVerb = DiagnosticDefinition{ID: "APIPROXY04", Format: "Unsupported HTTP Verb '%s'."}
)

// Definitions lists every diagnostic the generator can report.
var Definitions = []DiagnosticDefinition{
	InvalidTemplate,
	InvalidParameter,
	InvalidReturnType,
	UnsupportedVerb,
}

// New creates a diagnostic for a method of an interface.
func (d DiagnosticDefinition) New(pos token.Position, iface, method, arg string) Diagnostic {
	return Diagnostic{
		ID:        d.ID,
		Severity:  d.Severity,
		Message:   fmt.Sprintf(d.Format, arg),
		Pos:       pos,
		Interface: iface,
		Method:    method,
	}
}

// Diagnostic is a problem found in an annotated interface.
// Diagnostics are data: they never abort generation of other methods.
type Diagnostic struct {
	ID        string
	Severity  Severity
	Message   string
	Pos       token.Position
	Interface string
	Method    string
}

// String formats the diagnostic the way compilers do:
//
//	api.go:12:2: APIPROXY01: Invalid UrlTemplate: 'a/{b'.
func (d Diagnostic) String() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Pos, d.ID, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.ID, d.Message)
}

// HasErrors reports whether any of ds has error severity.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
