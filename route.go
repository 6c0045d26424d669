package apiproxy

import (
	"fmt"

	"github.com/broady/apiproxy/internal/urltemplate"
)

// Route binds a URL template to the parameter list of one proxy method.
// Generated code builds one Route per method at package initialization.
type Route struct {
	method  string
	verb    Verb
	binding *urltemplate.Binding
}

// NewRoute tokenizes template and binds its placeholders to params, the
// declared parameter names of the method in order. Placeholders match
// parameter names case-insensitively, preferring an exact match.
func NewRoute(method string, verb Verb, template string, params ...string) (*Route, error) {
	if verb != VerbGet {
		return nil, fmt.Errorf("%s: %w: %q", method, ErrUnsupportedVerb, verb)
	}
	tokens, err := urltemplate.Tokenize(template)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	binding, err := urltemplate.Bind(tokens, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return &Route{
		method:  method,
		verb:    verb,
		binding: binding,
	}, nil
}

// MustRoute is like NewRoute but panics on error. The generator validates
// every template before emitting a call to MustRoute.
func MustRoute(method string, verb Verb, template string, params ...string) *Route {
	r, err := NewRoute(method, verb, template, params...)
	if err != nil {
		panic(err)
	}
	return r
}

// Plan expands the template with args, given positionally in declared
// parameter order, and returns the request plan for one call.
func (r *Route) Plan(args ...any) RequestPlan {
	return RequestPlan{
		Verb:   r.verb,
		URI:    r.binding.Expand(args...),
		Method: r.method,
	}
}
