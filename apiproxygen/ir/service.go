package ir

import "go/token"

// ServiceDescriptor represents one interface to generate a proxy for.
type ServiceDescriptor struct {
	// Name is the interface name (e.g., "SampleService").
	Name string

	// ClientName is the transport name the proxy constructor requests from
	// the client factory (e.g., "MyHttpClient").
	ClientName string

	// Methods contains every method of the interface's method set,
	// annotated or not, sorted by name.
	Methods []MethodDescriptor

	// Imports assigns the package aliases used by the type expressions of
	// this service.
	Imports *ImportSet

	// Pos is the position of the //apiproxy:client directive.
	Pos token.Position
}

// ProxyName returns the name of the generated proxy type.
func (s *ServiceDescriptor) ProxyName() string {
	return s.Name + "Proxy"
}

// MethodDescriptor represents a single interface method.
type MethodDescriptor struct {
	// Name is the method name (e.g., "ListAllIds").
	Name string

	// FullName is the qualified name: "Interface.Method".
	FullName string

	// Params are the declared parameters in order.
	Params []Param

	// Results are the declared results in order.
	Results []TypeRef

	// Variadic is set when the last parameter is variadic.
	Variadic bool

	// Annotation is the method's //apiproxy:method directive, or nil when the
	// method carries none and is left unimplemented.
	Annotation *Annotation

	// Result is the type decoded from the response body.
	// Nil when the method returns only an error.
	Result *TypeRef

	// Cancellation is the index of the context.Context parameter that is
	// forwarded to the transport, or -1 when there is none.
	Cancellation int

	// Valid is false when a diagnostic was reported for the method.
	Valid bool
}

// Implemented reports whether the proxy performs a request for the method.
func (m *MethodDescriptor) Implemented() bool {
	return m.Annotation != nil && m.Valid
}

// ParamNames returns the declared parameter names for binding. Context
// parameters and unnamed parameters yield "" so that no placeholder can
// bind to them.
func (m *MethodDescriptor) ParamNames() []string {
	names := make([]string, len(m.Params))
	for i, p := range m.Params {
		if p.Context || p.Name == "_" {
			continue
		}
		names[i] = p.Name
	}
	return names
}

// Annotation is the verb and template declared for a method.
type Annotation struct {
	Verb     string // normalized to upper case
	Template string
	Pos      token.Position
}

// Param is one declared parameter.
type Param struct {
	// Name is the declared name; empty for unnamed parameters.
	Name string

	// Type is the parameter type. For a variadic parameter the expression
	// keeps its leading ellipsis (e.g., "...string").
	Type TypeRef

	// Context is set for context.Context parameters.
	Context bool
}

// TypeRef is a Go type expression, qualified for the generated package.
type TypeRef struct {
	// Expr is the rendered expression (e.g., "[]uuid.UUID").
	Expr string

	// Packages are the import paths Expr refers to.
	Packages []string
}

// String returns the type expression.
func (t TypeRef) String() string {
	return t.Expr
}
