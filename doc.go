// Package apiproxy is the runtime for generated HTTP API proxies.
//
// A service is described as a Go interface annotated with directives:
//
//	//apiproxy:client MyHttpClient
//	type SampleService interface {
//		//apiproxy:method GET organizations/{organizationId}
//		ListAllIds(ctx context.Context, organizationId string) ([]uuid.UUID, error)
//	}
//
// Running the apiproxy generator (usually through go:generate) emits a
// SampleServiceProxy type in a proxies sub-package. The generated code is thin:
// it expands a [Route] with the call arguments and hands the resulting
// [RequestPlan] to [Get] or [GetNoResult], which dispatch the request over a
// [Transport] and decode the JSON response.
//
// Proxies obtain their transport from a [ClientFactory] by name, once, when the
// proxy is constructed. [HTTPClientFactory] is the default implementation:
//
//	factory, err := apiproxy.NewHTTPClientFactory(apiproxy.ClientConfig{
//	    Name:    "MyHttpClient",
//	    BaseURL: "https://api.example.com/v1/",
//	})
//	// ...
//	svc := proxies.NewSampleServiceProxy(factory,
//	    apiproxy.WithInterceptor(middleware.LoggingInterceptor(slog.Default())))
//	ids, err := svc.ListAllIds(ctx, "acme")
//
// Every runtime failure, whether a transport error, a non-2xx status or an
// undecodable body, is reported as a [*RequestError] matching [ErrRequestFailure].
package apiproxy
