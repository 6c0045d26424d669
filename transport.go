package apiproxy

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/hashicorp/go-cleanhttp"
)

// Transport issues GET requests for a proxy.
// Implementations must be safe for concurrent use; a single Transport is
// shared by every method of a proxy instance.
type Transport interface {
	// Get sends a GET request for uri. The request must be aborted when ctx
	// is canceled. The caller closes the response body.
	Get(ctx context.Context, uri string) (*http.Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, uri string) (*http.Response, error)

// Get implements Transport.
func (f TransportFunc) Get(ctx context.Context, uri string) (*http.Response, error) {
	return f(ctx, uri)
}

// ClientFactory creates named transports. Generated proxy constructors call
// CreateClient exactly once with the name from the //apiproxy:client directive.
type ClientFactory interface {
	CreateClient(name string) Transport
}

// ClientFactoryFunc adapts a function to the ClientFactory interface.
type ClientFactoryFunc func(name string) Transport

// CreateClient implements ClientFactory.
func (f ClientFactoryFunc) CreateClient(name string) Transport { return f(name) }

// HTTPTransport sends requests through an *http.Client, resolving request
// URIs against BaseURL.
type HTTPTransport struct {
	Client    *http.Client
	BaseURL   *url.URL
	UserAgent string
}

// NewHTTPTransport returns a transport for baseURL using a pooled client.
func NewHTTPTransport(baseURL string) (*HTTPTransport, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &HTTPTransport{
		Client:  cleanhttp.DefaultPooledClient(),
		BaseURL: base,
	}, nil
}

// Get implements Transport.
func (t *HTTPTransport) Get(ctx context.Context, uri string) (*http.Response, error) {
	target, err := t.resolve(uri)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if t.UserAgent != "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}
	for key, values := range headerFromContext(ctx) {
		req.Header[key] = append([]string(nil), values...)
	}

	client := t.Client
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}
	return client.Do(req)
}

func (t *HTTPTransport) resolve(uri string) (string, error) {
	if strings.Contains(uri, "://") || t.BaseURL == nil {
		return uri, nil
	}
	// The "./" prefix keeps a leading segment such as "a:b" from being
	// taken as a URL scheme.
	ref := uri
	if !strings.HasPrefix(ref, "/") {
		ref = "./" + ref
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse request uri %q: %w", uri, err)
	}
	return t.BaseURL.ResolveReference(rel).String(), nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: unsupported scheme %q", raw, u.Scheme)
	}
	// Relative request URIs extend the base path instead of replacing its
	// last segment.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
		if u.RawPath != "" {
			u.RawPath += "/"
		}
	}
	return u, nil
}

// HTTPClientFactory is the default ClientFactory. It creates one transport per
// configured name on first use and returns the same transport afterwards.
type HTTPClientFactory struct {
	configs map[string]ClientConfig

	mu         sync.Mutex
	transports map[string]*HTTPTransport
}

// NewHTTPClientFactory validates configs and returns a factory serving them.
func NewHTTPClientFactory(configs ...ClientConfig) (*HTTPClientFactory, error) {
	f := &HTTPClientFactory{
		configs:    make(map[string]ClientConfig, len(configs)),
		transports: make(map[string]*HTTPTransport),
	}
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if _, dup := f.configs[cfg.Name]; dup {
			return nil, fmt.Errorf("duplicate client name %q", cfg.Name)
		}
		f.configs[cfg.Name] = cfg
	}
	return f, nil
}

// CreateClient implements ClientFactory. Unknown names yield a transport whose
// every call fails with ErrUnknownClient.
func (f *HTTPClientFactory) CreateClient(name string) Transport {
	f.mu.Lock()
	defer f.mu.Unlock()

	if t, ok := f.transports[name]; ok {
		return t
	}
	cfg, ok := f.configs[name]
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownClient, name)
		return TransportFunc(func(context.Context, string) (*http.Response, error) {
			return nil, err
		})
	}

	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		// Validate already checked the URL; this only fails for schemes
		// the validator accepts but HTTP does not.
		return TransportFunc(func(context.Context, string) (*http.Response, error) {
			return nil, err
		})
	}
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = cfg.Timeout

	t := &HTTPTransport{
		Client:    client,
		BaseURL:   base,
		UserAgent: cfg.UserAgent,
	}
	f.transports[name] = t
	return t
}
