// Package testutil provides fake transports and factories for testing
// generated proxies and the apiproxy runtime.
// This package is designed to be import-cycle safe and can be used from any package.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/broady/apiproxy"
)

// Call records one request seen by a Transport.
type Call struct {
	URI string
	Ctx context.Context
}

type canned struct {
	status int
	header http.Header
	body   []byte
	err    error
	block  bool
}

// Transport is a fake apiproxy.Transport serving canned responses by URI.
// Requests for unknown URIs get a 404. It records every call and every
// response body it hands out, so tests can check bodies were closed.
// It is safe for concurrent use.
type Transport struct {
	mu     sync.Mutex
	routes map[string]canned
	calls  []Call
	bodies []*trackedBody
}

// NewTransport creates an empty fake transport.
func NewTransport() *Transport {
	return &Transport{routes: make(map[string]canned)}
}

// Respond serves status and body for uri.
func (t *Transport) Respond(uri string, status int, body string) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.routes[uri] = canned{
		status: status,
		header: http.Header{"Content-Type": []string{"application/json"}},
		body:   []byte(body),
	}
	return t
}

// RespondJSON serves v encoded as JSON for uri.
func (t *Transport) RespondJSON(uri string, status int, v any) *Transport {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return t.Respond(uri, status, string(data))
}

// Fail makes requests for uri return err without a response.
func (t *Transport) Fail(uri string, err error) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.routes[uri] = canned{err: err}
	return t
}

// Block makes requests for uri wait until their context is done.
func (t *Transport) Block(uri string) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.routes[uri] = canned{block: true}
	return t
}

// Get implements apiproxy.Transport.
func (t *Transport) Get(ctx context.Context, uri string) (*http.Response, error) {
	t.mu.Lock()
	t.calls = append(t.calls, Call{URI: uri, Ctx: ctx})
	c, ok := t.routes[uri]
	t.mu.Unlock()

	if !ok {
		c = canned{status: http.StatusNotFound}
	}
	if c.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if c.err != nil {
		return nil, c.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body := &trackedBody{Reader: bytes.NewReader(c.body)}
	t.mu.Lock()
	t.bodies = append(t.bodies, body)
	t.mu.Unlock()

	return &http.Response{
		StatusCode: c.status,
		Status:     http.StatusText(c.status),
		Header:     c.header.Clone(),
		Body:       body,
	}, nil
}

// Calls returns a copy of the recorded calls.
func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Call(nil), t.calls...)
}

// URIs returns the URIs of the recorded calls, in order.
func (t *Transport) URIs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	uris := make([]string, len(t.calls))
	for i, c := range t.calls {
		uris[i] = c.URI
	}
	return uris
}

// OpenBodies returns how many response bodies have not been closed.
func (t *Transport) OpenBodies() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, b := range t.bodies {
		if !b.isClosed() {
			n++
		}
	}
	return n
}

type trackedBody struct {
	io.Reader
	mu     sync.Mutex
	closed bool
}

func (b *trackedBody) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *trackedBody) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Factory is a fake apiproxy.ClientFactory that hands out registered
// transports by name and records every name requested.
type Factory struct {
	mu         sync.Mutex
	transports map[string]apiproxy.Transport
	created    []string
}

// NewFactory creates an empty factory.
func NewFactory() *Factory {
	return &Factory{transports: make(map[string]apiproxy.Transport)}
}

// With registers t under name.
func (f *Factory) With(name string, t apiproxy.Transport) *Factory {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transports[name] = t
	return f
}

// CreateClient implements apiproxy.ClientFactory.
// Unregistered names get a transport failing with apiproxy.ErrUnknownClient.
func (f *Factory) CreateClient(name string) apiproxy.Transport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, name)
	if t, ok := f.transports[name]; ok {
		return t
	}
	return apiproxy.TransportFunc(func(context.Context, string) (*http.Response, error) {
		return nil, apiproxy.ErrUnknownClient
	})
}

// Created returns the names passed to CreateClient, in order.
func (f *Factory) Created() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.created...)
}

// NewServer starts an httptest server for handler and returns an
// HTTPClientFactory whose client name points at it. The server is closed
// when the test ends.
func NewServer(t testing.TB, name string, handler http.Handler) *apiproxy.HTTPClientFactory {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	factory, err := apiproxy.NewHTTPClientFactory(apiproxy.ClientConfig{
		Name:    name,
		BaseURL: srv.URL + "/",
	})
	if err != nil {
		t.Fatalf("create client factory: %v", err)
	}
	return factory
}

// JSONHandler returns a handler that writes v as JSON with status.
func JSONHandler(status int, v any) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	})
}

// AssertRequestFailure checks that err is an apiproxy.RequestError with the
// expected status. Pass status 0 to skip the status check.
func AssertRequestFailure(t *testing.T, err error, status int) *apiproxy.RequestError {
	t.Helper()
	if !errors.Is(err, apiproxy.ErrRequestFailure) {
		t.Fatalf("expected request failure, got %v", err)
	}
	var reqErr *apiproxy.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *apiproxy.RequestError, got %T", err)
	}
	if status != 0 && reqErr.Status != status {
		t.Errorf("expected status %d, got %d", status, reqErr.Status)
	}
	return reqErr
}
