package apiproxy

import (
	"context"
	"errors"
)

// Option configures a Client.
type Option func(*Client)

// WithInterceptor adds an interceptor around every request of the client.
// Interceptors run in the order they are added.
func WithInterceptor(i Interceptor) Option {
	return func(c *Client) {
		c.interceptors = append(c.interceptors, i)
	}
}

// Client is the transport handle held by a generated proxy: the named
// transport plus the interceptors configured for the proxy. It is created
// once, in the proxy constructor, and is safe for concurrent use.
type Client struct {
	transport    Transport
	interceptors []Interceptor
	chain        Interceptor
}

// NewClient wraps t with opts.
func NewClient(t Transport, opts ...Option) *Client {
	c := &Client{transport: t}
	for _, opt := range opts {
		opt(c)
	}
	c.chain = chainInterceptors(c.interceptors)
	return c
}

// Transport returns the underlying transport.
func (c *Client) Transport() Transport { return c.transport }

func (c *Client) invoke(ctx context.Context, plan RequestPlan) (Outcome, error) {
	ctx = newCallContext(ctx, plan.Method)
	dispatch := func(ctx context.Context, plan RequestPlan) (Outcome, error) {
		return Dispatch(ctx, c.transport, plan)
	}
	if c.chain == nil {
		return dispatch(ctx, plan)
	}
	return c.chain(ctx, plan, dispatch)
}

// Get dispatches plan and decodes the JSON response into T.
// Every failure is a *RequestError.
func Get[T any](ctx context.Context, c *Client, plan RequestPlan) (T, error) {
	var zero T
	out, err := c.invoke(ctx, plan)
	if err != nil {
		return zero, err
	}
	v, err := Decode[T](out)
	if err != nil {
		return zero, withURI(err, plan.URI)
	}
	return v, nil
}

// GetNoResult dispatches plan and discards the response body.
// A non-2xx response is reported as a *RequestError.
func GetNoResult(ctx context.Context, c *Client, plan RequestPlan) error {
	out, err := c.invoke(ctx, plan)
	if err != nil {
		return err
	}
	if !out.Success() {
		return &RequestError{URI: plan.URI, Status: out.Status}
	}
	return nil
}

func withURI(err error, uri string) error {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.URI == "" {
		reqErr.URI = uri
	}
	return err
}
