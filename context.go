package apiproxy

import (
	"context"
	"net/http"
	"strings"
)

type contextKey struct {
	name string
}

var (
	callInfoKey = &contextKey{"call_info"}
	headerKey   = &contextKey{"header"}
)

// callInfo identifies the proxy method a request is made for.
type callInfo struct {
	Service string // interface name, e.g. "SampleService"
	Method  string // method name, e.g. "ListAllIds"
}

// MethodFromContext returns the interface and method name of the proxy call
// in progress. Transports and interceptors see it on every request.
func MethodFromContext(ctx context.Context) (service, method string, ok bool) {
	if info, ok := ctx.Value(callInfoKey).(*callInfo); ok {
		return info.Service, info.Method, true
	}
	return "", "", false
}

func newCallContext(ctx context.Context, qualified string) context.Context {
	service, method, ok := strings.Cut(qualified, ".")
	if !ok {
		service, method = "", qualified
	}
	return context.WithValue(ctx, callInfoKey, &callInfo{Service: service, Method: method})
}

// WithHeader returns a context that makes HTTPTransport send the header
// key: value on requests made with it. Headers accumulate; a later value for
// the same key replaces an earlier one.
func WithHeader(ctx context.Context, key, value string) context.Context {
	h := headerFromContext(ctx).Clone()
	if h == nil {
		h = make(http.Header)
	}
	h.Set(key, value)
	return context.WithValue(ctx, headerKey, h)
}

func headerFromContext(ctx context.Context) http.Header {
	h, _ := ctx.Value(headerKey).(http.Header)
	return h
}
