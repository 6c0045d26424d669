package apiproxy

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps how much of a response body is read. A larger body
// fails the call with ErrBodyTooLarge as the cause.
const MaxBodyBytes = 8 << 20

// ErrBodyTooLarge is the cause of a RequestError for a response body over
// MaxBodyBytes.
var ErrBodyTooLarge = fmt.Errorf("response body exceeds %d bytes", MaxBodyBytes)

// RequestPlan is a resolved, ready-to-send request for one call.
type RequestPlan struct {
	Verb   Verb
	URI    string
	Method string // qualified proxy method, e.g. "SampleService.ListAllIds"
}

// Outcome is the raw result of a dispatched request.
type Outcome struct {
	Status int
	Header http.Header
	Body   []byte
}

// Success reports whether the response status is 2xx.
func (o Outcome) Success() bool {
	return o.Status >= 200 && o.Status < 300
}

// Dispatch sends plan over t and reads the full response.
// The response body is closed before Dispatch returns, on every path.
// Cancellation of ctx aborts the request.
func Dispatch(ctx context.Context, t Transport, plan RequestPlan) (Outcome, error) {
	if plan.Verb != VerbGet {
		return Outcome{}, fmt.Errorf("%s %s: %w", plan.Verb, plan.URI, ErrUnsupportedVerb)
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, &RequestError{URI: plan.URI, Cause: err}
	}

	resp, err := t.Get(ctx, plan.URI)
	if err != nil {
		return Outcome{}, &RequestError{URI: plan.URI, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return Outcome{}, &RequestError{URI: plan.URI, Status: resp.StatusCode, Cause: err}
	}
	if len(body) > MaxBodyBytes {
		return Outcome{}, &RequestError{URI: plan.URI, Status: resp.StatusCode, Cause: ErrBodyTooLarge}
	}

	return Outcome{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   body,
	}, nil
}
