package apiproxy

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRequestFailure matches every error returned by a proxy call.
	ErrRequestFailure = errors.New("request failure")

	// ErrUnsupportedVerb is returned when a request plan uses a verb other than GET.
	ErrUnsupportedVerb = errors.New("unsupported HTTP verb")

	// ErrNotImplemented is returned by proxy methods that carry no
	// //apiproxy:method directive.
	ErrNotImplemented = errors.New("method not implemented by proxy")

	// ErrUnknownClient is returned by transports created for a name the
	// factory has no configuration for.
	ErrUnknownClient = errors.New("unknown client")
)

// FailureMessage is the fixed text of every RequestError.
const FailureMessage = "unable to retrieve and deserialize response"

// RequestError is the single runtime error kind of a proxy call.
// It covers transport errors, non-2xx responses and undecodable bodies alike;
// Status and Cause are kept for diagnosis only.
type RequestError struct {
	URI    string
	Status int   // 0 when no response was received
	Cause  error // transport or decode error, if any
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return FailureMessage + ": " + e.Cause.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %d %s", FailureMessage, e.Status, http.StatusText(e.Status))
	}
	return FailureMessage
}

func (e *RequestError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrRequestFailure.
func (e *RequestError) Is(target error) bool { return target == ErrRequestFailure }

// NotImplemented returns the error used by proxy methods without a directive.
func NotImplemented(method string) error {
	return fmt.Errorf("%s: %w", method, ErrNotImplemented)
}
