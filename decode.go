package apiproxy

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errEmptyBody = errors.New("response body is empty or null")

// Decode unmarshals a successful outcome's JSON body into T.
//
// Non-2xx outcomes, empty bodies, a literal null and malformed JSON all fail
// with a *RequestError and the zero value of T; the status is kept on the
// error.
func Decode[T any](o Outcome) (T, error) {
	var zero T
	if !o.Success() {
		return zero, &RequestError{Status: o.Status}
	}
	body := bytes.TrimSpace(o.Body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return zero, &RequestError{Status: o.Status, Cause: errEmptyBody}
	}
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return zero, &RequestError{Status: o.Status, Cause: err}
	}
	return v, nil
}
