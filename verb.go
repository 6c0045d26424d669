package apiproxy

import (
	"fmt"
	"net/http"
	"strings"
)

// Verb is an HTTP method a proxy method can be bound to.
// Only GET is supported.
type Verb string

const VerbGet Verb = http.MethodGet

// ParseVerb parses a verb case-insensitively.
// Well-formed but unsupported verbs return the upper-cased verb along with an
// error wrapping ErrUnsupportedVerb.
func ParseVerb(s string) (Verb, error) {
	v := Verb(strings.ToUpper(strings.TrimSpace(s)))
	if v == VerbGet {
		return v, nil
	}
	return v, fmt.Errorf("%w: %q", ErrUnsupportedVerb, s)
}

func (v Verb) String() string { return string(v) }
