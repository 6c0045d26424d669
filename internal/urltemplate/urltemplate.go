// Package urltemplate tokenizes URL templates and binds their placeholders
// to method parameters.
//
// A template is a string of verbatim text and {name} placeholders:
//
//	organizations/{organizationId}/items/{itemId}
//
// Tokenizing is strict: every { must be closed by a } before the next {, and a
// } must close an open placeholder. Empty runs are dropped, so "{}" yields no
// tokens at all.
package urltemplate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTemplate is wrapped by every tokenizer error.
var ErrInvalidTemplate = errors.New("invalid url template")

// Kind classifies a Token.
type Kind int

const (
	Verbatim Kind = iota
	Parameter
)

func (k Kind) String() string {
	switch k {
	case Verbatim:
		return "verbatim"
	case Parameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// Token is one unit of a parsed template.
type Token struct {
	Kind  Kind
	Value string
}

// String returns the template text of the token.
// Parameter tokens are wrapped back in braces.
func (t Token) String() string {
	if t.Kind == Parameter {
		return "{" + t.Value + "}"
	}
	return t.Value
}

// Error describes a malformed template.
type Error struct {
	Template string
	Offset   int // byte offset of the offending character, or len(Template) at end of input
	Reason   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid url template %q at offset %d: %s", e.Template, e.Offset, e.Reason)
}

func (e *Error) Unwrap() error { return ErrInvalidTemplate }

// Tokenize splits template into verbatim and parameter tokens.
// It is a pure function: the same input always yields the same tokens.
func Tokenize(template string) ([]Token, error) {
	var tokens []Token
	kind := Verbatim
	start := 0

	// closeRun ends the current run, which must be of kind want.
	closeRun := func(want Kind, end int) bool {
		if kind != want {
			return false
		}
		if end > start {
			tokens = append(tokens, Token{Kind: want, Value: template[start:end]})
		}
		return true
	}

	for i := 0; i < len(template); i++ {
		switch template[i] {
		case '{':
			if !closeRun(Verbatim, i) {
				return nil, &Error{Template: template, Offset: i, Reason: "unexpected '{' inside a placeholder"}
			}
			kind = Parameter
			start = i + 1
		case '}':
			if !closeRun(Parameter, i) {
				return nil, &Error{Template: template, Offset: i, Reason: "unexpected '}' without an open placeholder"}
			}
			kind = Verbatim
			start = i + 1
		}
	}

	if kind == Parameter {
		return nil, &Error{Template: template, Offset: len(template), Reason: "unclosed placeholder"}
	}
	closeRun(Verbatim, len(template))

	return tokens, nil
}

// Reconstruct joins tokens back into template text.
// For a valid template this equals the input with empty placeholders removed.
func Reconstruct(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.String())
	}
	return b.String()
}

