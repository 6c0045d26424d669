package urltemplate

import (
	"encoding"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// ErrInvalidParameterBinding is wrapped by every binder error.
var ErrInvalidParameterBinding = errors.New("invalid parameter binding")

// BindError reports a placeholder that no declared parameter can satisfy.
type BindError struct {
	Placeholder string
	Candidates  []string // set when the name matched several parameters case-insensitively
}

func (e *BindError) Error() string {
	if len(e.Candidates) > 0 {
		return fmt.Sprintf("placeholder %q is ambiguous: matches parameters %s",
			e.Placeholder, strings.Join(e.Candidates, ", "))
	}
	return fmt.Sprintf("placeholder %q does not match any parameter", e.Placeholder)
}

func (e *BindError) Unwrap() error { return ErrInvalidParameterBinding }

// Segment is one piece of a bound template: either verbatim text, or the
// index of the parameter whose value is substituted.
type Segment struct {
	Text  string
	Param int // -1 for verbatim segments
	Name  string
}

// Binding is a template whose placeholders have been resolved to parameter
// positions. It is immutable and safe for concurrent use.
type Binding struct {
	segments []Segment
}

// Bind resolves every parameter token against the declared parameter names.
//
// Matching is case-insensitive. An exact-case match always wins; otherwise the
// placeholder must match exactly one parameter ignoring case. Surrounding
// whitespace inside the braces is ignored.
func Bind(tokens []Token, params []string) (*Binding, error) {
	b := &Binding{}
	for _, t := range tokens {
		if t.Kind == Verbatim {
			b.segments = append(b.segments, Segment{Text: t.Value, Param: -1})
			continue
		}
		name := strings.TrimSpace(t.Value)
		idx, err := lookup(name, params)
		if err != nil {
			return nil, err
		}
		b.segments = append(b.segments, Segment{Param: idx, Name: params[idx]})
	}
	return b, nil
}

func lookup(name string, params []string) (int, error) {
	if name == "" {
		return -1, &BindError{Placeholder: name}
	}
	found := -1
	var candidates []string
	for i, p := range params {
		if p == name {
			return i, nil
		}
		if strings.EqualFold(p, name) {
			found = i
			candidates = append(candidates, p)
		}
	}
	switch len(candidates) {
	case 0:
		return -1, &BindError{Placeholder: name}
	case 1:
		return found, nil
	default:
		return -1, &BindError{Placeholder: name, Candidates: candidates}
	}
}

// Segments returns a copy of the bound segments.
func (b *Binding) Segments() []Segment {
	out := make([]Segment, len(b.segments))
	copy(out, b.segments)
	return out
}

// Expand builds the request path from args, which are positional and must
// match the parameter list given to Bind. Values are percent-encoded as path
// segments.
func (b *Binding) Expand(args ...any) string {
	var sb strings.Builder
	for _, s := range b.segments {
		if s.Param < 0 {
			sb.WriteString(s.Text)
			continue
		}
		var v any
		if s.Param < len(args) {
			v = args[s.Param]
		}
		sb.WriteString(escapeSegment(FormatValue(v)))
	}
	return sb.String()
}

// escapeSegment percent-encodes s as a path segment. The dot segments "."
// and ".." are encoded too, so reference resolution cannot remove them.
func escapeSegment(s string) string {
	switch s {
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	}
	return url.PathEscape(s)
}

// FormatValue converts a parameter value to its textual form.
// A nil pointer formats as the empty string.
func FormatValue(v any) string {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ""
	}
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case encoding.TextMarshaler:
		text, err := v.MarshalText()
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(text)
	case fmt.Stringer:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(v).Int(), 10)
	case uint, uint8, uint16, uint32, uint64, uintptr:
		return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return FormatValue(rv.Elem().Interface())
	}
	// Named types over basic kinds, e.g. type OrgID string.
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	}
	return fmt.Sprint(v)
}
