package apiproxygen

import (
	"go/token"
	"strings"
	"unicode"
)

// snakeCase converts a Go identifier to snake_case, keeping acronyms
// together: "SampleService" -> "sample_service", "HTTPClient" -> "http_client".
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// lowerFirst lower-cases the leading rune of s.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// scope hands out identifiers that do not collide with each other or with
// a set of reserved names.
type scope struct {
	used     map[string]bool
	reserved func(string) bool
}

func newScope(reserved func(string) bool, names ...string) *scope {
	s := &scope{used: make(map[string]bool), reserved: reserved}
	for _, n := range names {
		s.used[n] = true
	}
	return s
}

// name returns want, or want with underscores appended until it is free.
func (s *scope) name(want string) string {
	if want == "" || want == "_" || token.IsKeyword(want) {
		want = "arg"
	}
	for s.used[want] || (s.reserved != nil && s.reserved(want)) {
		want += "_"
	}
	s.used[want] = true
	return want
}
