package urltemplate

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []Token
	}{
		{
			name:     "two placeholders",
			template: "organizations/{organizationId}/items/{itemId}",
			want: []Token{
				{Verbatim, "organizations/"},
				{Parameter, "organizationId"},
				{Verbatim, "/items/"},
				{Parameter, "itemId"},
			},
		},
		{
			name:     "verbatim only",
			template: "organizations/ids",
			want:     []Token{{Verbatim, "organizations/ids"}},
		},
		{
			name:     "placeholder only",
			template: "{organizationId}",
			want:     []Token{{Parameter, "organizationId"}},
		},
		{
			name:     "empty placeholder is dropped",
			template: "{}",
			want:     nil,
		},
		{
			name:     "empty template",
			template: "",
			want:     nil,
		},
		{
			name:     "adjacent placeholders",
			template: "{a}{b}",
			want:     []Token{{Parameter, "a"}, {Parameter, "b"}},
		},
		{
			name:     "whitespace kept in token",
			template: "x/{ id }",
			want:     []Token{{Verbatim, "x/"}, {Parameter, " id "}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.template)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.template, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.template, diff)
			}
		})
	}
}

func TestTokenize_Invalid(t *testing.T) {
	tests := []struct {
		template   string
		wantOffset int
		wantReason string
	}{
		{"organizations/{organizationId", 29, "unclosed"},
		{"{", 1, "unclosed"},
		{"organizations/}", 14, "without an open placeholder"},
		{"}", 0, "without an open placeholder"},
		{"{a{b}}", 2, "inside a placeholder"},
		{"{a}}", 3, "without an open placeholder"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			_, err := Tokenize(tt.template)
			if err == nil {
				t.Fatalf("Tokenize(%q) expected error", tt.template)
			}
			if !errors.Is(err, ErrInvalidTemplate) {
				t.Errorf("expected ErrInvalidTemplate, got %v", err)
			}
			var tErr *Error
			if !errors.As(err, &tErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if tErr.Offset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", tErr.Offset, tt.wantOffset)
			}
			if !strings.Contains(tErr.Reason, tt.wantReason) {
				t.Errorf("reason = %q, want it to contain %q", tErr.Reason, tt.wantReason)
			}
		})
	}
}

func TestTokenize_RoundTrip(t *testing.T) {
	templates := []string{
		"organizations/{organizationId}/items/{itemId}",
		"a/{b}/c",
		"{x}",
		"plain/path",
		"{a}{b}/{c}",
		"v1/{ spaced }/tail/",
	}
	for _, tmpl := range templates {
		tokens, err := Tokenize(tmpl)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", tmpl, err)
		}
		if got := Reconstruct(tokens); got != tmpl {
			t.Errorf("Reconstruct(Tokenize(%q)) = %q", tmpl, got)
		}
	}

	// Empty placeholders are elided.
	tokens, err := Tokenize("a/{}/b")
	if err != nil {
		t.Fatal(err)
	}
	if got := Reconstruct(tokens); got != "a//b" {
		t.Errorf("Reconstruct = %q, want %q", got, "a//b")
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	const tmpl = "organizations/{organizationId}/items/{itemId}"
	first, err := Tokenize(tmpl)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := Tokenize(tmpl)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

