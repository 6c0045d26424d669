package apiproxy_test

import (
	"errors"
	"testing"

	"github.com/broady/apiproxy"
	"github.com/broady/apiproxy/internal/urltemplate"
)

func TestRoute_Plan(t *testing.T) {
	r, err := apiproxy.NewRoute("Items.Get", apiproxy.VerbGet,
		"organizations/{organizationId}/items/{itemId}", "ctx", "organizationId", "itemId")
	if err != nil {
		t.Fatalf("NewRoute: %v", err)
	}

	plan := r.Plan(nil, "acme corp", 12)
	if plan.URI != "organizations/acme%20corp/items/12" {
		t.Errorf("unexpected URI %q", plan.URI)
	}
	if plan.Verb != apiproxy.VerbGet {
		t.Errorf("unexpected verb %q", plan.Verb)
	}
	if plan.Method != "Items.Get" {
		t.Errorf("unexpected method %q", plan.Method)
	}
}

func TestNewRoute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		verb     apiproxy.Verb
		template string
		params   []string
		want     error
	}{
		{"unclosed", apiproxy.VerbGet, "organizations/{organizationId", []string{"organizationId"}, urltemplate.ErrInvalidTemplate},
		{"unbound", apiproxy.VerbGet, "organizations/{organizationId}", []string{"id"}, urltemplate.ErrInvalidParameterBinding},
		{"verb", "POST", "organizations", nil, apiproxy.ErrUnsupportedVerb},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := apiproxy.NewRoute("S.M", tt.verb, tt.template, tt.params...)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestMustRoute_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	apiproxy.MustRoute("S.M", apiproxy.VerbGet, "{missing}")
}
