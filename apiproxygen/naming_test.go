package apiproxygen

import "testing"

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"SampleService", "sample_service"},
		{"HTTPClient", "http_client"},
		{"OrgAPI", "org_api"},
		{"V2Service", "v2_service"},
		{"Catalog", "catalog"},
		{"already_snake", "already_snake"},
	}
	for _, tt := range tests {
		if got := snakeCase(tt.in); got != tt.want {
			t.Errorf("snakeCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScope(t *testing.T) {
	reserved := func(s string) bool { return s == "uuid" || s == "apiproxy" }
	s := newScope(reserved, "p")

	if got := s.name("id"); got != "id" {
		t.Errorf("name(id) = %q", got)
	}
	if got := s.name("id"); got != "id_" {
		t.Errorf("second name(id) = %q", got)
	}
	if got := s.name("uuid"); got != "uuid_" {
		t.Errorf("name(uuid) = %q", got)
	}
	if got := s.name("p"); got != "p_" {
		t.Errorf("name(p) = %q", got)
	}
	if got := s.name("type"); got != "arg" {
		t.Errorf("name(type) = %q", got)
	}
}
