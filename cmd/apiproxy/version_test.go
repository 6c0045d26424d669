package main

import "testing"

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		module   string
		revision string
		want     string
	}{
		{"release install", "0.1.0\n", "v0.3.2", "", "v0.3.2"},
		{"release candidate", "0.1.0", "v0.4.0-rc.1", "", "v0.4.0-rc.1"},
		{"devel with revision", "0.1.0\n", "(devel)", "0123456789abcdef", "devel-0.1.0+0123456"},
		{"devel without revision", "0.1.0", "", "", "devel-0.1.0"},
		{"short revision ignored", "0.1.0", "(devel)", "abc", "devel-0.1.0"},
		{"pseudo-version", "0.1.0", "v0.0.0-20250101000000-abcdefabcdef", "abcdefabcdef00", "devel-0.1.0+abcdefa"},
		{"pseudo-version after tag", "0.1.0", "v0.1.1-0.20250101000000-abcdefabcdef", "", "devel-0.1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatVersion(tt.base, tt.module, tt.revision); got != tt.want {
				t.Errorf("formatVersion(%q, %q, %q) = %q, want %q", tt.base, tt.module, tt.revision, got, tt.want)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	if Version() == "" {
		t.Error("Version() is empty")
	}
}
