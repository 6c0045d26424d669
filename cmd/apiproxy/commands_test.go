package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	samplePkg  = "github.com/broady/apiproxy/apiproxygen/provider/testdata/sample"
	invalidPkg = "github.com/broady/apiproxy/apiproxygen/provider/testdata/invalid"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cli := &CLI{}
	parser, perr := newParser(cli, &out, &errOut)
	if perr != nil {
		t.Fatalf("newParser: %v", perr)
	}
	err = run(cli, parser, args)
	return out.String(), errOut.String(), err
}

func TestCheck_Diagnostics(t *testing.T) {
	stdout, stderr, err := runCLI(t, "check", invalidPkg)
	if err == nil || err.Error() != "9 diagnostics reported" {
		t.Fatalf("expected 9 diagnostics error, got %v", err)
	}
	if stdout != "" {
		t.Errorf("unexpected stdout %q", stdout)
	}

	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d diagnostic lines, want 9:\n%s", len(lines), stderr)
	}
	line := regexp.MustCompile(`^\S*api\.go:\d+:\d+: APIPROXY0[1-4]: .+\.$`)
	for _, l := range lines {
		if !line.MatchString(l) {
			t.Errorf("malformed diagnostic line %q", l)
		}
	}

	want := []string{
		`api.go:8:\d+: APIPROXY01: Invalid UrlTemplate: 'items/\{id'\.`,
		`api.go:11:\d+: APIPROXY02: Invalid parameter 'itemId' in UrlTemplate\.`,
		`api.go:20:\d+: APIPROXY03: Invalid return type '\(string, int, error\)'\.`,
		`api.go:29:\d+: APIPROXY04: Unsupported HTTP Verb 'POST'\.`,
	}
	for _, w := range want {
		if !regexp.MustCompile(w).MatchString(stderr) {
			t.Errorf("stderr does not match %q:\n%s", w, stderr)
		}
	}
}

func TestCheck_Valid(t *testing.T) {
	stdout, stderr, err := runCLI(t, "check", samplePkg)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, stderr)
	}
	if want := "✓ 2 interfaces, 6 methods (5 proxied)\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestCheck_InterfaceFilter(t *testing.T) {
	stdout, _, err := runCLI(t, "check", samplePkg, "-i", "Catalog")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if want := "✓ 1 interfaces, 1 methods (1 proxied)\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestGen_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	stdout, stderr, err := runCLI(t, "gen", samplePkg, "-o", dir, "--out-package", "sampleproxy")
	if err != nil {
		t.Fatalf("gen: %v\n%s", err, stderr)
	}
	if want := "✓ Wrote 2 files to " + dir + "\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if diff := cmp.Diff([]string{"catalog_proxy.go", "sample_service_proxy.go"}, names); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	content, err := os.ReadFile(filepath.Join(dir, "catalog_proxy.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "package sampleproxy") {
		t.Errorf("unexpected package clause:\n%s", content)
	}
}

func TestGen_DiagnosticsSuppressWrite(t *testing.T) {
	dir := t.TempDir()
	stdout, stderr, err := runCLI(t, "gen", invalidPkg, "-o", dir)
	if err == nil {
		t.Fatal("expected error")
	}
	if stdout != "" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, "APIPROXY04") {
		t.Errorf("expected diagnostics on stderr, got:\n%s", stderr)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files written, got %d", len(entries))
	}
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := runCLI(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "apiproxy ") {
		t.Errorf("stdout = %q", stdout)
	}
}
