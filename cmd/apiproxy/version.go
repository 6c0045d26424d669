package main

import (
	_ "embed"
	"runtime/debug"
	"strings"

	"github.com/hashicorp/go-version"
)

//go:embed VERSION
var embeddedVersion string

// Version returns the version string.
//
// When installed via `go install ...@version`, returns the module version (e.g., "v0.1.0").
// For development builds, returns "devel-0.1.0+abc1234" with VCS revision if available.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return formatVersion(embeddedVersion, "", "")
	}
	var vcsRev string
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			vcsRev = s.Value
			break
		}
	}
	return formatVersion(embeddedVersion, info.Main.Version, vcsRev)
}

// formatVersion picks between the module version and the embedded base.
// The module version wins when it is a release; pseudo-versions and
// "(devel)" fall back to devel-<base>.
func formatVersion(base, module, revision string) string {
	base = strings.TrimSpace(base)
	if v, err := version.NewVersion(base); err == nil {
		base = v.String()
	}

	if mv, err := version.NewVersion(module); err == nil && !isPseudo(mv) {
		return mv.Original()
	}

	if len(revision) >= 7 {
		return "devel-" + base + "+" + revision[:7]
	}
	return "devel-" + base
}

// isPseudo reports whether v is a Go pseudo-version such as
// v0.0.0-20250101000000-abcdefabcdef.
func isPseudo(v *version.Version) bool {
	pre := v.Prerelease()
	if pre == "" {
		return false
	}
	parts := strings.Split(pre, ".")
	last := parts[len(parts)-1]
	if i := strings.LastIndex(last, "-"); i >= 0 {
		last = last[i+1:]
	}
	return len(last) == 12 && strings.Count(pre, "-") >= 1
}
