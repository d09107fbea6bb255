package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestColoredWithoutColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	orig := Version
	defer func() { Version = orig }()

	for in, want := range map[string]string{
		"0.1.0-dev":            "0.1.0-dev",
		"1.2.3":                "1.2.3",
		"1.2.3-rc.1+build.123": "1.2.3-rc.1+build.123",
		"nightly":              "nightly",
	} {
		Version = in
		if got := Colored(); got != want {
			t.Errorf("Colored(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLongOptionalFields(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = "", ""
	if got := Long(); strings.Contains(got, "commit") || !strings.HasPrefix(got, "wgslcst ") {
		t.Errorf("Long() = %q", got)
	}

	GitCommit, BuildDate = "abc123", "2024-01-15"
	got := Long()
	if !strings.Contains(got, "commit: abc123") || !strings.Contains(got, "built:  2024-01-15") {
		t.Errorf("Long() = %q", got)
	}
}
