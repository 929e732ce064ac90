package buildinfo

import (
	"strings"
	"testing"
)

func TestShortPrefersLdflags(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v1.2.3"
	if got := Short(); got != "v1.2.3" {
		t.Errorf("Short() = %q, want v1.2.3", got)
	}
}

func TestTemplate(t *testing.T) {
	old := Commit
	defer func() { Commit = old }()

	Commit = "abc123"
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(tmpl, "commit: abc123\n") {
		t.Errorf("Template() missing commit: %q", tmpl)
	}
	if !strings.Contains(String(), "commit: abc123") {
		t.Errorf("String() missing commit: %q", String())
	}
}
