package buildinfo

import (
	"strings"
	"testing"
)

func TestSet(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	defer func() { Version, Commit, Date = oldV, oldC, oldD }()

	Set("v1.0.0", "abc123", "")
	if Version != "v1.0.0" || Commit != "abc123" {
		t.Errorf("Set did not apply: %s %s", Version, Commit)
	}
	if Date != oldD {
		t.Errorf("empty date should be ignored, got %q", Date)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(String(), "commit: ") {
		t.Errorf("String() = %q", String())
	}
}
