package buildinfo

import (
	"strings"
	"testing"
)

func TestCacheScope(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	defer func() { Version, Commit = oldVersion, oldCommit }()

	Version, Commit = "v1.2.0", "0123456789abcdef0123"
	if got, want := CacheScope(), "v1.2.0+0123456789ab:"; got != want {
		t.Errorf("CacheScope() = %q, want %q", got, want)
	}

	Commit = "none"
	if got := CacheScope(); got != "v1.2.0+none:" {
		t.Errorf("CacheScope() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), Version) {
		t.Errorf("Template() = %q, missing version", Template())
	}
}
