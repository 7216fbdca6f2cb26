package version

import "testing"

func TestString_ShortensCommit(t *testing.T) {
	oldVersion, oldCommit, oldBuild := Version, Commit, BuildTime
	defer func() { Version, Commit, BuildTime = oldVersion, oldCommit, oldBuild }()

	Version = "1.2.0"
	Commit = "0123456789abcdef"
	BuildTime = "2025-01-01T00:00:00Z"

	want := "1.2.0 (commit: 0123456, built: 2025-01-01T00:00:00Z)"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestString_KeepsShortCommit(t *testing.T) {
	oldCommit := Commit
	defer func() { Commit = oldCommit }()

	Commit = "abc"
	if got := shortCommit(); got != "abc" {
		t.Errorf("shortCommit() = %q, want %q", got, "abc")
	}
}
