package main

import (
	"strings"
	"testing"
)

func TestCurrentBuild(t *testing.T) {
	t.Parallel()

	b := currentBuild()
	if b.Version == "" || b.Commit == "" || b.Date == "" || b.GoVersion == "" {
		t.Errorf("expected every field to be set, got %+v", b)
	}
	if getVersion() != b.Version {
		t.Errorf("getVersion() = %q, want %q", getVersion(), b.Version)
	}
}

func TestBuildInfoWithDefaults(t *testing.T) {
	t.Parallel()

	got := buildInfo{}.withDefaults()
	want := buildInfo{Version: "(devel)", Commit: "unknown", Date: "unknown"}
	if got != want {
		t.Errorf("withDefaults() = %+v, want %+v", got, want)
	}

	kept := buildInfo{Version: "v1.0.0", Commit: "abc1234", Date: "2026-01-01"}
	if got := kept.withDefaults(); got != kept {
		t.Errorf("withDefaults() changed set values: %+v", got)
	}
}

func TestShortRevision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{in: "0123456789abcdef", want: "0123456"},
		{in: "0123456", want: "0123456"},
		{in: "abc", want: "abc"},
	}
	for _, tt := range tests {
		if got := shortRevision(tt.in); got != tt.want {
			t.Errorf("shortRevision(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	t.Run("full", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, "version")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"wikilens version", "commit:", "built:", "go:"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("short", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, "version", "--short")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := strings.TrimSpace(out); got != getVersion() {
			t.Errorf("expected %q, got %q", getVersion(), got)
		}
	})
}
