package analyzer

import "testing"

func TestNormalizePagePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"/EN/Foo/Bar", "foo/bar"},
		{"foo/bar", "foo/bar"},
		{"  /en/home  ", "home"},
		{"/home", "home"},
		{"en/home", "en/home"},
		{"/de/home", "de/home"},
		{"//double", "/double"},
		{"", ""},
		{"/", ""},
		{"docs/", "docs/"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got := NormalizePagePath(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePagePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	t.Run("idempotent on normalized paths", func(t *testing.T) {
		t.Parallel()
		for _, p := range []string{"foo/bar", "home", "de/home", ""} {
			if got := NormalizePagePath(NormalizePagePath(p)); got != NormalizePagePath(p) {
				t.Errorf("double normalization of %q changed the value to %q", p, got)
			}
		}
	})
}

func TestNormalizePathForLinkMatching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"/en/docs/setup/", "docs/setup"},
		{"/de/docs", "docs"},
		{"fr/home", "home"},
		{"/Docs/Setup", "docs/setup"},
		{"/eng/docs", "eng/docs"},
		{"/e1/docs", "e1/docs"},
		{"/", ""},
		{"/en/", ""},
		{"  /News/2024-01  ", "news/2024-01"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got := NormalizePathForLinkMatching(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePathForLinkMatching(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	t.Run("policies differ on non-English locale prefixes", func(t *testing.T) {
		t.Parallel()
		if NormalizePagePath("/de/docs") == NormalizePathForLinkMatching("/de/docs") {
			t.Error("expected the two normalizers to disagree on /de/docs")
		}
	})
}
