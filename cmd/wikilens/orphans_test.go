package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/wikilens/internal/model"
	"github.com/nao1215/wikilens/internal/report"
	"github.com/nao1215/wikilens/internal/snapshot"
)

// renderedPages links home to "a" with a relative link and to "b" with an
// absolute link to the public site.
func renderedPages() *model.PageExportData {
	return model.NewPageExportData([]model.Page{
		{
			ID: "1", Path: "home", Title: "Home", Locale: "en", IsPublished: true,
			Render: `<p><a href="/a">A</a> <a href="https://docs.example.com/b">B</a></p>`,
		},
		{ID: "2", Path: "a", Title: "A", Locale: "en", IsPublished: true},
		{ID: "3", Path: "b", Title: "B", Locale: "en", IsPublished: false},
	}, "", "")
}

func TestNewOrphansCmd(t *testing.T) {
	t.Parallel()

	cmd := NewOrphansCmd()
	if cmd.Use != "orphans" {
		t.Errorf("expected use 'orphans', got %q", cmd.Use)
	}
	for _, name := range []string{"pages", "links", "from-render", "site-url", "save-links", "instance", "config", "json", "markdown", "output"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
}

func TestOrphansCmd_InvalidOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "defaults: {}\n")
	pages := writeJSONFile(t, dir, "pages.json", renderedPages())

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "no pages", args: []string{"--from-render"}, wantErr: ErrNoPagesFile},
		{name: "no link source", args: []string{"-p", pages}, wantErr: ErrNoLinkSource},
		{name: "both link sources", args: []string{"-p", pages, "-l", "links.json", "--from-render"}, wantErr: ErrConflictingLinkSources},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := execute(t, append([]string{"orphans", "-c", cfgPath}, tt.args...)...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("save links without render", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "orphans", "-c", cfgPath, "-p", pages, "-l", "links.json", "--save-links", "out.json")
		if err == nil {
			t.Error("expected error")
		}
	})
}

func TestOrphansCmd_FromRender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "defaults: {}\n")
	pages := writeJSONFile(t, dir, "pages.json", renderedPages())

	tests := []struct {
		name      string
		args      []string
		wantPaths []string
	}{
		{name: "absolute links are external", wantPaths: []string{"b"}},
		{name: "site url makes them internal", args: []string{"--site-url", "https://docs.example.com"}, wantPaths: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			args := append([]string{"orphans", "-c", cfgPath, "-p", pages, "--from-render", "--json"}, tt.args...)
			out, err := execute(t, args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			r := decodeReport(t, out)
			if r.Kind != report.KindOrphans || r.Orphans == nil {
				t.Fatalf("expected orphan report, got kind %q", r.Kind)
			}
			if r.Orphans.TotalPages != 3 {
				t.Errorf("expected 3 pages, got %d", r.Orphans.TotalPages)
			}
			if len(r.Orphans.OrphanedPages) != len(tt.wantPaths) {
				t.Fatalf("expected %d orphans, got %+v", len(tt.wantPaths), r.Orphans.OrphanedPages)
			}
			for i, p := range tt.wantPaths {
				if got := r.Orphans.OrphanedPages[i].Path; got != p {
					t.Errorf("orphan %d: expected %q, got %q", i, p, got)
				}
			}
		})
	}

	t.Run("site url from config", func(t *testing.T) {
		t.Parallel()
		instanceCfg := writeConfig(t, t.TempDir(), "instances:\n  prod:\n    siteUrl: https://docs.example.com\n")
		out, err := execute(t, "orphans", "-c", instanceCfg, "-i", "prod", "-p", pages, "--from-render", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n := len(decodeReport(t, out).Orphans.OrphanedPages); n != 0 {
			t.Errorf("expected no orphans, got %d", n)
		}
	})

	t.Run("invalid site url", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "orphans", "-c", cfgPath, "-p", pages, "--from-render", "--site-url", "not a url")
		if err == nil {
			t.Error("expected error for invalid site URL")
		}
	})

	t.Run("saves extracted links", func(t *testing.T) {
		t.Parallel()
		linksPath := filepath.Join(t.TempDir(), "links.json")
		if _, err := execute(t, "orphans", "-c", cfgPath, "-p", pages, "--from-render", "--save-links", linksPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		items, err := snapshot.LoadLinks(linksPath)
		if err != nil {
			t.Fatalf("saved links do not load: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("expected 3 link items, got %d", len(items))
		}
		if got := items[0].Links; len(got) != 2 || got[0] != "/a" {
			t.Errorf("unexpected links of home: %v", got)
		}
	})
}

func TestOrphansCmd_LinksFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "defaults: {}\n")
	pages := writeJSONFile(t, dir, "pages.json", renderedPages())
	links := writeJSONFile(t, dir, "links.json", []model.PageLinkItem{
		{ID: "1", Path: "home", Title: "Home", Links: []string{"/en/a#intro", "mailto:team@example.com"}},
		{ID: "2", Path: "a", Title: "A", Links: []string{}},
	})

	out, err := execute(t, "orphans", "-c", cfgPath, "-p", pages, "-l", links)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "WIKILENS ORPHAN REPORT") {
		t.Errorf("expected text report, got:\n%s", out)
	}
	if !strings.Contains(out, "Orphaned Pages: 1") || !strings.Contains(out, `/b "B"`) {
		t.Errorf("expected orphan /b in report, got:\n%s", out)
	}

	t.Run("invalid links file", func(t *testing.T) {
		t.Parallel()
		bad := filepath.Join(t.TempDir(), "links.json")
		if err := os.WriteFile(bad, []byte(`{"not": "an array"}`), 0600); err != nil {
			t.Fatal(err)
		}
		_, err := execute(t, "orphans", "-c", cfgPath, "-p", pages, "-l", bad)
		if !errors.Is(err, snapshot.ErrInvalidSnapshot) {
			t.Errorf("expected ErrInvalidSnapshot, got %v", err)
		}
	})
}
