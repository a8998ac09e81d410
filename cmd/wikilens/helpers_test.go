package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/wikilens/internal/model"
	"github.com/nao1215/wikilens/internal/report"
	"github.com/nao1215/wikilens/internal/snapshot"
)

// testPages returns three published pages; "docs/hidden" is not in the
// navigation and "/docs/missing" is a broken link, so the score is 85.
func testPages() *model.PageExportData {
	return model.NewPageExportData([]model.Page{
		{ID: "1", Path: "home", Title: "Home", Locale: "en", IsPublished: true},
		{ID: "2", Path: "docs/install", Title: "Install", Locale: "en", IsPublished: true},
		{ID: "3", Path: "docs/hidden", Title: "Hidden", Locale: "en", IsPublished: true},
	}, "2026-05-01T00:00:00Z", "test")
}

func testNavigation() *model.NavigationExportData {
	return &model.NavigationExportData{
		Tree: []model.NavigationTree{{
			Locale: "en",
			Items: []model.NavigationItem{
				{ID: "n1", Kind: model.NavigationKindLink, Label: "Home", Target: "/home"},
				{ID: "n2", Kind: model.NavigationKindLink, Label: "Install", Target: "/docs/install"},
				{ID: "n3", Kind: model.NavigationKindLink, Label: "Missing", Target: "/docs/missing"},
			},
		}},
		ExportedAt: "2026-05-01T00:00:00Z",
	}
}

// writeJSONFile saves v below dir and returns the file path.
func writeJSONFile(t *testing.T, dir, name string, v any) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := snapshot.Save(path, v); err != nil {
		t.Fatalf("Save(%s) error = %v", name, err)
	}
	return path
}

// writeSnapshotDir writes pages.json and navigation.json into a new
// directory named name and returns its path.
func writeSnapshotDir(t *testing.T, parent, name string, pages *model.PageExportData, nav *model.NavigationExportData) string {
	t.Helper()

	dir := filepath.Join(parent, name)
	writeJSONFile(t, dir, snapshot.PagesFileName, pages)
	writeJSONFile(t, dir, snapshot.NavigationFileName, nav)
	return dir
}

// writeConfig writes a configuration file and returns its path. Tests pass
// it explicitly so that a .wikilens in the home directory has no effect.
func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "wikilens.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

// decodeReport parses a JSON report.
func decodeReport(t *testing.T, data string) *report.JSONReport {
	t.Helper()

	var r report.JSONReport
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		t.Fatalf("invalid JSON report: %v\n%s", err, data)
	}
	return &r
}
