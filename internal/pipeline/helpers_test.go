package pipeline

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nao1215/wikilens/internal/database"
	"github.com/nao1215/wikilens/internal/model"
	"github.com/nao1215/wikilens/internal/snapshot"
)

var fixedTime = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

// testPages returns three published pages; "docs/hidden" is not in the
// navigation returned by testNavigation and "/docs/missing" is a broken link.
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
				{ID: "n2", Kind: model.NavigationKindLink, Label: "Install", Target: "/docs/install", VisibilityGroups: []model.ID{"2"}},
				{ID: "n3", Kind: model.NavigationKindLink, Label: "Missing", Target: "/docs/missing"},
			},
		}},
		ExportedAt: "2026-05-01T00:00:00Z",
	}
}

// writeSnapshotDir writes a snapshot directory and returns its path.
func writeSnapshotDir(t *testing.T, name string, pages *model.PageExportData, nav *model.NavigationExportData) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), name)
	if pages != nil {
		if err := snapshot.Save(filepath.Join(dir, snapshot.PagesFileName), pages); err != nil {
			t.Fatalf("Save(pages) error = %v", err)
		}
	}
	if nav != nil {
		if err := snapshot.Save(filepath.Join(dir, snapshot.NavigationFileName), nav); err != nil {
			t.Fatalf("Save(navigation) error = %v", err)
		}
	}
	return dir
}

// fakeStore is an in-memory HistoryStore.
type fakeStore struct {
	mu        sync.Mutex
	snapshots []string
	runs      []*database.AnalysisRun
	err       error
}

func (f *fakeStore) SaveSnapshot(_ context.Context, instance, fingerprint string, _ model.Snapshot) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, false, f.err
	}
	key := instance + "/" + fingerprint
	for i, s := range f.snapshots {
		if s == key {
			return int64(i + 1), false, nil
		}
	}
	f.snapshots = append(f.snapshots, key)
	return int64(len(f.snapshots)), true, nil
}

func (f *fakeStore) SaveAnalysisRun(_ context.Context, run *database.AnalysisRun) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, run)
	if run.RunID == "" {
		return "generated-run-id", nil
	}
	return run.RunID, nil
}

// recordingStep records its name into a shared slice.
type recordingStep struct {
	name string
	log  *[]string
	err  error
}

func (s *recordingStep) Name() string { return s.name }

func (s *recordingStep) Do(_ context.Context, _ *Job) error {
	*s.log = append(*s.log, s.name)
	return s.err
}
