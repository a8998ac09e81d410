package pipeline

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nao1215/wikilens/internal/model"
)

func quietBatch(opts ...BatchOption) *BatchProcessor {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	factory := func() *Pipeline {
		return DefaultPipeline([]Option{WithLogger(logger)})
	}
	return NewBatchProcessor(factory, append([]BatchOption{WithBatchLogger(logger)}, opts...)...)
}

func TestNewBatchProcessor(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })
		if bp.concurrency != DefaultBatchConcurrency {
			t.Errorf("concurrency = %d, want %d", bp.concurrency, DefaultBatchConcurrency)
		}
		if bp.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() }, WithConcurrency(0), WithConcurrency(-2))
		if bp.concurrency != DefaultBatchConcurrency {
			t.Errorf("concurrency = %d, want %d", bp.concurrency, DefaultBatchConcurrency)
		}
	})

	t.Run("custom concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() }, WithConcurrency(7))
		if bp.concurrency != 7 {
			t.Errorf("concurrency = %d, want 7", bp.concurrency)
		}
	})
}

func TestProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("keeps input order and records failures", func(t *testing.T) {
		t.Parallel()

		good := writeSnapshotDir(t, "alpha", testPages(), testNavigation())
		broken := writeSnapshotDir(t, "beta", testPages(), nil)
		other := writeSnapshotDir(t, "gamma", testPages(), testNavigation())

		reports, err := quietBatch(WithConcurrency(2)).ProcessBatch(context.Background(), []string{good, broken, other})
		if err != nil {
			t.Fatalf("ProcessBatch() error = %v", err)
		}
		if len(reports) != 3 {
			t.Fatalf("len = %d, want 3", len(reports))
		}

		for i, want := range []string{"alpha", "beta", "gamma"} {
			if reports[i].Instance != want {
				t.Errorf("reports[%d].Instance = %q, want %q", i, reports[i].Instance, want)
			}
		}
		if reports[0].Failed() || reports[2].Failed() {
			t.Error("expected valid snapshots to succeed")
		}
		if !reports[1].Failed() || reports[1].Error == "" {
			t.Errorf("reports[1] = %+v, want failure", reports[1])
		}
		if reports[0].Result.HealthScore.Score != 85 {
			t.Errorf("score = %d, want 85", reports[0].Result.HealthScore.Score)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		t.Parallel()

		reports, err := quietBatch().ProcessBatch(context.Background(), nil)
		if err != nil {
			t.Fatalf("ProcessBatch() error = %v", err)
		}
		if len(reports) != 0 {
			t.Errorf("len = %d, want 0", len(reports))
		}
	})

	t.Run("cancelled batch reports every source", func(t *testing.T) {
		t.Parallel()

		dir := writeSnapshotDir(t, "alpha", testPages(), testNavigation())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		reports, err := quietBatch().ProcessBatch(ctx, []string{dir, dir})
		if err == nil {
			t.Error("ProcessBatch() expected cancellation error")
		}
		if len(reports) != 2 {
			t.Fatalf("len = %d, want 2", len(reports))
		}
		for i, r := range reports {
			if r == nil || !r.Failed() {
				t.Errorf("reports[%d] = %+v, want failed report", i, r)
			}
		}
	})

	t.Run("custom instance names", func(t *testing.T) {
		t.Parallel()

		dir := writeSnapshotDir(t, "alpha", testPages(), testNavigation())
		bp := quietBatch(WithInstanceFunc(func(source string) string {
			return "wiki-" + filepath.Base(source)
		}))

		reports, err := bp.ProcessBatch(context.Background(), []string{dir})
		if err != nil {
			t.Fatalf("ProcessBatch() error = %v", err)
		}
		if reports[0].Instance != "wiki-alpha" {
			t.Errorf("Instance = %q, want wiki-alpha", reports[0].Instance)
		}
	})
}

func TestProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	dirs := []string{
		writeSnapshotDir(t, "a", testPages(), testNavigation()),
		writeSnapshotDir(t, "b", testPages(), testNavigation()),
		writeSnapshotDir(t, "c", testPages(), testNavigation()),
	}

	var mu sync.Mutex
	seen := make(map[int]string)
	err := quietBatch(WithConcurrency(3)).ProcessBatchWithCallback(context.Background(), dirs, func(report *model.AnalysisReport, index int) {
		mu.Lock()
		defer mu.Unlock()
		seen[index] = report.Instance
	})
	if err != nil {
		t.Fatalf("ProcessBatchWithCallback() error = %v", err)
	}

	if len(seen) != 3 || seen[0] != "a" || seen[1] != "b" || seen[2] != "c" {
		t.Errorf("callback saw %v", seen)
	}
}
