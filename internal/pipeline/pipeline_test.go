package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"
)

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order", func(t *testing.T) {
		t.Parallel()

		var log []string
		p := New()
		p.AddStep(&recordingStep{name: "first", log: &log})
		p.AddSteps(&recordingStep{name: "second", log: &log}, &recordingStep{name: "third", log: &log})

		job := NewJob("src", "main")
		if err := p.Execute(context.Background(), job); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if want := []string{"first", "second", "third"}; !slices.Equal(log, want) {
			t.Errorf("executed %v, want %v", log, want)
		}
		if job.Report.Error != "" {
			t.Errorf("report error = %q, want empty", job.Report.Error)
		}
	})

	t.Run("stops on first error and records it", func(t *testing.T) {
		t.Parallel()

		var log []string
		boom := errors.New("boom")
		p := New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		p.AddSteps(
			&recordingStep{name: "first", log: &log},
			&recordingStep{name: "failing", log: &log, err: boom},
			&recordingStep{name: "never", log: &log},
		)

		job := NewJob("src", "main")
		err := p.Execute(context.Background(), job)
		if !errors.Is(err, boom) {
			t.Fatalf("Execute() error = %v, want boom", err)
		}
		if want := []string{"first", "failing"}; !slices.Equal(log, want) {
			t.Errorf("executed %v, want %v", log, want)
		}
		if job.Report.Error != "boom" {
			t.Errorf("report error = %q, want boom", job.Report.Error)
		}
		if !job.Report.Failed() {
			t.Error("expected report to be marked failed")
		}
	})

	t.Run("respects cancellation", func(t *testing.T) {
		t.Parallel()

		var log []string
		p := New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		p.AddStep(&recordingStep{name: "never", log: &log})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		job := NewJob("src", "main")
		if err := p.Execute(ctx, job); !errors.Is(err, context.Canceled) {
			t.Fatalf("Execute() error = %v, want context.Canceled", err)
		}
		if len(log) != 0 {
			t.Errorf("executed %v, want nothing", log)
		}
		if job.Report.Error == "" {
			t.Error("expected cancellation to be recorded")
		}
	})
}

func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	p := DefaultPipeline(nil)
	if p.StepCount() != 3 {
		t.Errorf("StepCount() = %d, want 3", p.StepCount())
	}
	if want := []string{"load", "analyze", "filter"}; !slices.Equal(p.StepNames(), want) {
		t.Errorf("StepNames() = %v, want %v", p.StepNames(), want)
	}

	withHistory := DefaultPipeline(nil, WithPipelineHistory(&fakeStore{}))
	if want := []string{"load", "analyze", "filter", "history"}; !slices.Equal(withHistory.StepNames(), want) {
		t.Errorf("StepNames() = %v, want %v", withHistory.StepNames(), want)
	}
}

func TestNewJob(t *testing.T) {
	t.Parallel()

	job := NewJob("sites/a", "alpha")
	if job.Report == nil {
		t.Fatal("NewJob() report is nil")
	}
	if job.Report.Source != "sites/a" || job.Report.Instance != "alpha" {
		t.Errorf("report = %+v", job.Report)
	}
}
