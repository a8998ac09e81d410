package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/wikilens/internal/model"
)

// DefaultBatchConcurrency is the number of snapshot directories analyzed
// at once when no concurrency is configured.
const DefaultBatchConcurrency = 4

// BatchProcessor handles concurrent analysis of multiple snapshot directories.
// It uses errgroup to manage goroutines and respect concurrency limits.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each snapshot.
	pipelineFactory func() *Pipeline

	// instanceFunc derives the instance label of a snapshot directory.
	instanceFunc func(source string) string

	// concurrency is the maximum number of concurrent analyses.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed reports in input order.
	// Access is synchronized via mutex.
	results []*model.AnalysisReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithInstanceFunc sets how a snapshot directory maps to an instance label.
// By default the base name of the directory is used.
func WithInstanceFunc(fn func(source string) string) BatchOption {
	return func(b *BatchProcessor) {
		b.instanceFunc = fn
	}
}

// NewBatchProcessor creates a new BatchProcessor.
// The pipelineFactory function is called for each snapshot to create a
// fresh pipeline instance.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		instanceFunc:    defaultInstance,
		concurrency:     DefaultBatchConcurrency,
		results:         make([]*model.AnalysisReport, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

func defaultInstance(source string) string {
	return filepath.Base(filepath.Clean(source))
}

// ProcessBatch analyzes multiple snapshot directories concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// The returned slice has one report per source in input order; a source
// that failed has its error recorded in its report. The error return is
// only set when the batch was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, sources []string) ([]*model.AnalysisReport, error) {
	bp.logger.Info("starting batch analysis",
		"total_snapshots", len(sources),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain order
	bp.results = make([]*model.AnalysisReport, len(sources))

	err := bp.run(ctx, sources, func(report *model.AnalysisReport, index int) {
		bp.mu.Lock()
		bp.results[index] = report
		bp.mu.Unlock()
	})

	bp.logger.Info("batch analysis complete",
		"total_snapshots", len(sources),
		"elapsed", time.Since(startTime),
	)

	// Sources skipped after cancellation still get a report.
	for i, r := range bp.results {
		if r == nil {
			job := NewJob(sources[i], bp.instanceFunc(sources[i]))
			job.Report.Error = context.Canceled.Error()
			if err != nil {
				job.Report.Error = err.Error()
			}
			bp.results[i] = job.Report
		}
	}

	return bp.results, err
}

// ProcessBatchWithCallback analyzes multiple snapshot directories and calls
// callback for each completed analysis. This is useful for streaming results.
//
// The callback receives the report and the index of the source in the
// original slice. It is called from the goroutine that completed the
// analysis, so it must be safe for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	sources []string,
	callback func(report *model.AnalysisReport, index int),
) error {
	bp.logger.Info("starting batch analysis with callback",
		"total_snapshots", len(sources),
		"concurrency", bp.concurrency,
	)
	return bp.run(ctx, sources, callback)
}

func (bp *BatchProcessor) run(
	ctx context.Context,
	sources []string,
	callback func(report *model.AnalysisReport, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, source := range sources {
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Debug("analyzing snapshot",
				"source", source,
				"index", i+1,
				"total", len(sources),
			)

			job := NewJob(source, bp.instanceFunc(source))
			if err := bp.pipelineFactory().Execute(ctx, job); err != nil {
				// The error is recorded in the report; other snapshots continue.
				bp.logger.Warn("analysis failed",
					"source", source,
					"error", err,
				)
			}

			callback(job.Report, i)
			return nil
		})
	}

	return g.Wait()
}
