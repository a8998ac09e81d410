package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/wikilens/internal/model"
)

// Job carries one snapshot through the pipeline.
// Steps read the fields filled by earlier steps and fill their own.
type Job struct {
	// Source names where the snapshot comes from. In batch mode it is the
	// snapshot directory.
	Source string

	// Instance labels the wiki instance in reports and in the history.
	Instance string

	// Snapshot is filled by the load step.
	Snapshot model.Snapshot

	// SnapshotID is the history id of the snapshot, once recorded.
	SnapshotID int64

	// Report accumulates the analysis output.
	Report *model.AnalysisReport
}

// NewJob creates a job with an empty report for source.
func NewJob(source, instance string) *Job {
	return &Job{
		Source:   source,
		Instance: instance,
		Report: &model.AnalysisReport{
			Instance: instance,
			Source:   source,
		},
	}
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the job as
// modified by the previous steps.
type Step interface {
	// Do executes the pipeline step.
	// Returns an error if the step fails; the pipeline then records the
	// error in the report and stops.
	Do(ctx context.Context, job *Job) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// Cancellation is checked before each step. The first failing step stops
// the pipeline; its error is recorded in the job report and returned.
func (p *Pipeline) Execute(ctx context.Context, job *Job) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			job.Report.Error = ctx.Err().Error()
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"source", job.Source,
		)

		if err := step.Do(ctx, job); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"source", job.Source,
				"error", err,
			)
			job.Report.Error = err.Error()
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"source", job.Source,
		)
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
