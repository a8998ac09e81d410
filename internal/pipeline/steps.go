package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/wikilens/internal/analyzer"
	"github.com/nao1215/wikilens/internal/database"
	"github.com/nao1215/wikilens/internal/model"
	"github.com/nao1215/wikilens/internal/snapshot"
)

// ErrNoSnapshot is returned by steps that need a loaded snapshot half
// that the job does not have.
var ErrNoSnapshot = errors.New("snapshot is not loaded")

// LoadStep reads and validates the exports of a job.
// With explicit file paths it loads those files; otherwise it loads
// pages.json and navigation.json from the job source directory.
type LoadStep struct {
	pagesFile      string
	navigationFile string
}

// LoadStepOption configures a LoadStep.
type LoadStepOption func(*LoadStep)

// WithFiles loads the given export files instead of the job directory.
func WithFiles(pagesFile, navigationFile string) LoadStepOption {
	return func(s *LoadStep) {
		s.pagesFile = pagesFile
		s.navigationFile = navigationFile
	}
}

// NewLoadStep creates a LoadStep.
func NewLoadStep(opts ...LoadStepOption) *LoadStep {
	s := &LoadStep{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do loads the snapshot into the job.
func (s *LoadStep) Do(_ context.Context, job *Job) error {
	var snap model.Snapshot
	var err error
	if s.pagesFile != "" || s.navigationFile != "" {
		snap, err = snapshot.LoadSnapshot(s.pagesFile, s.navigationFile)
	} else {
		snap, err = snapshot.LoadDir(job.Source)
	}
	if err != nil {
		return err
	}

	job.Snapshot = snap
	if snap.Pages != nil {
		job.Report.Pages = snap.Pages.Summary
	}
	return nil
}

// AnalyzeStep runs the structural analysis and the visibility breakdown.
type AnalyzeStep struct {
	opts []analyzer.Option
}

// NewAnalyzeStep creates an AnalyzeStep. The options are passed to the analyzer.
func NewAnalyzeStep(opts ...analyzer.Option) *AnalyzeStep {
	return &AnalyzeStep{opts: opts}
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do analyzes the job snapshot.
func (s *AnalyzeStep) Do(_ context.Context, job *Job) error {
	if job.Snapshot.Pages == nil || job.Snapshot.Navigation == nil {
		return fmt.Errorf("%w: analysis needs both pages and navigation", ErrNoSnapshot)
	}

	job.Report.Result = analyzer.Analyze(job.Snapshot.Pages, job.Snapshot.Navigation, s.opts...)
	job.Report.Visibility = analyzer.AnalyzeVisibility(job.Snapshot.Pages, job.Snapshot.Navigation)
	return nil
}

// FilterStep drops findings on ignored paths and rescores the result.
type FilterStep struct {
	patterns []string
}

// NewFilterStep creates a FilterStep for doublestar patterns.
func NewFilterStep(patterns []string) *FilterStep {
	return &FilterStep{patterns: patterns}
}

// Name returns the step name.
func (s *FilterStep) Name() string {
	return "filter"
}

// Do replaces the job result with the filtered result.
func (s *FilterStep) Do(_ context.Context, job *Job) error {
	if job.Report.Result == nil {
		return fmt.Errorf("%w: nothing to filter", ErrNoSnapshot)
	}
	if len(s.patterns) == 0 {
		return nil
	}

	filtered, err := analyzer.FilterResult(job.Report.Result, s.patterns)
	if err != nil {
		return err
	}
	job.Report.Result = filtered
	return nil
}

// HistoryStore records snapshots and analysis runs.
// *database.HistoryDB implements it.
type HistoryStore interface {
	SaveSnapshot(ctx context.Context, instance, fingerprint string, snap model.Snapshot) (int64, bool, error)
	SaveAnalysisRun(ctx context.Context, run *database.AnalysisRun) (string, error)
}

// HistoryStep saves the snapshot and the analysis run of a job.
type HistoryStep struct {
	store  HistoryStore
	logger *slog.Logger
}

// HistoryStepOption configures a HistoryStep.
type HistoryStepOption func(*HistoryStep)

// WithHistoryLogger sets the logger of a HistoryStep.
func WithHistoryLogger(logger *slog.Logger) HistoryStepOption {
	return func(s *HistoryStep) {
		s.logger = logger
	}
}

// NewHistoryStep creates a HistoryStep writing to store.
func NewHistoryStep(store HistoryStore, opts ...HistoryStepOption) *HistoryStep {
	s := &HistoryStep{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Name returns the step name.
func (s *HistoryStep) Name() string {
	return "history"
}

// Do records the job. The run id is written to the job report.
func (s *HistoryStep) Do(ctx context.Context, job *Job) error {
	if job.Report.Result == nil {
		return fmt.Errorf("%w: nothing to record", ErrNoSnapshot)
	}

	fingerprint, err := snapshot.Fingerprint(job.Snapshot)
	if err != nil {
		return err
	}

	id, created, err := s.store.SaveSnapshot(ctx, job.Instance, fingerprint, job.Snapshot)
	if err != nil {
		return err
	}
	job.SnapshotID = id
	if created {
		s.logger.Debug("snapshot saved", "instance", job.Instance, "snapshot_id", id)
	} else {
		s.logger.Debug("snapshot unchanged since last run", "instance", job.Instance, "snapshot_id", id)
	}

	runID, err := s.store.SaveAnalysisRun(ctx, &database.AnalysisRun{
		RunID:      job.Report.RunID,
		Instance:   job.Instance,
		SnapshotID: id,
		Result:     job.Report.Result,
	})
	if err != nil {
		return err
	}
	job.Report.RunID = runID
	return nil
}

// DefaultPipelineConfig holds the settings of the standard analysis pipeline.
type DefaultPipelineConfig struct {
	// PagesFile and NavigationFile select explicit export files. When both
	// are empty the job source directory is loaded.
	PagesFile      string
	NavigationFile string

	// IgnorePatterns are doublestar globs of paths to ignore.
	IgnorePatterns []string

	// History records snapshots and runs. Nil disables recording.
	History HistoryStore

	// AnalyzerOptions are passed to the analyzer.
	AnalyzerOptions []analyzer.Option
}

// DefaultPipelineOption configures DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineFiles loads explicit export files.
func WithPipelineFiles(pagesFile, navigationFile string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.PagesFile = pagesFile
		c.NavigationFile = navigationFile
	}
}

// WithPipelineIgnorePatterns sets the ignore patterns.
func WithPipelineIgnorePatterns(patterns []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.IgnorePatterns = patterns
	}
}

// WithPipelineHistory enables history recording.
func WithPipelineHistory(store HistoryStore) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.History = store
	}
}

// WithPipelineAnalyzerOptions sets the analyzer options.
func WithPipelineAnalyzerOptions(opts ...analyzer.Option) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.AnalyzerOptions = opts
	}
}

// DefaultPipeline creates the standard pipeline: load, analyze, filter and,
// when a history store is configured, history.
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	cfg := &DefaultPipelineConfig{}
	for _, opt := range configOpts {
		opt(cfg)
	}

	p := New(pipelineOpts...)

	var loadOpts []LoadStepOption
	if cfg.PagesFile != "" || cfg.NavigationFile != "" {
		loadOpts = append(loadOpts, WithFiles(cfg.PagesFile, cfg.NavigationFile))
	}

	p.AddSteps(
		NewLoadStep(loadOpts...),
		NewAnalyzeStep(cfg.AnalyzerOptions...),
		NewFilterStep(cfg.IgnorePatterns),
	)
	if cfg.History != nil {
		p.AddStep(NewHistoryStep(cfg.History, WithHistoryLogger(p.logger)))
	}

	return p
}
