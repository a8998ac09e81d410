package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nao1215/wikilens/internal/config"
	"github.com/nao1215/wikilens/internal/database"
	"github.com/nao1215/wikilens/internal/model"
	"github.com/nao1215/wikilens/internal/pipeline"
	"github.com/nao1215/wikilens/internal/report"
)

// ErrHealthBelowMinimum is returned when an analysis scores lower than the
// configured minimum health score.
var ErrHealthBelowMinimum = errors.New("health score below minimum")

// ErrBatchFailures is returned when some snapshots of a batch could not be
// analyzed.
var ErrBatchFailures = errors.New("some snapshots could not be analyzed")

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a wiki export for content integrity issues",
		Long: `Analyze checks a page export against a navigation export.

It reports:
- Pages that do not appear in the navigation
- Navigation links to missing or unpublished pages
- Navigation labels that differ from the page title
- Pages sharing the same path
- Navigation coverage and visibility by group

The findings are summarized in a health score from 0 to 100. Each analysis
is recorded in the history database so that later snapshots can be compared
with "wikilens compare --instance".

Examples:
  # Analyze one export
  wikilens analyze --pages pages.json --nav navigation.json

  # Fail in CI when the score drops below 80
  wikilens analyze -p pages.json -n navigation.json --min-score 80

  # Analyze several snapshot directories concurrently
  wikilens analyze --batch exports/docs --batch exports/handbook

  # Markdown report for a pull request comment
  wikilens analyze -p pages.json -n navigation.json --markdown -o report.md`,
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().StringP("pages", "p", "",
		"Path to the page export (JSON)")
	cmd.Flags().StringP("nav", "n", "",
		"Path to the navigation export (JSON)")
	cmd.Flags().StringSliceP("batch", "b", nil,
		"Snapshot directories holding pages.json and navigation.json (repeatable)")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of snapshot directories analyzed concurrently")
	cmd.Flags().StringP("instance", "i", config.DefaultInstance,
		"Instance name used in reports, history and configuration lookup")
	cmd.Flags().Int("min-score", 0,
		"Fail when the health score is lower than this value (0 disables)")
	cmd.Flags().StringSlice("ignore", nil,
		"Glob pattern of page paths to ignore (repeatable, e.g. 'archive/**')")
	cmd.Flags().StringP("config", "c", "",
		"Path to config file (default: .wikilens in current or home directory)")
	cmd.Flags().Bool("no-save", false,
		"Do not record the snapshot and the analysis in the history database")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the history database")
	addReportFlags(cmd)

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildAnalyzeConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg.Verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runAnalyze(ctx, cmd, cfg, logger)
}

// buildAnalyzeConfig creates a Config from command flags.
func buildAnalyzeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	var err error

	cfg.Verbose, err = getVerboseFlag(cmd)
	if err != nil {
		return nil, err
	}

	cfg.PagesFile, err = cmd.Flags().GetString("pages")
	if err != nil {
		return nil, err
	}

	cfg.NavigationFile, err = cmd.Flags().GetString("nav")
	if err != nil {
		return nil, err
	}

	cfg.BatchDirs, err = cmd.Flags().GetStringSlice("batch")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.Instance, err = cmd.Flags().GetString("instance")
	if err != nil {
		return nil, err
	}

	cfg.MinHealthScore, err = cmd.Flags().GetInt("min-score")
	if err != nil {
		return nil, err
	}

	cfg.IgnorePatterns, err = cmd.Flags().GetStringSlice("ignore")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	if err := readReportFlags(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if err := loadConfigFile(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runAnalyze executes a single or a batch analysis and writes the report.
func runAnalyze(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"instance", cfg.Instance,
		"batch", len(cfg.BatchDirs),
		"saveToDB", cfg.SaveToDB,
	)

	pipelineOpts := []pipeline.DefaultPipelineOption{
		pipeline.WithPipelineIgnorePatterns(cfg.IgnorePatterns),
	}

	// Open database connection if saving is enabled
	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "path", db.Path())
		pipelineOpts = append(pipelineOpts, pipeline.WithPipelineHistory(db))
	}

	if len(cfg.BatchDirs) > 0 {
		return runBatchAnalyze(ctx, cmd, cfg, logger, pipelineOpts)
	}

	p := pipeline.DefaultPipeline(
		[]pipeline.Option{pipeline.WithLogger(logger)},
		append(pipelineOpts, pipeline.WithPipelineFiles(cfg.PagesFile, cfg.NavigationFile))...,
	)

	job := pipeline.NewJob(cfg.PagesFile, cfg.Instance)
	job.Report.RunID = uuid.NewString()
	job.Report.Label = cfg.InstanceLabel

	if err := p.Execute(ctx, job); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := writeReport(cmd, cfg, func(w report.Writer) (int, error) {
		return w.WriteAnalysis(job.Report)
	}); err != nil {
		return err
	}

	return checkMinScore(cfg.MinHealthScore, job.Report)
}

// runBatchAnalyze analyzes every batch directory concurrently. The report
// is written even when some directories fail.
func runBatchAnalyze(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	logger *slog.Logger,
	pipelineOpts []pipeline.DefaultPipelineOption,
) error {
	factory := func() *pipeline.Pipeline {
		return pipeline.DefaultPipeline([]pipeline.Option{pipeline.WithLogger(logger)}, pipelineOpts...)
	}

	bp := pipeline.NewBatchProcessor(factory,
		pipeline.WithBatchLogger(logger),
		pipeline.WithConcurrency(cfg.Concurrency),
	)

	reports, batchErr := bp.ProcessBatch(ctx, cfg.BatchDirs)

	if err := writeReport(cmd, cfg, func(w report.Writer) (int, error) {
		return w.WriteBatch(reports)
	}); err != nil {
		return err
	}

	if batchErr != nil {
		return fmt.Errorf("batch analysis interrupted: %w", batchErr)
	}

	failed := 0
	for _, r := range reports {
		if r.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailures, failed, len(reports))
	}

	for _, r := range reports {
		if err := checkMinScore(cfg.MinHealthScore, r); err != nil {
			return err
		}
	}
	return nil
}

// checkMinScore returns ErrHealthBelowMinimum when the report scores lower
// than minScore. A zero minScore disables the check.
func checkMinScore(minScore int, r *model.AnalysisReport) error {
	if minScore <= 0 || r.Result == nil {
		return nil
	}
	if score := r.Result.HealthScore.Score; score < minScore {
		return fmt.Errorf("%w: %s scored %d, minimum is %d", ErrHealthBelowMinimum, r.InstanceName(), score, minScore)
	}
	return nil
}
