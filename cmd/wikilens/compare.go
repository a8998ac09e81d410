package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikilens/internal/analyzer"
	"github.com/nao1215/wikilens/internal/config"
	"github.com/nao1215/wikilens/internal/database"
	"github.com/nao1215/wikilens/internal/diff"
	"github.com/nao1215/wikilens/internal/report"
	"github.com/nao1215/wikilens/internal/snapshot"
)

var (
	// ErrIncompletePair is returned when only one side of an old/new file
	// pair is given.
	ErrIncompletePair = errors.New("old and new files must be given together")

	// ErrMixedCompareModes is returned when export files and history
	// options are combined.
	ErrMixedCompareModes = errors.New("export files cannot be combined with history options")
)

// compareOptions holds the flags of the compare command.
type compareOptions struct {
	oldPages, newPages string
	oldNav, newNav     string

	instance       string
	withSnapshotID int64
	since          string
	list           bool
	listInstances  bool
}

// fileMode reports whether export files were given.
func (o *compareOptions) fileMode() bool {
	return o.oldPages != "" || o.newPages != "" || o.oldNav != "" || o.newNav != ""
}

// validate checks that the options describe exactly one comparison.
func (o *compareOptions) validate() error {
	if !o.fileMode() {
		if o.withSnapshotID > 0 && o.since != "" {
			return errors.New("--with-snapshot-id and --since cannot be used together")
		}
		return nil
	}
	if o.withSnapshotID > 0 || o.since != "" || o.list || o.listInstances {
		return ErrMixedCompareModes
	}
	if (o.oldPages == "") != (o.newPages == "") {
		return fmt.Errorf("%w: --old-pages and --new-pages", ErrIncompletePair)
	}
	if (o.oldNav == "") != (o.newNav == "") {
		return fmt.Errorf("%w: --old-nav and --new-nav", ErrIncompletePair)
	}
	return nil
}

// NewCompareCmd creates the compare command.
// This command compares two snapshots, given as export files or taken
// from the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two snapshots of a wiki",
		Long: `Compare displays the differences between two snapshots of a wiki.

Pages are matched by id and compared on title, path and publication state.
Navigation items are matched by id and compared on label, target, icon and
visibility groups. The snapshots come either from export files or from the
history recorded by "wikilens analyze".

Examples:
  # Compare two export files
  wikilens compare --old-pages old/pages.json --new-pages new/pages.json

  # Compare pages and navigation
  wikilens compare --old-pages old/pages.json --new-pages new/pages.json \
    --old-nav old/navigation.json --new-nav new/navigation.json

  # Compare the latest two recorded snapshots of an instance
  wikilens compare --instance production

  # List recorded snapshots of an instance
  wikilens compare --list --instance production

  # Compare a specific recorded snapshot with the latest one
  wikilens compare --instance production --with-snapshot-id 5

  # Compare the first snapshot since a date with the latest one
  wikilens compare --instance production --since 2026-01-01

  # List all instances in the history
  wikilens compare --list-instances`,
		RunE: runCompareCmd,
	}

	// Export file flags
	cmd.Flags().String("old-pages", "", "Page export of the older snapshot")
	cmd.Flags().String("new-pages", "", "Page export of the newer snapshot")
	cmd.Flags().String("old-nav", "", "Navigation export of the older snapshot")
	cmd.Flags().String("new-nav", "", "Navigation export of the newer snapshot")

	// History flags
	cmd.Flags().StringP("instance", "i", config.DefaultInstance,
		"Instance whose recorded snapshots are compared")
	cmd.Flags().Int64("with-snapshot-id", 0,
		"Compare a specific snapshot with the latest one (use --list to see available IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare the first snapshot after this date with the latest one (format: YYYY-MM-DD)")
	cmd.Flags().BoolP("list", "l", false,
		"List recorded snapshots of the instance")
	cmd.Flags().BoolP("list-instances", "L", false,
		"List all instances in the history database")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the history database")

	addReportFlags(cmd)

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, _ []string) error {
	cfg, opts, err := buildCompareConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg.Verbose)
	ctx := cmd.Context()

	if opts.fileMode() {
		return compareFiles(cmd, cfg, opts, logger)
	}

	// Validation happened before opening the database so a bad flag
	// combination never creates or locks it.
	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		if errors.Is(err, database.ErrDatabaseNotFound) {
			return fmt.Errorf("%w (run 'wikilens analyze' first)", err)
		}
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	switch {
	case opts.listInstances:
		return listInstances(ctx, out, db)
	case opts.list:
		return listSnapshotHistory(ctx, out, db, opts.instance)
	}

	return compareHistory(ctx, cmd, cfg, opts, db, logger)
}

// buildCompareConfig reads the compare flags.
func buildCompareConfig(cmd *cobra.Command) (*config.Config, *compareOptions, error) {
	cfg := config.NewConfig()
	opts := &compareOptions{}
	var err error

	cfg.Verbose, err = getVerboseFlag(cmd)
	if err != nil {
		return nil, nil, err
	}

	stringFlags := []struct {
		name string
		dst  *string
	}{
		{"old-pages", &opts.oldPages},
		{"new-pages", &opts.newPages},
		{"old-nav", &opts.oldNav},
		{"new-nav", &opts.newNav},
		{"instance", &opts.instance},
		{"since", &opts.since},
		{"db-dir", &cfg.DBDir},
	}
	for _, f := range stringFlags {
		if *f.dst, err = cmd.Flags().GetString(f.name); err != nil {
			return nil, nil, err
		}
	}

	opts.withSnapshotID, err = cmd.Flags().GetInt64("with-snapshot-id")
	if err != nil {
		return nil, nil, err
	}

	opts.list, err = cmd.Flags().GetBool("list")
	if err != nil {
		return nil, nil, err
	}

	opts.listInstances, err = cmd.Flags().GetBool("list-instances")
	if err != nil {
		return nil, nil, err
	}

	if err := readReportFlags(cmd, cfg); err != nil {
		return nil, nil, err
	}
	if err := cfg.ValidateReportOptions(); err != nil {
		return nil, nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}

	cfg.Instance = opts.instance
	return cfg, opts, nil
}

// compareFiles compares two snapshots read from export files.
func compareFiles(cmd *cobra.Command, cfg *config.Config, opts *compareOptions, logger *slog.Logger) error {
	before, err := snapshot.LoadSnapshot(opts.oldPages, opts.oldNav)
	if err != nil {
		return fmt.Errorf("failed to load old snapshot: %w", err)
	}
	after, err := snapshot.LoadSnapshot(opts.newPages, opts.newNav)
	if err != nil {
		return fmt.Errorf("failed to load new snapshot: %w", err)
	}

	result := diff.Compare(before, after)
	logger.Info("comparison complete", "changes", result.Summary.TotalChanges)

	return writeReport(cmd, cfg, func(w report.Writer) (int, error) {
		return w.WriteDiff(result)
	})
}

// compareHistory compares recorded snapshots of an instance. The newer side
// is always the latest snapshot.
func compareHistory(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	opts *compareOptions,
	db *database.HistoryDB,
	logger *slog.Logger,
) error {
	latest, err := db.GetLatestSnapshots(ctx, opts.instance, 2)
	if err != nil {
		return err
	}
	if len(latest) == 0 {
		return fmt.Errorf("no snapshots recorded for instance %q", opts.instance)
	}

	current := latest[0]
	var previous *database.StoredSnapshot

	switch {
	case opts.withSnapshotID > 0:
		previous, err = db.GetSnapshotByID(ctx, opts.withSnapshotID)
		if err != nil {
			return fmt.Errorf("failed to get snapshot with ID %d: %w", opts.withSnapshotID, err)
		}
		if previous == nil {
			return fmt.Errorf("snapshot with ID %d not found", opts.withSnapshotID)
		}
		// The snapshot ID must belong to the same instance
		if previous.Instance != opts.instance {
			return fmt.Errorf("snapshot ID %d belongs to %s, not %s",
				opts.withSnapshotID, previous.Instance, opts.instance)
		}
	case opts.since != "":
		previous, err = firstSnapshotSince(ctx, db, opts.instance, opts.since)
		if err != nil {
			return err
		}
		if previous.ID == current.ID {
			return fmt.Errorf("only one snapshot found since %s; at least 2 snapshots are required for comparison", opts.since)
		}
	default:
		if len(latest) < 2 {
			return fmt.Errorf("at least 2 snapshots are required for comparison (found %d)", len(latest))
		}
		previous = latest[1]
	}

	logger.Debug("comparing recorded snapshots",
		"instance", opts.instance,
		"previous", previous.ID,
		"current", current.ID,
	)

	result := diff.Compare(previous.Snapshot, current.Snapshot)
	return writeReport(cmd, cfg, func(w report.Writer) (int, error) {
		return w.WriteDiff(result)
	})
}

// firstSnapshotSince returns the oldest snapshot recorded at or after the
// given date.
func firstSnapshotSince(ctx context.Context, db *database.HistoryDB, instance, since string) (*database.StoredSnapshot, error) {
	sinceDate, err := time.Parse("2006-01-02", since)
	if err != nil {
		return nil, fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
	}

	history, err := db.GetSnapshotHistory(ctx, instance)
	if err != nil {
		return nil, err
	}

	// History is newest first, so walk it backwards
	for i := len(history) - 1; i >= 0; i-- {
		meta := history[i]
		if meta.Timestamp.Before(sinceDate) {
			continue
		}
		stored, err := db.GetSnapshotByID(ctx, meta.ID)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			return stored, nil
		}
	}
	return nil, fmt.Errorf("no snapshots found since %s", since)
}

// listInstances prints every instance with recorded snapshots.
func listInstances(ctx context.Context, out io.Writer, db *database.HistoryDB) error {
	instances, err := db.ListInstances(ctx)
	if err != nil {
		return fmt.Errorf("failed to list instances: %w", err)
	}

	if len(instances) == 0 {
		fmt.Fprintln(out, "No instances found in the database.")
		fmt.Fprintln(out, "\nUse 'wikilens analyze' to record a snapshot.")
		return nil
	}

	fmt.Fprintf(out, "Recorded instances (%d):\n\n", len(instances))
	for _, instance := range instances {
		fmt.Fprintf(out, "  • %s\n", instance)
	}
	fmt.Fprintln(out, "\nUse 'wikilens compare --list --instance <name>' to see the snapshots of an instance.")

	return nil
}

// listSnapshotHistory prints the recorded snapshots of an instance.
func listSnapshotHistory(ctx context.Context, out io.Writer, db *database.HistoryDB, instance string) error {
	history, err := db.GetSnapshotHistory(ctx, instance)
	if err != nil {
		return fmt.Errorf("failed to get snapshot history: %w", err)
	}

	if len(history) == 0 {
		fmt.Fprintf(out, "No snapshots found for %s\n", instance)
		fmt.Fprintln(out, "\nUse 'wikilens analyze --instance' to record one.")
		return nil
	}

	fmt.Fprintf(out, "Snapshot history for %s (%d snapshots):\n\n", instance, len(history))
	fmt.Fprintf(out, "  %-6s  %-20s  %6s  %6s  %s\n", "ID", "Date", "Pages", "Links", "Score")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 55))

	for _, meta := range history {
		fmt.Fprintf(out, "  %-6d  %-20s  %6d  %6d  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.PageCount,
			meta.NavItemCount,
			formatScore(meta.HealthScore),
		)
	}

	fmt.Fprintln(out, "\nUse 'wikilens compare --instance <name>' to compare the latest two snapshots.")
	fmt.Fprintln(out, "Use 'wikilens compare --instance <name> --with-snapshot-id <id>' to compare with a specific snapshot.")

	return nil
}

// formatScore formats a recorded health score; -1 means never analyzed.
func formatScore(score int) string {
	if score < 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d/%d", score, analyzer.MaxHealthScore)
}
