package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikilens/internal/config"
	wlog "github.com/nao1215/wikilens/internal/log"
	"github.com/nao1215/wikilens/internal/report"
)

// getVerboseFlag reads the persistent --verbose flag.
func getVerboseFlag(cmd *cobra.Command) (bool, error) {
	return cmd.Flags().GetBool("verbose")
}

// setupLogger creates a logger that writes to the command's stderr, keeping
// stdout free for reports. --log-json switches to JSON lines.
func setupLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	if jsonLogs, _ := cmd.Flags().GetBool("log-json"); jsonLogs {
		return wlog.NewSecureJSONLogger(cmd.ErrOrStderr(), verbose)
	}
	return wlog.NewSecureLogger(cmd.ErrOrStderr(), verbose)
}

// addReportFlags registers the output flags shared by reporting commands.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output report in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output report in GitHub Flavored Markdown format")
	cmd.Flags().StringP("output", "o", "",
		"Write report to file instead of stdout")
}

// readReportFlags copies the output flags into cfg.
func readReportFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error
	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	return nil
}

// loadConfigFile fills cfg.InstanceConfigs from the configuration file.
// If the user explicitly specified a path, a missing file is an error.
// Otherwise an empty configuration is used when no file is found.
func loadConfigFile(cfg *config.Config) error {
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.InstanceConfigs = cf
	case explicitConfigPath:
		return fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	default:
		cfg.InstanceConfigs = &config.File{
			Instances: make(map[string]config.InstanceConfig),
		}
	}

	cfg.ApplyInstanceConfig()
	return nil
}

// nopCloser adapts a writer that must not be closed, such as stdout.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// openOutput returns the report destination: the report file when set,
// otherwise the command's standard output.
// Reports may describe unpublished content, so files are created with 0600.
func openOutput(cmd *cobra.Command, reportFile string) (io.WriteCloser, error) {
	if reportFile == "" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}

	dir := filepath.Dir(reportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(reportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // user-provided output path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// newReportWriter selects the report format from cfg.
func newReportWriter(cfg *config.Config, w io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(w, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewSimpleWriter(w, report.WithVerbose(cfg.Verbose))
	}
}

// writeReport opens the destination, writes with fn and closes it.
func writeReport(cmd *cobra.Command, cfg *config.Config, fn func(report.Writer) (int, error)) error {
	out, err := openOutput(cmd, cfg.ReportFile)
	if err != nil {
		return err
	}

	if _, err := fn(newReportWriter(cfg, out)); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	if cfg.ReportFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to: %s\n", cfg.ReportFile)
	}
	return nil
}
