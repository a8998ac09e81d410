// Package main provides the entry point for the wikilens CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for wikilens.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikilens",
		Short: "Content integrity analysis for wiki exports",
		Long: `wikilens analyzes exported snapshots of a wiki for content integrity issues.

It reads a page export and a navigation export and reports pages missing from
the navigation, navigation links to missing or unpublished pages, labels that
drifted from page titles and pages sharing a path, summarized in a 0-100 health
score. It also detects pages without incoming links and compares snapshots
taken at different times.

wikilens works offline on export files; it never talks to the wiki itself.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines to stderr")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewOrphansCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
