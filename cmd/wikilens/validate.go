package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikilens/internal/snapshot"
)

// ErrInvalidFiles is returned when at least one file fails validation.
var ErrInvalidFiles = errors.New("validation failed")

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check export files against their JSON schema",
		Long: `Validate checks page, navigation and link exports against the JSON schemas
wikilens expects, and lists every violation.

The kind of each file is detected from its content unless --kind is given:
an array is a link export, an object with "pages" a page export and an
object with "tree" a navigation export.

Examples:
  wikilens validate pages.json navigation.json
  wikilens validate --kind links links.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runValidateCmd,
	}

	cmd.Flags().StringP("kind", "k", "",
		"Document kind: pages, navigation or links (default: detected)")

	return cmd
}

// runValidateCmd executes the validate command.
func runValidateCmd(cmd *cobra.Command, args []string) error {
	kindFlag, err := cmd.Flags().GetString("kind")
	if err != nil {
		return err
	}

	var kind snapshot.Kind
	if kindFlag != "" {
		if kind, err = snapshot.ParseKind(kindFlag); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	invalid := 0
	for _, path := range args {
		res, err := snapshot.ValidateFile(path, kind)
		if err != nil {
			fmt.Fprintf(out, "✗ %s: %v\n", path, err)
			invalid++
			continue
		}
		if res.Valid {
			fmt.Fprintf(out, "✓ %s (%s)\n", path, res.Kind)
			continue
		}

		invalid++
		fmt.Fprintf(out, "✗ %s (%s): %d violation(s)\n", path, res.Kind, len(res.Violations))
		for _, v := range res.Violations {
			fmt.Fprintf(out, "    - %s: %s\n", v.Field, v.Message)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d file(s) invalid", ErrInvalidFiles, invalid, len(args))
	}
	return nil
}
