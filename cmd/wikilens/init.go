package main

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nao1215/wikilens/internal/config"
)

//go:embed templates/wikilens.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = config.DefaultConfigFile

// ErrConflictingInitTarget is returned when --global is combined with --output.
var ErrConflictingInitTarget = errors.New("--global and --output cannot be used together")

// initOptions holds the flags of the init command.
type initOptions struct {
	output   string
	force    bool
	global   bool
	instance string
	siteURL  string
	minScore int
}

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new wikilens configuration file",
		Long: `Initialize creates a new .wikilens configuration file in the current directory.

The generated file includes:
- Default settings shared by every wiki instance
- Commented examples for instance-specific configurations
- An optional first instance section built from --instance, --site-url and --min-score

The file is validated before it is written, so a bad --site-url or
--min-score never leaves a broken configuration behind.

Examples:
  # Create .wikilens in current directory
  wikilens init

  # Create the user-wide config in the XDG config directory
  wikilens init --global

  # Start with a configured instance
  wikilens init --instance docs --site-url https://docs.example.com --min-score 80

  # Force overwrite existing file
  wikilens init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")
	cmd.Flags().Bool("global", false,
		"Write config.yaml to the XDG config directory")
	cmd.Flags().StringP("instance", "i", "",
		"Add a section for this instance name")
	cmd.Flags().String("site-url", "",
		"Public URL of the instance (requires --instance)")
	cmd.Flags().Int("min-score", 0,
		"Minimum health score of the instance (requires --instance)")

	return cmd
}

func readInitOptions(cmd *cobra.Command) (*initOptions, error) {
	opts := &initOptions{}
	var err error
	if opts.output, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if opts.force, err = cmd.Flags().GetBool("force"); err != nil {
		return nil, err
	}
	if opts.global, err = cmd.Flags().GetBool("global"); err != nil {
		return nil, err
	}
	if opts.instance, err = cmd.Flags().GetString("instance"); err != nil {
		return nil, err
	}
	if opts.siteURL, err = cmd.Flags().GetString("site-url"); err != nil {
		return nil, err
	}
	if opts.minScore, err = cmd.Flags().GetInt("min-score"); err != nil {
		return nil, err
	}

	if opts.global {
		if cmd.Flags().Changed("output") {
			return nil, ErrConflictingInitTarget
		}
		opts.output = config.XDGConfigFile()
	}
	if opts.instance == "" && (opts.siteURL != "" || opts.minScore != 0) {
		return nil, errors.New("--site-url and --min-score require --instance")
	}
	return opts, nil
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	opts, err := readInitOptions(cmd)
	if err != nil {
		return err
	}

	if !opts.force {
		if _, err := os.Stat(opts.output); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", opts.output)
		}
	}

	content, err := renderConfig(opts)
	if err != nil {
		return err
	}

	dir := filepath.Dir(opts.output)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := writeValidatedConfig(opts.output, content); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", opts.output)
	if opts.instance != "" {
		fmt.Fprintf(out, "Added instance %q. Select it with: wikilens analyze --instance %s\n",
			opts.instance, opts.instance)
	}
	if !opts.global && filepath.Base(opts.output) != config.DefaultConfigFile {
		fmt.Fprintf(out, "This file is not searched automatically. Pass it with --config or set %s.\n",
			config.EnvConfigFile)
	}
	fmt.Fprintln(out, "\nEdit this file to configure instance-specific settings such as:")
	fmt.Fprintln(out, "  - Paths to ignore when scoring")
	fmt.Fprintln(out, "  - Minimum health score for CI")
	fmt.Fprintln(out, "  - Public site URL for link extraction")

	return nil
}

// renderConfig returns the template, followed by an instance section when
// one was requested. The template ends inside the instances mapping.
func renderConfig(opts *initOptions) ([]byte, error) {
	content, err := configTemplate.ReadFile("templates/wikilens.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read config template: %w", err)
	}
	if opts.instance == "" {
		return content, nil
	}

	section := map[string]config.InstanceConfig{
		opts.instance: {
			Label:          opts.instance,
			SiteURL:        opts.siteURL,
			MinHealthScore: opts.minScore,
		},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(section); err != nil {
		return nil, fmt.Errorf("failed to encode instance section: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode instance section: %w", err)
	}

	var b strings.Builder
	b.Write(bytes.TrimRight(content, "\n"))
	b.WriteString("\n\n")
	for line := range strings.Lines(buf.String()) {
		b.WriteString("  " + line)
	}
	return []byte(b.String()), nil
}

// writeValidatedConfig writes content next to path, loads it back and only
// then moves it into place.
func writeValidatedConfig(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".wikilens-init-*")
	if err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }() //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close() //nolint:errcheck // write error takes precedence
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	if _, err := config.LoadConfigFile(tmpPath); err != nil {
		return fmt.Errorf("generated configuration is invalid: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}
