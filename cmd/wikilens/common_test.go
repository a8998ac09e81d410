package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikilens/internal/config"
	"github.com/nao1215/wikilens/internal/report"
)

func TestNewReportWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cfg   *config.Config
		check func(report.Writer) bool
	}{
		{
			name:  "json",
			cfg:   &config.Config{JSONReport: true},
			check: func(w report.Writer) bool { _, ok := w.(*report.JSONWriter); return ok },
		},
		{
			name:  "markdown",
			cfg:   &config.Config{MarkdownReport: true},
			check: func(w report.Writer) bool { _, ok := w.(*report.MarkdownWriter); return ok },
		},
		{
			name:  "text",
			cfg:   &config.Config{},
			check: func(w report.Writer) bool { _, ok := w.(*report.SimpleWriter); return ok },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if w := newReportWriter(tt.cfg, &bytes.Buffer{}); !tt.check(w) {
				t.Errorf("unexpected writer type %T", w)
			}
		})
	}
}

func TestOpenOutput(t *testing.T) {
	t.Parallel()

	t.Run("stdout when no file", func(t *testing.T) {
		t.Parallel()
		cmd := &cobra.Command{}
		var buf bytes.Buffer
		cmd.SetOut(&buf)

		out, err := openOutput(cmd, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := out.Write([]byte("hello")); err != nil {
			t.Fatal(err)
		}
		if err := out.Close(); err != nil {
			t.Errorf("closing stdout wrapper: %v", err)
		}
		if buf.String() != "hello" {
			t.Errorf("expected output on command stdout, got %q", buf.String())
		}
	})

	t.Run("file in new directory", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "reports", "out.txt")

		out, err := openOutput(&cobra.Command{}, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := out.Write([]byte("report")); err != nil {
			t.Fatal(err)
		}
		if err := out.Close(); err != nil {
			t.Fatal(err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected file: %v", err)
		}
		if string(content) != "report" {
			t.Errorf("unexpected content %q", content)
		}
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit file", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.Instance = "prod"
		cfg.ConfigFilePath = writeConfig(t, t.TempDir(), `
defaults:
  ignorePatterns: ["archive/**"]
instances:
  prod:
    label: Docs
    minHealthScore: 70
`)
		if err := loadConfigFile(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.InstanceLabel != "Docs" || cfg.MinHealthScore != 70 {
			t.Errorf("instance settings not applied: %+v", cfg)
		}
		if len(cfg.IgnorePatterns) != 1 || cfg.IgnorePatterns[0] != "archive/**" {
			t.Errorf("unexpected ignore patterns: %v", cfg.IgnorePatterns)
		}
	})

	t.Run("explicit file missing", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.ConfigFilePath = filepath.Join(t.TempDir(), "missing.yaml")
		if err := loadConfigFile(cfg); err == nil {
			t.Error("expected error for missing explicit config")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.ConfigFilePath = writeConfig(t, t.TempDir(), "instances: [not, a, map]\n")
		if err := loadConfigFile(cfg); err == nil {
			t.Error("expected error for malformed config")
		}
	})
}

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		jsonLogs bool
		verbose  bool
		want     string
	}{
		{name: "text verbose", verbose: true, want: "level=INFO"},
		{name: "json verbose", jsonLogs: true, verbose: true, want: `"level":"INFO"`},
		{name: "quiet", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cmd := &cobra.Command{}
			cmd.Flags().Bool("log-json", tt.jsonLogs, "")
			var stderr bytes.Buffer
			cmd.SetErr(&stderr)

			setupLogger(cmd, tt.verbose).Info("loaded", "apiToken", "abc123")

			got := stderr.String()
			if tt.want == "" {
				if got != "" {
					t.Errorf("expected no output below warn level, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("expected %q in %q", tt.want, got)
			}
			if strings.Contains(got, "abc123") {
				t.Errorf("expected token to be masked, got %q", got)
			}
		})
	}
}
