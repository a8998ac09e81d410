package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "wikilens"

	// DefaultConcurrency is the number of snapshot sets analyzed in parallel
	// in batch mode. Analysis is CPU bound, so a small value is enough.
	DefaultConcurrency = 4

	// DefaultInstance labels snapshots when no instance name is given.
	DefaultInstance = "default"
)

// Config holds the options of an analysis run.
// It is populated from CLI flags and passed down explicitly.
type Config struct {
	// PagesFile is the path of the page export.
	PagesFile string

	// NavigationFile is the path of the navigation export.
	NavigationFile string

	// BatchDirs are snapshot directories, each holding pages.json and
	// navigation.json. Mutually exclusive with PagesFile and NavigationFile.
	BatchDirs []string

	// Concurrency is the number of batch directories analyzed at once.
	Concurrency int

	// Instance labels the analyzed site in reports and in the history.
	// It also selects the instance section of the configuration file.
	Instance string

	// InstanceLabel is the display name of the instance, taken from the
	// configuration file.
	InstanceLabel string

	// MinHealthScore makes the run fail when the health score is lower.
	// Zero disables the check.
	MinHealthScore int

	// SiteURL is the public URL of the wiki, used to recognize absolute
	// links to the site itself in rendered pages.
	SiteURL string

	// IgnorePatterns are doublestar globs matched against normalized page
	// paths; matching findings are dropped before scoring.
	IgnorePatterns []string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, .wikilens is searched in the current directory and then in
	// the user's home directory.
	ConfigFilePath string

	// InstanceConfigs holds the settings loaded from the configuration file.
	InstanceConfigs *File

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects GitHub Flavored Markdown output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path. Stdout is used when empty.
	ReportFile string

	// DBDir is the directory of the history database.
	// Defaults to the XDG data directory (~/.local/share/wikilens on Linux).
	DBDir string

	// SaveToDB stores the snapshot and the analysis run in the history.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Concurrency: DefaultConcurrency,
		Instance:    DefaultInstance,
		DBDir:       XDGDataDir(),
		SaveToDB:    true,
	}
}

// XDGDataDir returns the XDG data directory for wikilens.
// On Linux: ~/.local/share/wikilens
// On macOS: ~/Library/Application Support/wikilens
// On Windows: %LOCALAPPDATA%\wikilens
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for wikilens.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ApplyInstanceConfig merges the configuration file settings of the current
// instance into c. Values set on the command line win.
func (c *Config) ApplyInstanceConfig() {
	if c.InstanceConfigs == nil {
		return
	}
	ic := c.InstanceConfigs.GetInstanceConfig(c.Instance)
	if c.MinHealthScore == 0 {
		c.MinHealthScore = ic.MinHealthScore
	}
	if c.SiteURL == "" {
		c.SiteURL = ic.SiteURL
	}
	if c.InstanceLabel == "" {
		c.InstanceLabel = ic.Label
	}
	c.IgnorePatterns = append(c.IgnorePatterns, ic.IgnorePatterns...)
}

// ValidateReportOptions checks the options shared by every reporting command.
func (c *Config) ValidateReportOptions() error {
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// Validate checks if the configuration is valid for an analysis run.
// It returns the first problem found.
func (c *Config) Validate() error {
	if err := c.ValidateReportOptions(); err != nil {
		return err
	}

	if len(c.BatchDirs) > 0 {
		if c.PagesFile != "" || c.NavigationFile != "" {
			return ErrMixedInputs
		}
	} else if c.PagesFile == "" || c.NavigationFile == "" {
		return ErrNoInput
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.MinHealthScore < 0 || c.MinHealthScore > 100 {
		return ErrInvalidMinScore
	}

	return nil
}
