package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".wikilens"

// EnvConfigFile names the environment variable that points at a
// configuration file. It is consulted after an explicit --config path.
const EnvConfigFile = "WIKILENS_CONFIG"

// XDGConfigFile returns the path of the configuration file in the XDG
// config directory, the last location searched.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), "config.yaml")
}

var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidConfigFile is returned when the configuration file parses but
	// holds values wikilens cannot use.
	ErrInvalidConfigFile = errors.New("invalid configuration file")
)

// LoadConfigFile loads instance configurations from a YAML file.
// Unknown keys are rejected so that a misspelled option does not silently
// fall back to its default.
// If the file does not exist, it returns ErrConfigNotFound; callers decide
// whether that matters based on how the path was chosen.
func LoadConfigFile(path string) (*File, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	defer f.Close()

	var cf File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cf.Instances == nil {
		cf.Instances = make(map[string]InstanceConfig)
	}

	if err := cf.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cf, nil
}

// Validate checks the ignore patterns and score thresholds of every section.
func (cf *File) Validate() error {
	if err := cf.Defaults.validate("defaults"); err != nil {
		return err
	}
	for name, ic := range cf.Instances {
		if err := ic.validate("instances." + name); err != nil {
			return err
		}
	}
	return nil
}

func (ic InstanceConfig) validate(section string) error {
	for _, p := range ic.IgnorePatterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: %s.ignorePatterns: bad pattern %q", ErrInvalidConfigFile, section, p)
		}
	}
	if ic.MinHealthScore < 0 || ic.MinHealthScore > 100 {
		return fmt.Errorf("%w: %s.minHealthScore: %d is outside 0..100", ErrInvalidConfigFile, section, ic.MinHealthScore)
	}
	if ic.SiteURL != "" && !strings.Contains(ic.SiteURL, "://") {
		return fmt.Errorf("%w: %s.siteUrl: %q has no scheme", ErrInvalidConfigFile, section, ic.SiteURL)
	}
	return nil
}

// FindConfigFile returns the configuration file to use, or "" when there is
// none. An explicit configPath is used as is when it exists. Otherwise the
// candidates of searchPaths are tried in order.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if exists(configPath) {
			return configPath
		}
		return ""
	}

	for _, candidate := range searchPaths() {
		if exists(candidate) {
			return candidate
		}
	}
	return ""
}

// searchPaths lists the implicit configuration locations by priority:
// $WIKILENS_CONFIG, .wikilens in the working directory, .wikilens in the
// home directory and config.yaml in the XDG config directory.
func searchPaths() []string {
	var paths []string
	if env := os.Getenv(EnvConfigFile); env != "" {
		paths = append(paths, env)
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, DefaultConfigFile))
	}
	return append(paths, XDGConfigFile())
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
