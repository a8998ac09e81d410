package config

// InstanceConfig holds the settings of one wiki instance.
type InstanceConfig struct {
	// Label is a human readable name shown in reports.
	Label string `yaml:"label,omitempty"`

	// SiteURL is the public URL of the wiki. Links to this host found in
	// rendered pages are treated as internal links.
	SiteURL string `yaml:"siteUrl,omitempty"`

	// IgnorePatterns are doublestar globs matched against normalized page
	// paths. Matching findings are left out of reports and scoring.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// MinHealthScore fails the analysis when the score is lower.
	// Zero disables the check.
	MinHealthScore int `yaml:"minHealthScore,omitempty"`
}

// File represents the structure of the .wikilens configuration file.
type File struct {
	// Instances maps instance names to their settings.
	Instances map[string]InstanceConfig `yaml:"instances,omitempty"`

	// Defaults apply to every instance unless overridden.
	Defaults InstanceConfig `yaml:"defaults,omitempty"`
}

// GetInstanceConfig returns the configuration for an instance, merged with
// the defaults. Ignore patterns of both levels are combined.
func (cf *File) GetInstanceConfig(name string) InstanceConfig {
	result := cf.Defaults
	result.IgnorePatterns = append([]string(nil), cf.Defaults.IgnorePatterns...)

	if ic, ok := cf.Instances[name]; ok {
		if ic.Label != "" {
			result.Label = ic.Label
		}
		if ic.SiteURL != "" {
			result.SiteURL = ic.SiteURL
		}
		if ic.MinHealthScore != 0 {
			result.MinHealthScore = ic.MinHealthScore
		}
		result.IgnorePatterns = append(result.IgnorePatterns, ic.IgnorePatterns...)
	}

	return result
}
