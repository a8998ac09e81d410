package model

import "fmt"

// Severity is the weight class of a health issue.
type Severity int

const (
	// SeverityInfo marks cosmetic issues such as a navigation label that
	// no longer matches the page title.
	SeverityInfo Severity = iota

	// SeverityWarning marks issues that hide content from readers, such as
	// pages missing from the navigation.
	SeverityWarning

	// SeverityCritical marks issues that break navigation or make content
	// ambiguous: dead links and duplicate paths.
	SeverityCritical
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "critical":
		*s = SeverityCritical
	default:
		return fmt.Errorf("unknown severity %q", string(text))
	}
	return nil
}

// IssueCategory identifies one of the scored issue categories.
type IssueCategory string

const (
	// CategoryBrokenLinks counts navigation links to missing or unpublished pages.
	CategoryBrokenLinks IssueCategory = "broken_links"
	// CategoryUnlistedPages counts pages that no navigation link reaches.
	CategoryUnlistedPages IssueCategory = "unlisted_pages"
	// CategoryTitleInconsistencies counts labels that differ from page titles.
	CategoryTitleInconsistencies IssueCategory = "title_inconsistencies"
	// CategoryDuplicatePaths counts groups of pages sharing a normalized path.
	CategoryDuplicatePaths IssueCategory = "duplicate_paths"
)

// CategoryInfo contains the scoring metadata of an issue category.
type CategoryInfo struct {
	Severity       Severity
	Weight         int
	Description    string
	Recommendation string
}

// categoryInfoMapping is the fixed scoring table used by the health scorer.
var categoryInfoMapping = map[IssueCategory]CategoryInfo{
	CategoryBrokenLinks: {
		Severity:       SeverityCritical,
		Weight:         10,
		Description:    "Navigation links point to missing or unpublished pages",
		Recommendation: "Fix the link target or publish the page it points to.",
	},
	CategoryUnlistedPages: {
		Severity:       SeverityWarning,
		Weight:         5,
		Description:    "Pages are not reachable from the navigation",
		Recommendation: "Add the pages to the navigation or unpublish them.",
	},
	CategoryTitleInconsistencies: {
		Severity:       SeverityInfo,
		Weight:         2,
		Description:    "Navigation labels differ from page titles",
		Recommendation: "Align the navigation label with the page title.",
	},
	CategoryDuplicatePaths: {
		Severity:       SeverityCritical,
		Weight:         10,
		Description:    "Several pages share the same normalized path",
		Recommendation: "Rename or merge the pages so each path is unique.",
	},
}

// ScoredCategories lists the categories in the order issues are reported.
var ScoredCategories = []IssueCategory{
	CategoryBrokenLinks,
	CategoryUnlistedPages,
	CategoryTitleInconsistencies,
	CategoryDuplicatePaths,
}

// GetCategoryInfo returns the scoring metadata for a category.
// Unknown categories get an info-level entry with zero weight.
func GetCategoryInfo(category IssueCategory) CategoryInfo {
	if info, ok := categoryInfoMapping[category]; ok {
		return info
	}
	return CategoryInfo{
		Severity:    SeverityInfo,
		Description: "Unknown issue category",
	}
}
