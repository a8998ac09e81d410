package model

import "time"

// UnlistedReason explains why a page is reported as unlisted.
type UnlistedReason string

const (
	// ReasonPublishedNotInNav is a published page no navigation link reaches.
	ReasonPublishedNotInNav UnlistedReason = "published_not_in_nav"
	// ReasonUnpublishedNotInNav is an unpublished page no navigation link reaches.
	ReasonUnpublishedNotInNav UnlistedReason = "unpublished_not_in_nav"
)

// BrokenLinkReason explains why a navigation link is broken.
type BrokenLinkReason string

const (
	// ReasonPageNotFound means no page has the link target path.
	ReasonPageNotFound BrokenLinkReason = "page_not_found"
	// ReasonPageUnpublished means the target page exists but is not published.
	ReasonPageUnpublished BrokenLinkReason = "page_unpublished"
)

// UnlistedPage is a page that does not appear in any navigation tree.
type UnlistedPage struct {
	Page   Page           `json:"page"`
	Reason UnlistedReason `json:"reason"`
}

// BrokenNavLink is a navigation link whose target cannot be served.
type BrokenNavLink struct {
	// Item is the offending navigation item, without its children.
	Item NavigationItem `json:"item"`

	// Locale is the locale of the tree the item belongs to.
	Locale string `json:"locale"`

	// Reason tells whether the page is missing or unpublished.
	Reason BrokenLinkReason `json:"reason"`
}

// TitleInconsistency is a navigation label that differs from its page title.
type TitleInconsistency struct {
	NavItemID ID     `json:"navItemId"`
	NavLabel  string `json:"navLabel"`
	PageID    ID     `json:"pageId"`
	PageTitle string `json:"pageTitle"`
	Path      string `json:"path"`
}

// DuplicatePath groups pages sharing one normalized path.
type DuplicatePath struct {
	// NormalizedPath is the shared canonical path.
	NormalizedPath string `json:"normalizedPath"`

	// Paths are the original, non-normalized paths in page order.
	Paths []string `json:"paths"`

	// Pages are the full page records of the group.
	Pages []Page `json:"pages"`
}

// NavigationCoverage is the share of pages that the navigation reaches.
type NavigationCoverage struct {
	TotalPages         int     `json:"totalPages"`
	PagesInNavigation  int     `json:"pagesInNavigation"`
	CoveragePercentage float64 `json:"coveragePercentage"`
}

// VisibilityAnalysis counts navigation links by their visibility.
// A page linked from several items is counted once per item, and a
// restricted item adds its page to the bucket of every listed group.
type VisibilityAnalysis struct {
	PublicPages     int           `json:"publicPages"`
	RestrictedPages int           `json:"restrictedPages"`
	ByGroup         map[ID][]Page `json:"byGroup"`
}

// HealthIssue is one scored category in the health breakdown.
type HealthIssue struct {
	Category    IssueCategory `json:"category"`
	Severity    Severity      `json:"severity"`
	Count       int           `json:"count"`
	Weight      int           `json:"weight"`
	Deduction   int           `json:"deduction"`
	Description string        `json:"description"`
}

// HealthScore is the composite 0-100 score with its breakdown.
type HealthScore struct {
	Score      int           `json:"score"`
	Percentage int           `json:"percentage"`
	Issues     []HealthIssue `json:"issues"`
}

// AnalysisResult aggregates every structural finding of one analysis run.
type AnalysisResult struct {
	UnlistedPages        []UnlistedPage       `json:"unlistedPages"`
	BrokenNavLinks       []BrokenNavLink      `json:"brokenNavLinks"`
	TitleInconsistencies []TitleInconsistency `json:"titleInconsistencies"`
	DuplicatePaths       []DuplicatePath      `json:"duplicatePaths"`
	NavigationCoverage   NavigationCoverage   `json:"navigationCoverage"`
	HealthScore          HealthScore          `json:"healthScore"`
	AnalyzedAt           time.Time            `json:"analyzedAt"`
}

// HasIssues reports whether any scored category has findings.
func (r *AnalysisResult) HasIssues() bool {
	return len(r.HealthScore.Issues) > 0
}
