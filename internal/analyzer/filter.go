package analyzer

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/nao1215/wikilens/internal/model"
)

// FilterResult returns a copy of result without findings whose normalized
// path matches one of the glob patterns. Patterns use doublestar syntax,
// e.g. "archive/**" or "drafts/*". Health score and coverage are recomputed
// from the remaining findings; the input result is left untouched.
func FilterResult(result *model.AnalysisResult, patterns []string) (*model.AnalysisResult, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern %q", p)
		}
	}

	out := &model.AnalysisResult{
		UnlistedPages:        make([]model.UnlistedPage, 0, len(result.UnlistedPages)),
		BrokenNavLinks:       make([]model.BrokenNavLink, 0, len(result.BrokenNavLinks)),
		TitleInconsistencies: make([]model.TitleInconsistency, 0, len(result.TitleInconsistencies)),
		DuplicatePaths:       make([]model.DuplicatePath, 0, len(result.DuplicatePaths)),
		AnalyzedAt:           result.AnalyzedAt,
	}

	for _, u := range result.UnlistedPages {
		if !ignored(u.Page.Path, patterns) {
			out.UnlistedPages = append(out.UnlistedPages, u)
		}
	}
	for _, b := range result.BrokenNavLinks {
		if !ignored(b.Item.Target, patterns) {
			out.BrokenNavLinks = append(out.BrokenNavLinks, b)
		}
	}
	for _, ti := range result.TitleInconsistencies {
		if !ignored(ti.Path, patterns) {
			out.TitleInconsistencies = append(out.TitleInconsistencies, ti)
		}
	}
	for _, d := range result.DuplicatePaths {
		if !ignored(d.NormalizedPath, patterns) {
			out.DuplicatePaths = append(out.DuplicatePaths, d)
		}
	}

	out.NavigationCoverage = coverage(result.NavigationCoverage.TotalPages, len(out.UnlistedPages))
	out.HealthScore = scoreResult(out)
	return out, nil
}

// ignored reports whether path matches any pattern. Patterns were validated
// by the caller, so match errors cannot occur.
func ignored(path string, patterns []string) bool {
	normalized := NormalizePagePath(path)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, normalized); ok {
			return true
		}
	}
	return false
}
