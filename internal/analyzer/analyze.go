package analyzer

import "github.com/nao1215/wikilens/internal/model"

// Analyze runs every structural analyzer over one snapshot and scores the
// findings. The navigation is flattened once and shared by all analyzers.
func Analyze(pages *model.PageExportData, nav *model.NavigationExportData, opts ...Option) *model.AnalysisResult {
	o := newOptions(opts)
	analyzedAt := o.now()

	idx := newSiteIndex(pages, nav)
	result := &model.AnalysisResult{
		UnlistedPages:        idx.unlistedPages(),
		BrokenNavLinks:       idx.brokenNavLinks(),
		TitleInconsistencies: idx.titleInconsistencies(),
		DuplicatePaths:       FindDuplicatePaths(pages),
		AnalyzedAt:           analyzedAt,
	}
	result.NavigationCoverage = coverage(len(idx.pages), len(result.UnlistedPages))
	result.HealthScore = scoreResult(result)
	return result
}
