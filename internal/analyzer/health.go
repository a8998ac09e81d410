package analyzer

import "github.com/nao1215/wikilens/internal/model"

// MaxHealthScore is the score of a site without any issue.
const MaxHealthScore = 100

// ComputeHealthScore runs the scored analyzers and combines their counts.
func ComputeHealthScore(pages *model.PageExportData, nav *model.NavigationExportData) model.HealthScore {
	idx := newSiteIndex(pages, nav)
	return ScoreCounts(map[model.IssueCategory]int{
		model.CategoryBrokenLinks:          len(idx.brokenNavLinks()),
		model.CategoryUnlistedPages:        len(idx.unlistedPages()),
		model.CategoryTitleInconsistencies: len(idx.titleInconsistencies()),
		model.CategoryDuplicatePaths:       len(FindDuplicatePaths(pages)),
	})
}

// ScoreCounts turns per-category issue counts into a health score.
//
// Each occurrence deducts the category weight from 100 and the result never
// drops below 0. Only categories with a non-zero count are listed, in the
// order of model.ScoredCategories.
func ScoreCounts(counts map[model.IssueCategory]int) model.HealthScore {
	score := MaxHealthScore
	issues := make([]model.HealthIssue, 0, len(model.ScoredCategories))

	for _, category := range model.ScoredCategories {
		count := counts[category]
		if count <= 0 {
			continue
		}
		info := model.GetCategoryInfo(category)
		deduction := count * info.Weight
		score -= deduction
		issues = append(issues, model.HealthIssue{
			Category:    category,
			Severity:    info.Severity,
			Count:       count,
			Weight:      info.Weight,
			Deduction:   deduction,
			Description: info.Description,
		})
	}

	score = max(score, 0)
	return model.HealthScore{
		Score:      score,
		Percentage: score,
		Issues:     issues,
	}
}

// scoreResult scores the findings already present in an analysis result.
func scoreResult(r *model.AnalysisResult) model.HealthScore {
	return ScoreCounts(map[model.IssueCategory]int{
		model.CategoryBrokenLinks:          len(r.BrokenNavLinks),
		model.CategoryUnlistedPages:        len(r.UnlistedPages),
		model.CategoryTitleInconsistencies: len(r.TitleInconsistencies),
		model.CategoryDuplicatePaths:       len(r.DuplicatePaths),
	})
}
