package analyzer

import "github.com/nao1215/wikilens/internal/model"

// siteIndex holds the lookups shared by the structural analyzers.
// It is built once per call and never escapes the call.
type siteIndex struct {
	pages []model.Page
	links []navLink

	// pagesByPath maps a normalized path to its page. When several pages
	// share a path the last one wins; duplicates are reported separately.
	pagesByPath map[string]model.Page

	// targets is the set of normalized navigation targets of all locales.
	targets map[string]struct{}
}

func newSiteIndex(pages *model.PageExportData, nav *model.NavigationExportData) *siteIndex {
	idx := &siteIndex{
		links:   flattenTrees(nav),
		targets: make(map[string]struct{}),
	}
	if pages != nil {
		idx.pages = pages.Pages
	}

	idx.pagesByPath = make(map[string]model.Page, len(idx.pages))
	for _, p := range idx.pages {
		idx.pagesByPath[NormalizePagePath(p.Path)] = p
	}
	for _, l := range idx.links {
		idx.targets[NormalizePagePath(l.item.Target)] = struct{}{}
	}
	return idx
}

func (idx *siteIndex) lookup(target string) (model.Page, bool) {
	p, ok := idx.pagesByPath[NormalizePagePath(target)]
	return p, ok
}

// FindUnlistedPages reports every page whose path is not the target of any
// navigation link in any locale.
func FindUnlistedPages(pages *model.PageExportData, nav *model.NavigationExportData) []model.UnlistedPage {
	return newSiteIndex(pages, nav).unlistedPages()
}

func (idx *siteIndex) unlistedPages() []model.UnlistedPage {
	out := make([]model.UnlistedPage, 0)
	for _, p := range idx.pages {
		if _, ok := idx.targets[NormalizePagePath(p.Path)]; ok {
			continue
		}
		reason := model.ReasonUnpublishedNotInNav
		if p.IsPublished {
			reason = model.ReasonPublishedNotInNav
		}
		out = append(out, model.UnlistedPage{Page: p, Reason: reason})
	}
	return out
}

// FindBrokenNavLinks reports navigation links whose target page is missing
// or unpublished.
func FindBrokenNavLinks(pages *model.PageExportData, nav *model.NavigationExportData) []model.BrokenNavLink {
	return newSiteIndex(pages, nav).brokenNavLinks()
}

func (idx *siteIndex) brokenNavLinks() []model.BrokenNavLink {
	out := make([]model.BrokenNavLink, 0)
	for _, l := range idx.links {
		p, ok := idx.lookup(l.item.Target)
		switch {
		case !ok:
			out = append(out, model.BrokenNavLink{
				Item:   withoutChildren(l.item),
				Locale: l.locale,
				Reason: model.ReasonPageNotFound,
			})
		case !p.IsPublished:
			out = append(out, model.BrokenNavLink{
				Item:   withoutChildren(l.item),
				Locale: l.locale,
				Reason: model.ReasonPageUnpublished,
			})
		}
	}
	return out
}

// FindTitleInconsistencies reports labelled navigation links whose label is
// not exactly the title of the page they point to.
func FindTitleInconsistencies(pages *model.PageExportData, nav *model.NavigationExportData) []model.TitleInconsistency {
	return newSiteIndex(pages, nav).titleInconsistencies()
}

func (idx *siteIndex) titleInconsistencies() []model.TitleInconsistency {
	out := make([]model.TitleInconsistency, 0)
	for _, l := range idx.links {
		if l.item.Label == "" {
			continue
		}
		p, ok := idx.lookup(l.item.Target)
		if !ok || p.Title == l.item.Label {
			continue
		}
		out = append(out, model.TitleInconsistency{
			NavItemID: l.item.ID,
			NavLabel:  l.item.Label,
			PageID:    p.ID,
			PageTitle: p.Title,
			Path:      p.Path,
		})
	}
	return out
}

// FindDuplicatePaths groups pages by normalized path and reports every group
// with more than one page. Groups are ordered by first appearance.
func FindDuplicatePaths(pages *model.PageExportData) []model.DuplicatePath {
	out := make([]model.DuplicatePath, 0)
	if pages == nil {
		return out
	}

	groups := make(map[string][]model.Page)
	var order []string
	for _, p := range pages.Pages {
		key := NormalizePagePath(p.Path)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], p)
	}

	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}
		paths := make([]string, len(group))
		for i, p := range group {
			paths[i] = p.Path
		}
		out = append(out, model.DuplicatePath{
			NormalizedPath: key,
			Paths:          paths,
			Pages:          group,
		})
	}
	return out
}

// ComputeNavigationCoverage returns the share of pages reachable from the
// navigation. Coverage is 0 when there are no pages.
func ComputeNavigationCoverage(pages *model.PageExportData, nav *model.NavigationExportData) model.NavigationCoverage {
	idx := newSiteIndex(pages, nav)
	return coverage(len(idx.pages), len(idx.unlistedPages()))
}

func coverage(total, unlisted int) model.NavigationCoverage {
	in := total - unlisted
	c := model.NavigationCoverage{
		TotalPages:        total,
		PagesInNavigation: in,
	}
	if total > 0 {
		c.CoveragePercentage = float64(in) / float64(total) * 100
	}
	return c
}

// AnalyzeVisibility counts navigation links to existing pages by visibility.
// Restricted links add their page to the bucket of each of their groups.
func AnalyzeVisibility(pages *model.PageExportData, nav *model.NavigationExportData) *model.VisibilityAnalysis {
	idx := newSiteIndex(pages, nav)

	v := &model.VisibilityAnalysis{
		ByGroup: make(map[model.ID][]model.Page),
	}
	for _, l := range idx.links {
		p, ok := idx.lookup(l.item.Target)
		if !ok {
			continue
		}
		if l.item.IsPublic() {
			v.PublicPages++
			continue
		}
		v.RestrictedPages++
		for _, g := range l.item.VisibilityGroups {
			v.ByGroup[g] = append(v.ByGroup[g], p)
		}
	}
	return v
}
