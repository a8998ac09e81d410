package analyzer

import (
	"strings"

	"github.com/nao1215/wikilens/internal/model"
)

// excludedOrphanPaths are normalized paths never reported as orphaned.
var excludedOrphanPaths = map[string]struct{}{
	"":     {},
	"home": {},
}

// excludedOrphanPrefixes cover sections reached through generated listings
// that a static link scrape does not see.
var excludedOrphanPrefixes = []string{
	"news/",
	"blog/",
	"archive/",
}

// linkNode is one page in the link graph.
type linkNode struct {
	incoming map[string]struct{}
	outgoing int
}

// linkGraph maps a normalized path to its node.
type linkGraph map[string]*linkNode

func buildLinkGraph(pages []model.Page, links []model.PageLinkItem) linkGraph {
	g := make(linkGraph, len(pages))
	for _, p := range pages {
		g[NormalizePathForLinkMatching(p.Path)] = &linkNode{
			incoming: make(map[string]struct{}),
		}
	}

	for _, item := range links {
		source := NormalizePathForLinkMatching(item.Path)
		internal := internalLinks(item.Links)
		if node, ok := g[source]; ok {
			node.outgoing = len(internal)
		}

		for _, link := range internal {
			if i := strings.IndexByte(link, '#'); i >= 0 {
				link = link[:i]
			}
			target, ok := g[NormalizePathForLinkMatching(link)]
			if !ok {
				continue
			}
			target.incoming[source] = struct{}{}
		}
	}
	return g
}

// internalLinks drops external URLs, mail links, same-page anchors and blank
// entries, keeping the order of the remaining links.
func internalLinks(links []string) []string {
	out := make([]string, 0, len(links))
	for _, link := range links {
		l := strings.TrimSpace(link)
		if l == "" || isExternalLink(l) || strings.HasPrefix(l, "#") {
			continue
		}
		out = append(out, l)
	}
	return out
}

func isExternalLink(link string) bool {
	lower := strings.ToLower(link)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "mailto:")
}

// isExcludedFromOrphans reports whether a normalized path is exempt.
func isExcludedFromOrphans(path string) bool {
	if _, ok := excludedOrphanPaths[path]; ok {
		return true
	}
	for _, prefix := range excludedOrphanPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// DetectOrphans builds the page link graph from links and reports every page
// that no page links to. The navigation plays no part in this analysis.
func DetectOrphans(pages []model.Page, links []model.PageLinkItem, opts ...Option) *model.OrphanAnalysisResult {
	o := newOptions(opts)
	analyzedAt := o.now()

	g := buildLinkGraph(pages, links)
	orphans := make([]model.OrphanedPage, 0)
	for _, p := range pages {
		path := NormalizePathForLinkMatching(p.Path)
		if isExcludedFromOrphans(path) {
			continue
		}
		node := g[path]
		if len(node.incoming) > 0 {
			continue
		}
		reason := model.ReasonUnpublishedNoLinks
		if p.IsPublished {
			reason = model.ReasonPublishedNoLinks
		}
		orphans = append(orphans, model.OrphanedPage{
			ID:            p.ID,
			Path:          p.Path,
			Title:         p.Title,
			IsPublished:   p.IsPublished,
			OutgoingLinks: node.outgoing,
			Reason:        reason,
		})
	}

	return &model.OrphanAnalysisResult{
		OrphanedPages: orphans,
		TotalPages:    len(pages),
		AnalyzedAt:    analyzedAt,
	}
}
