package analyzer

import "github.com/nao1215/wikilens/internal/model"

// FlattenNavigation returns every link item with a non-empty target from
// items and all their descendants, depth-first with parents before children.
// Headers, dividers and target-less links are skipped but their children are
// still visited.
func FlattenNavigation(items []model.NavigationItem) []model.NavigationItem {
	var out []model.NavigationItem
	walkNavigation(items, func(item model.NavigationItem) {
		out = append(out, item)
	})
	return out
}

func walkNavigation(items []model.NavigationItem, fn func(model.NavigationItem)) {
	for _, item := range items {
		if item.Kind == model.NavigationKindLink && item.Target != "" {
			fn(item)
		}
		walkNavigation(item.Children, fn)
	}
}

// navLink is a flattened link together with the locale of its tree.
type navLink struct {
	item   model.NavigationItem
	locale string
}

// flattenTrees flattens every tree of the export in tree order.
func flattenTrees(nav *model.NavigationExportData) []navLink {
	if nav == nil {
		return nil
	}
	var out []navLink
	for _, tree := range nav.Tree {
		walkNavigation(tree.Items, func(item model.NavigationItem) {
			out = append(out, navLink{item: item, locale: tree.Locale})
		})
	}
	return out
}

// withoutChildren returns a copy of item that does not carry its subtree.
func withoutChildren(item model.NavigationItem) model.NavigationItem {
	item.Children = nil
	return item
}
