package diff

import (
	"slices"
	"time"

	"github.com/nao1215/wikilens/internal/analyzer"
	"github.com/nao1215/wikilens/internal/model"
)

// Option configures a comparison.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the function used to stamp the comparison time.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Compare lists the differences between an older and a newer snapshot.
//
// The page half is computed only when both snapshots carry pages, and the
// navigation half only when both carry navigation; a missing half leaves its
// lists empty. Added and modified entries follow the order of the new
// snapshot, removed entries the order of the old one.
func Compare(before, after model.Snapshot, opts ...Option) *model.ExportDiffResult {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	result := &model.ExportDiffResult{
		PagesAdded:       make([]model.Page, 0),
		PagesRemoved:     make([]model.Page, 0),
		PagesModified:    make([]model.PageModification, 0),
		NavItemsAdded:    make([]model.NavigationItem, 0),
		NavItemsRemoved:  make([]model.NavigationItem, 0),
		NavItemsModified: make([]model.NavItemModification, 0),
		ComparedAt:       o.now(),
	}

	if before.Pages != nil && after.Pages != nil {
		comparePages(result, before.Pages.Pages, after.Pages.Pages)
	}
	if before.Navigation != nil && after.Navigation != nil {
		compareNavigation(result, flatten(before.Navigation), flatten(after.Navigation))
	}

	pageChanges := len(result.PagesAdded) + len(result.PagesRemoved) + len(result.PagesModified)
	navChanges := len(result.NavItemsAdded) + len(result.NavItemsRemoved) + len(result.NavItemsModified)
	result.Summary = model.DiffSummary{
		TotalChanges: pageChanges + navChanges,
		PageChanges:  pageChanges,
		NavChanges:   navChanges,
	}
	return result
}

// ComparePages diffs two page exports.
func ComparePages(before, after *model.PageExportData, opts ...Option) *model.ExportDiffResult {
	return Compare(model.Snapshot{Pages: before}, model.Snapshot{Pages: after}, opts...)
}

// CompareNavigation diffs two navigation exports.
func CompareNavigation(before, after *model.NavigationExportData, opts ...Option) *model.ExportDiffResult {
	return Compare(model.Snapshot{Navigation: before}, model.Snapshot{Navigation: after}, opts...)
}

func comparePages(result *model.ExportDiffResult, oldPages, newPages []model.Page) {
	oldByID := indexPages(oldPages)
	newByID := indexPages(newPages)

	seen := make(map[model.ID]struct{}, len(newPages))
	for _, p := range newPages {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}

		before, ok := oldByID[p.ID]
		if !ok {
			result.PagesAdded = append(result.PagesAdded, p)
			continue
		}
		if changes := pageChanges(before, p); len(changes) > 0 {
			result.PagesModified = append(result.PagesModified, model.PageModification{
				ID:      p.ID,
				Before:  before,
				After:   p,
				Changes: changes,
			})
		}
	}

	clear(seen)
	for _, p := range oldPages {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		if _, ok := newByID[p.ID]; !ok {
			result.PagesRemoved = append(result.PagesRemoved, p)
		}
	}
}

func pageChanges(before, after model.Page) []string {
	var changes []string
	if before.Title != after.Title {
		changes = append(changes, model.FieldTitle)
	}
	if before.Path != after.Path {
		changes = append(changes, model.FieldPath)
	}
	if before.IsPublished != after.IsPublished {
		changes = append(changes, model.FieldIsPublished)
	}
	return changes
}

func compareNavigation(result *model.ExportDiffResult, oldItems, newItems []model.NavigationItem) {
	oldByID := indexItems(oldItems)
	newByID := indexItems(newItems)

	seen := make(map[model.ID]struct{}, len(newItems))
	for _, item := range newItems {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}

		before, ok := oldByID[item.ID]
		if !ok {
			result.NavItemsAdded = append(result.NavItemsAdded, item)
			continue
		}
		if changes := navItemChanges(before, item); len(changes) > 0 {
			result.NavItemsModified = append(result.NavItemsModified, model.NavItemModification{
				ID:      item.ID,
				Before:  before,
				After:   item,
				Changes: changes,
			})
		}
	}

	clear(seen)
	for _, item := range oldItems {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		if _, ok := newByID[item.ID]; !ok {
			result.NavItemsRemoved = append(result.NavItemsRemoved, item)
		}
	}
}

func navItemChanges(before, after model.NavigationItem) []string {
	var changes []string
	if before.Label != after.Label {
		changes = append(changes, model.FieldLabel)
	}
	if before.Target != after.Target {
		changes = append(changes, model.FieldTarget)
	}
	if before.Icon != after.Icon {
		changes = append(changes, model.FieldIcon)
	}
	if !sameGroups(before.VisibilityGroups, after.VisibilityGroups) {
		changes = append(changes, model.FieldVisibilityGroups)
	}
	return changes
}

// sameGroups compares group lists element by element. A nil list and an
// empty list are equal since both mean "public".
func sameGroups(a, b []model.ID) bool {
	return slices.Equal(a, b)
}

// flatten returns the link items of every locale tree without their children.
func flatten(nav *model.NavigationExportData) []model.NavigationItem {
	var out []model.NavigationItem
	for _, tree := range nav.Tree {
		for _, item := range analyzer.FlattenNavigation(tree.Items) {
			item.Children = nil
			out = append(out, item)
		}
	}
	return out
}

// indexPages maps ids to pages. The first page wins for repeated ids.
func indexPages(pages []model.Page) map[model.ID]model.Page {
	m := make(map[model.ID]model.Page, len(pages))
	for _, p := range pages {
		if _, ok := m[p.ID]; !ok {
			m[p.ID] = p
		}
	}
	return m
}

// indexItems maps ids to navigation items. The first item wins for repeated ids.
func indexItems(items []model.NavigationItem) map[model.ID]model.NavigationItem {
	m := make(map[model.ID]model.NavigationItem, len(items))
	for _, item := range items {
		if _, ok := m[item.ID]; !ok {
			m[item.ID] = item
		}
	}
	return m
}
