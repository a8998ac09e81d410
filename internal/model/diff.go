package model

import "time"

// Fields compared between two versions of a page or navigation item.
const (
	FieldTitle            = "title"
	FieldPath             = "path"
	FieldIsPublished      = "isPublished"
	FieldLabel            = "label"
	FieldTarget           = "target"
	FieldIcon             = "icon"
	FieldVisibilityGroups = "visibilityGroups"
)

// PageModification is a page present in both snapshots with changed fields.
type PageModification struct {
	ID      ID       `json:"id"`
	Before  Page     `json:"before"`
	After   Page     `json:"after"`
	Changes []string `json:"changes"`
}

// NavItemModification is a navigation link present in both snapshots with
// changed fields. Before and After carry the item without its children.
type NavItemModification struct {
	ID      ID             `json:"id"`
	Before  NavigationItem `json:"before"`
	After   NavigationItem `json:"after"`
	Changes []string       `json:"changes"`
}

// DiffSummary counts the changes of a snapshot comparison.
type DiffSummary struct {
	TotalChanges int `json:"totalChanges"`
	PageChanges  int `json:"pageChanges"`
	NavChanges   int `json:"navChanges"`
}

// ExportDiffResult lists the differences between an old and a new snapshot.
type ExportDiffResult struct {
	PagesAdded       []Page                `json:"pagesAdded"`
	PagesRemoved     []Page                `json:"pagesRemoved"`
	PagesModified    []PageModification    `json:"pagesModified"`
	NavItemsAdded    []NavigationItem      `json:"navItemsAdded"`
	NavItemsRemoved  []NavigationItem      `json:"navItemsRemoved"`
	NavItemsModified []NavItemModification `json:"navItemsModified"`
	Summary          DiffSummary           `json:"summary"`
	ComparedAt       time.Time             `json:"comparedAt"`
}

// HasChanges reports whether the comparison found any difference.
func (r *ExportDiffResult) HasChanges() bool {
	return r.Summary.TotalChanges > 0
}
