package model

import "encoding/json"

// PageSummary holds the precomputed page counts of an export.
type PageSummary struct {
	TotalPages       int `json:"totalPages"`
	PublishedPages   int `json:"publishedPages"`
	UnpublishedPages int `json:"unpublishedPages"`
}

// PageExportData is an immutable snapshot of all pages.
type PageExportData struct {
	// Pages is the ordered page list.
	Pages []Page `json:"pages"`

	// ExportedAt is the export timestamp as written by the exporter.
	ExportedAt string `json:"exportedAt"`

	// InstanceID labels the instance the export was taken from.
	InstanceID string `json:"instanceId,omitempty"`

	// Summary holds the page counts.
	Summary PageSummary `json:"summary"`
}

// NewPageExportData builds a page export and computes its summary.
func NewPageExportData(pages []Page, exportedAt, instanceID string) *PageExportData {
	summary := PageSummary{TotalPages: len(pages)}
	for _, p := range pages {
		if p.IsPublished {
			summary.PublishedPages++
		} else {
			summary.UnpublishedPages++
		}
	}
	return &PageExportData{
		Pages:      pages,
		ExportedAt: exportedAt,
		InstanceID: instanceID,
		Summary:    summary,
	}
}

// NavigationExportData is an immutable snapshot of the navigation.
type NavigationExportData struct {
	// Config is the navigation configuration object. It is carried through
	// untouched and never interpreted.
	Config json.RawMessage `json:"config,omitempty"`

	// Tree holds one navigation tree per locale.
	Tree []NavigationTree `json:"tree"`

	// ExportedAt is the export timestamp as written by the exporter.
	ExportedAt string `json:"exportedAt"`
}

// Snapshot pairs a page export with a navigation export taken together.
// Either half may be nil.
type Snapshot struct {
	Pages      *PageExportData       `json:"pages,omitempty"`
	Navigation *NavigationExportData `json:"navigation,omitempty"`
}
