package model

import "time"

// OrphanReason explains why a page is reported as orphaned.
type OrphanReason string

const (
	// ReasonPublishedNoLinks is a published page that no other page links to.
	ReasonPublishedNoLinks OrphanReason = "published_no_links"
	// ReasonUnpublishedNoLinks is an unpublished page that no other page links to.
	ReasonUnpublishedNoLinks OrphanReason = "unpublished_no_links"
)

// OrphanedPage is a page without any incoming link in the link graph.
type OrphanedPage struct {
	ID            ID           `json:"id"`
	Path          string       `json:"path"`
	Title         string       `json:"title"`
	IsPublished   bool         `json:"isPublished"`
	OutgoingLinks int          `json:"outgoingLinks"`
	Reason        OrphanReason `json:"reason"`
}

// OrphanAnalysisResult is the outcome of link-graph orphan detection.
type OrphanAnalysisResult struct {
	OrphanedPages []OrphanedPage `json:"orphanedPages"`
	TotalPages    int            `json:"totalPages"`
	AnalyzedAt    time.Time      `json:"analyzedAt"`
}
