// Package model defines the data structures shared across wikilens.
//
// This package contains the following main groups of types:
//   - Page, NavigationItem, NavigationTree, PageLinkItem: the content site as exported
//   - PageExportData, NavigationExportData, Snapshot: exported snapshots
//   - AnalysisResult, VisibilityAnalysis, HealthScore: structural analysis findings
//   - OrphanAnalysisResult: link-graph orphan findings
//   - ExportDiffResult: changes between two snapshots
//
// The models are kept free of behavior beyond small helpers so that every
// other package (analyzer, diff, report, database) can depend on them without
// import cycles. All types serialize to the same JSON shape the site exports.
package model
