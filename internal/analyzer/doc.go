// Package analyzer implements the content-integrity checks of wikilens.
//
// Every function in this package is pure: it reads already-parsed exports,
// never mutates them and returns freshly allocated results. Calls can run
// concurrently without synchronization.
//
// The package provides:
//   - Path normalization for navigation matching and for link-graph matching
//   - Navigation flattening
//   - Structural analyzers (unlisted pages, broken links, title mismatches,
//     duplicate paths, navigation coverage, visibility)
//   - A weighted health score
//   - Link-graph orphan detection
//   - Glob-based filtering of findings
package analyzer
