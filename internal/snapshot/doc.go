// Package snapshot reads and writes the JSON exports wikilens works on.
//
// Every document is checked against an embedded JSON Schema before it is
// decoded, so the analysis engine only ever sees well-formed exports. The
// package also computes content fingerprints used to de-duplicate snapshots
// in the history database.
package snapshot
