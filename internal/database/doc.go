// Package database provides SQLite-based history storage for wikilens.
//
// The HistoryDB stores:
//   - Snapshots: page and navigation exports per instance, de-duplicated by
//     content fingerprint against the previous snapshot of the instance
//   - Analysis runs: the health score, the issue counts and the full result
//     of every analysis, linked to the snapshot they were computed from
//
// The history backs "wikilens compare" when it is asked to diff the latest
// snapshots of an instance instead of two export files.
//
// SQLite is accessed through modernc.org/sqlite, a CGO-free driver, so the
// database is a single file in the XDG data directory.
package database
