// Package main provides the entry point for the wikilens CLI.
//
// wikilens analyzes exported snapshots of a wiki (pages plus navigation
// tree) for content integrity issues, and compares snapshots over time.
//
// Usage:
//
//	wikilens analyze --pages pages.json --nav navigation.json
//	wikilens orphans --pages pages.json --links links.json
//	wikilens compare --old-pages a.json --new-pages b.json
//
// See --help for all available options.
package main

// main is the entry point for wikilens.
func main() {
	Execute()
}
