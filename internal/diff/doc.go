// Package diff compares two snapshots of a site by stable identifiers.
//
// Pages are matched by page id and navigation links by item id after the
// navigation has been flattened. Path normalization is not involved: a page
// that moved keeps its id and shows up as modified, not as removed and added.
package diff
