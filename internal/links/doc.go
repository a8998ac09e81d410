// Package links extracts outgoing page links from rendered page HTML.
//
// It produces the per-page link records consumed by orphan detection when a
// dedicated link export is not available but the page export carries the
// rendered HTML of each page.
//
// Links are kept as written in the document. The only rewrite is for
// absolute URLs that point at the site itself (see WithSiteURL), which are
// reduced to their path so they count as internal links.
package links
