package model

// Page is a single content page of the site.
// Within one export identifiers are unique but paths are not.
type Page struct {
	// ID is the stable page identifier.
	ID ID `json:"id"`

	// Path is the slash-delimited page path. It may carry a locale segment
	// such as "/en/docs/setup".
	Path string `json:"path"`

	// Title is the human readable page title.
	Title string `json:"title"`

	// Locale is the page locale code (e.g. "en").
	Locale string `json:"locale"`

	// IsPublished reports whether the page is publicly published.
	IsPublished bool `json:"isPublished"`

	// IsPrivate marks pages restricted to their author.
	IsPrivate bool `json:"isPrivate,omitempty"`

	// Tags is the optional tag list.
	Tags []string `json:"tags,omitempty"`

	// Render is the rendered HTML of the page, when the export includes it.
	// It is only used to extract outgoing links for orphan analysis.
	Render string `json:"render,omitempty"`
}

// PageLinkItem is the outgoing-link record of one page.
// Links are raw strings and may include external URLs, mail links and
// same-page anchors.
type PageLinkItem struct {
	ID    ID       `json:"id"`
	Path  string   `json:"path"`
	Title string   `json:"title"`
	Links []string `json:"links"`
}
