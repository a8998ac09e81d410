package links

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/wikilens/internal/model"
)

// Extractor collects anchor targets from HTML documents.
type Extractor struct {
	// site is the public URL of the wiki. Absolute links to this host are
	// rewritten to their path. Nil disables the rewrite.
	site *url.URL
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithSiteURL sets the public URL of the wiki, e.g. "https://docs.example.com".
func WithSiteURL(raw string) Option {
	return func(e *Extractor) error {
		if raw == "" {
			return nil
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid site URL %q: %w", raw, err)
		}
		if u.Host == "" {
			return fmt.Errorf("invalid site URL %q: missing host", raw)
		}
		e.site = u
		return nil
	}
}

// NewExtractor creates an Extractor.
func NewExtractor(opts ...Option) (*Extractor, error) {
	e := &Extractor{}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// ExtractLinks returns the href of every <a> element in document order.
// Empty hrefs and javascript: pseudo links are skipped.
func (e *Extractor) ExtractLinks(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := e.normalizeHref(getAttr(n, "href")); href != "" {
				out = append(out, href)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return out, nil
}

// BuildLinkItems extracts the links of every page. Pages without rendered
// HTML get a record with no links, so they still take part in the graph as
// link targets.
func (e *Extractor) BuildLinkItems(pages []model.Page) ([]model.PageLinkItem, error) {
	items := make([]model.PageLinkItem, 0, len(pages))
	for _, p := range pages {
		item := model.PageLinkItem{
			ID:    p.ID,
			Path:  p.Path,
			Title: p.Title,
			Links: make([]string, 0),
		}
		if p.Render != "" {
			found, err := e.ExtractLinks(strings.NewReader(p.Render))
			if err != nil {
				return nil, fmt.Errorf("failed to parse rendered HTML of page %s: %w", p.ID, err)
			}
			item.Links = found
		}
		items = append(items, item)
	}
	return items, nil
}

func (e *Extractor) normalizeHref(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return ""
	}
	if e.site == nil {
		return href
	}

	u, err := url.Parse(href)
	if err != nil || !u.IsAbs() || !strings.EqualFold(u.Host, e.site.Host) {
		return href
	}

	rel := u.EscapedPath()
	if rel == "" {
		rel = "/"
	}
	if u.Fragment != "" {
		rel += "#" + u.Fragment
	}
	return rel
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
