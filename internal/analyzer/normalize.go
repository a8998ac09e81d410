package analyzer

import "strings"

// NormalizePagePath canonicalizes a page path or navigation target for
// navigation matching and duplicate grouping.
//
// The path is lower-cased and trimmed, a literal "/en/" prefix is removed,
// then a single leading slash is removed. Other locale prefixes are kept.
func NormalizePagePath(path string) string {
	p := strings.ToLower(strings.TrimSpace(path))
	if strings.HasPrefix(p, "/en/") {
		p = p[4:]
	}
	return strings.TrimPrefix(p, "/")
}

// NormalizePathForLinkMatching canonicalizes a path for the link graph.
//
// The path is lower-cased and trimmed, a single leading slash is removed,
// any two-letter locale prefix ("en/", "de/", ...) is removed, and finally a
// single trailing slash is removed.
func NormalizePathForLinkMatching(path string) string {
	p := strings.ToLower(strings.TrimSpace(path))
	p = strings.TrimPrefix(p, "/")
	if hasLocalePrefix(p) {
		p = p[3:]
	}
	return strings.TrimSuffix(p, "/")
}

// hasLocalePrefix reports whether s starts with two lower-case ASCII letters
// followed by a slash.
func hasLocalePrefix(s string) bool {
	return len(s) >= 3 &&
		isLowerASCII(s[0]) &&
		isLowerASCII(s[1]) &&
		s[2] == '/'
}

func isLowerASCII(b byte) bool {
	return b >= 'a' && b <= 'z'
}
