package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

// Small node-walking vocabulary over the x/net/html tree that goquery
// exposes. Each extraction rule is built from these so the rules stay
// independent of one another.

// isElement reports whether n is an element with the given tag.
func isElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// nodeText returns the concatenated text content of n's subtree.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// firstDescendant returns the first node in pre-order for which pred is
// true, or nil.
func firstDescendant(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstDescendant(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// siblingsUntil collects the siblings following start, stopping before the
// first one for which stop is true. A nil stop collects to the end.
func siblingsUntil(start *html.Node, stop func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for n := start.NextSibling; n != nil; n = n.NextSibling {
		if stop != nil && stop(n) {
			break
		}
		out = append(out, n)
	}
	return out
}

// collapseWhitespace folds runs of whitespace into single spaces and trims.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ensurePeriod appends a trailing period to non-empty text.
func ensurePeriod(s string) string {
	if s != "" && !strings.HasSuffix(s, ".") {
		return s + "."
	}
	return s
}

// truncate shortens s to at most limit runes, appending the ellipsis marker
// when it does. Shorter strings pass through untouched.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
