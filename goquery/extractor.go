// Package goquery provides HTML extraction for interface documentation
// pages. It implements ifacedoc.PageExtractor and ifacedoc.Discoverer on
// top of PuerkitoBio/goquery and the x/net/html node tree.
//
// The source format is a fixed, known generator, but individual pages are
// loosely structured, so every field is extracted by its own best-effort
// rule: a rule that fails logs a warning and yields an empty value without
// disturbing the others.
package goquery

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ifacedoc"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var _ ifacedoc.PageExtractor = (*Extractor)(nil)

// Extractor turns one page's markup into a normalized interface record.
// The hierarchy loader is an injected dependency so tests can supply a
// fixed table and concurrent extraction can share one cached load.
type Extractor struct {
	hierarchy ifacedoc.HierarchyLoader
	logger    *slog.Logger
}

// NewExtractor creates an Extractor. The logger may be nil.
func NewExtractor(hierarchy ifacedoc.HierarchyLoader, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{hierarchy: hierarchy, logger: logger}
}

// Extract parses the markup of the named interface's page. Sub-extractions
// are independently best-effort; only a page that cannot be parsed at all
// returns an error, which callers treat as "skip this page".
func (e *Extractor) Extract(ctx context.Context, markup, name, url string) (*ifacedoc.Interface, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, ifacedoc.Errorf(ifacedoc.EINVALID, "parsing page %s: %v", url, err)
	}

	pageText := doc.Text()
	category := extractCategory(pageText, name)

	region := descriptionRegion(doc)
	role := extractRole(region)
	description := extractDescription(region)

	properties := e.extractProperties(markup, doc)
	methods := e.extractMethods(markup, doc)

	var hierarchy []string
	table, err := e.hierarchy.Load(ctx)
	if err != nil {
		e.logger.Warn("hierarchy load failed", "interface", name, "err", err)
	} else {
		hierarchy = table.Resolve(name)
	}

	return &ifacedoc.Interface{
		Name:         name,
		Category:     category,
		Description:  description,
		Role:         role,
		Hierarchy:    hierarchy,
		IsCollection: ifacedoc.DeriveCollection(category, name),
		SourceURL:    url,
		Properties:   properties,
		Methods:      methods,
	}, nil
}

// extractCategory determines the interface category. A "collection" keyword
// anywhere in the page text wins; otherwise an explicit parenthesized
// annotation after the interface name is used; otherwise "Object".
func extractCategory(pageText, name string) string {
	if strings.Contains(strings.ToLower(pageText), "collection") {
		return ifacedoc.CategoryCollection
	}

	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(name) + `\s+\(([^)]+)\)`)
	if err != nil {
		return ifacedoc.CategoryObject
	}
	if m := re.FindStringSubmatch(pageText); m != nil {
		if annotation := strings.TrimSpace(m[1]); annotation != "" {
			return capitalize(annotation)
		}
	}

	return ifacedoc.CategoryObject
}

// descriptionRegion returns the top-level nodes between the first and
// second horizontal rules, where the generator places the interface's
// summary and role text. Returns nil when the page has fewer than two.
func descriptionRegion(doc *goquery.Document) []*html.Node {
	hrs := doc.Find("hr").Nodes
	if len(hrs) < 2 {
		return nil
	}
	return siblingsUntil(hrs[0], func(n *html.Node) bool { return n == hrs[1] || isElement(n, "hr") })
}

// extractRole finds the bolded "Role:" label in the region and concatenates
// the sibling text and link content that follows it into one normalized
// sentence. A missing label yields "".
func extractRole(region []*html.Node) string {
	labelIdx := -1
	for i, n := range region {
		if !isElement(n, "b") {
			continue
		}
		text := strings.ToLower(strings.TrimSpace(nodeText(n)))
		if text == "role:" || text == "role" {
			labelIdx = i
			break
		}
	}
	if labelIdx == -1 {
		return ""
	}

	var parts []string
	for _, n := range region[labelIdx+1:] {
		switch {
		case n.Type == html.TextNode:
			if text := strings.TrimSpace(n.Data); len(text) > 1 {
				parts = append(parts, text)
			}
		case n.Type == html.ElementNode:
			if text := strings.TrimSpace(nodeText(n)); len(text) > 1 {
				parts = append(parts, text)
			}
		}
	}

	role := collapseWhitespace(strings.Join(parts, " "))
	role = strings.TrimLeft(role, ": ")
	// Short remnants are noise from the generator, not a real role sentence.
	if len(role) <= 15 {
		return ""
	}
	return ensurePeriod(role)
}

// extractDescription collects only the emphasized (bold/italic) text in the
// region, skipping the "Role:" label, and strips parenthesized
// cross-references when the parentheses balance.
func extractDescription(region []*html.Node) string {
	var parts []string
	for _, n := range region {
		if !isElement(n, "b") && !isElement(n, "i") {
			continue
		}
		text := strings.TrimSpace(nodeText(n))
		if len(text) <= 3 {
			continue
		}
		if isElement(n, "b") {
			if lower := strings.ToLower(text); lower == "role:" || lower == "role" {
				continue
			}
		}
		parts = append(parts, text)
	}
	if len(parts) == 0 {
		return ""
	}

	description := strings.Join(parts, " ")

	// Cross-references like "(see AnyObject)" are removed only when the
	// parentheses balance; unbalanced text is left untouched.
	if strings.Count(description, "(") == strings.Count(description, ")") {
		description = parenRefRe.ReplaceAllString(description, " ")
	}

	return ensurePeriod(collapseWhitespace(description))
}

var parenRefRe = regexp.MustCompile(`\s*\([^)]*\)\s*`)

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
