package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ifacedoc"
	"golang.org/x/net/html"
)

// Output bounds per page. The index blocks of the known generator never
// legitimately exceed these; anything longer is extraction noise.
const (
	maxProperties = 15
	maxMethods    = 20

	propertyDescriptionLimit = 300
	methodDescriptionLimit   = 200
)

// Index anchors and the headings that terminate an index block.
const (
	propertyIndexAnchor = "PropertyIndex"
	methodIndexAnchor   = "MethodIndex"
)

var propertyStopHeadings = []string{"Method Index", "Example", "Returns"}
var methodStopHeadings = []string{"Property Index", "Example", "Returns"}

// indexEntry is one (name, anchor, description) triple recovered from an
// index block, before it is shaped into a Property or Method.
type indexEntry struct {
	name        string
	anchor      string
	description string
}

// The overlapping extraction variants are an explicit ordered strategy
// chain: each strategy is tried in turn and the first non-empty result
// wins. Strategies are pure functions of the page.
type propertyStrategy func(raw string, doc *goquery.Document) []*ifacedoc.Property
type methodStrategy func(raw string, doc *goquery.Document) []*ifacedoc.Method

// extractProperties runs the property strategy chain and applies the
// per-page cap and description bound.
func (e *Extractor) extractProperties(raw string, doc *goquery.Document) []*ifacedoc.Property {
	strategies := []propertyStrategy{
		detailedProperties,
		structuredProperties,
		simpleProperties,
		segmentedProperties,
	}

	var properties []*ifacedoc.Property
	for _, strategy := range strategies {
		if properties = strategy(raw, doc); len(properties) > 0 {
			break
		}
	}

	if len(properties) > maxProperties {
		properties = properties[:maxProperties]
	}
	for _, p := range properties {
		p.Description = truncate(p.Description, propertyDescriptionLimit)
	}
	return properties
}

// extractMethods runs the method strategy chain and applies the per-page
// cap and description bound.
func (e *Extractor) extractMethods(raw string, doc *goquery.Document) []*ifacedoc.Method {
	strategies := []methodStrategy{
		detailedMethods,
		structuredMethods,
		segmentedMethods,
	}

	var methods []*ifacedoc.Method
	for _, strategy := range strategies {
		if methods = strategy(raw, doc); len(methods) > 0 {
			break
		}
	}

	if len(methods) > maxMethods {
		methods = methods[:maxMethods]
	}
	for _, m := range methods {
		m.Description = truncate(m.Description, methodDescriptionLimit)
		if m.Signature == "" {
			m.Signature = m.Name + "()"
		}
	}
	return methods
}

// structuredProperties extracts (name, description) pairs from the
// PropertyIndex definition-term block.
func structuredProperties(_ string, doc *goquery.Document) []*ifacedoc.Property {
	entries := indexEntries(doc, propertyIndexAnchor, propertyStopHeadings)
	properties := make([]*ifacedoc.Property, 0, len(entries))
	for _, entry := range entries {
		properties = append(properties, &ifacedoc.Property{
			Name:        entry.name,
			Type:        "Unknown",
			Access:      ifacedoc.AccessUnknown,
			Description: entry.description,
			Anchor:      entry.anchor,
		})
	}
	return properties
}

// structuredMethods extracts (name, description) pairs from the MethodIndex
// definition-term block.
func structuredMethods(_ string, doc *goquery.Document) []*ifacedoc.Method {
	entries := indexEntries(doc, methodIndexAnchor, methodStopHeadings)
	methods := make([]*ifacedoc.Method, 0, len(entries))
	for _, entry := range entries {
		methods = append(methods, &ifacedoc.Method{
			Name:        entry.name,
			Description: entry.description,
		})
	}
	return methods
}

// indexEntries locates the named anchor, walks forward through sibling
// markup to the first definition-term block, and pairs each link with the
// definition-description that follows it. The walk stops at a heading for
// another section.
func indexEntries(doc *goquery.Document, anchorName string, stopHeadings []string) []indexEntry {
	sel := doc.Find(`a[name="` + anchorName + `"]`)
	if len(sel.Nodes) == 0 {
		return nil
	}
	anchor := sel.Nodes[0]
	if anchor.Parent == nil {
		return nil
	}

	// The anchor sits inside the section heading; the definition block is
	// among the heading's following siblings.
	var firstDT *html.Node
	for _, sibling := range siblingsUntil(anchor.Parent, stopHeading(stopHeadings)) {
		if dt := firstDescendant(sibling, func(n *html.Node) bool { return isElement(n, "dt") }); dt != nil {
			firstDT = dt
			break
		}
	}
	if firstDT == nil {
		return nil
	}

	// dt and dd are siblings after parsing. Each dd's text describes the
	// oldest entry still waiting for one, which preserves source order.
	var entries []indexEntry
	pending := 0 // index of the first entry without a description
	for n := firstDT; n != nil; n = n.NextSibling {
		if stopHeading(stopHeadings)(n) {
			break
		}
		switch {
		case isElement(n, "dt"):
			for _, link := range descendantLinks(n) {
				name := strings.TrimSpace(nodeText(link))
				if len(name) < 2 {
					continue
				}
				entries = append(entries, indexEntry{
					name:   name,
					anchor: strings.TrimPrefix(attr(link, "href"), "#"),
				})
			}
		case isElement(n, "dd"):
			if pending < len(entries) {
				entries[pending].description = collapseWhitespace(nodeText(n))
				pending++
			}
		}
	}
	return entries
}

// stopHeading returns a predicate matching h2/h3 headings whose text names
// one of the given sections.
func stopHeading(headings []string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if !isElement(n, "h2") && !isElement(n, "h3") {
			return false
		}
		text := nodeText(n)
		for _, h := range headings {
			if strings.Contains(text, h) {
				return true
			}
		}
		return false
	}
}

// segmentedProperties recovers properties from flat index text by
// segmenting on description trigger words.
func segmentedProperties(_ string, doc *goquery.Document) []*ifacedoc.Property {
	entries := segmentedEntries(doc, propertyIndexAnchor, propertyStopHeadings)
	properties := make([]*ifacedoc.Property, 0, len(entries))
	for _, entry := range entries {
		properties = append(properties, &ifacedoc.Property{
			Name:        entry.name,
			Type:        "Unknown",
			Access:      ifacedoc.AccessUnknown,
			Description: entry.description,
			Anchor:      entry.name,
		})
	}
	return properties
}

// segmentedMethods recovers methods from flat index text by segmenting on
// description trigger words.
func segmentedMethods(_ string, doc *goquery.Document) []*ifacedoc.Method {
	entries := segmentedEntries(doc, methodIndexAnchor, methodStopHeadings)
	methods := make([]*ifacedoc.Method, 0, len(entries))
	for _, entry := range entries {
		methods = append(methods, &ifacedoc.Method{
			Name:        entry.name,
			Description: entry.description,
		})
	}
	return methods
}

// triggerRe matches "Name TriggerWord" at the start of an index sentence.
// The trigger words are the verbs the generator uses to open every entry
// description.
var triggerRe = regexp.MustCompile(`([A-Za-z_]\w*)\s+(Returns|Sets|Gets|Creates|Adds|Removes|Retrieves)\b`)

// segmentedEntries slices the flat text after the index anchor into
// entries, one per trigger-word match. The description of each entry runs
// from its trigger word to the start of the next entry.
func segmentedEntries(doc *goquery.Document, anchorName string, stopHeadings []string) []indexEntry {
	sel := doc.Find(`a[name="` + anchorName + `"]`)
	if len(sel.Nodes) == 0 || sel.Nodes[0].Parent == nil {
		return nil
	}

	var sb strings.Builder
	for _, sibling := range siblingsUntil(sel.Nodes[0].Parent, stopHeading(stopHeadings)) {
		sb.WriteString(nodeText(sibling))
		sb.WriteString(" ")
	}
	text := collapseWhitespace(sb.String())

	matches := triggerRe.FindAllStringSubmatchIndex(text, -1)
	entries := make([]indexEntry, 0, len(matches))
	for i, m := range matches {
		name := text[m[2]:m[3]]
		descStart := m[4]
		descEnd := len(text)
		if i+1 < len(matches) {
			descEnd = matches[i+1][0]
		}
		entries = append(entries, indexEntry{
			name:        name,
			anchor:      name,
			description: strings.TrimSpace(text[descStart:descEnd]),
		})
	}
	return entries
}

// descendantLinks returns all anchor elements under n in document order.
func descendantLinks(n *html.Node) []*html.Node {
	var links []*html.Node
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if isElement(c, "a") {
			links = append(links, c)
			return
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}
	return links
}
