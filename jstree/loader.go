// Package jstree loads the interface hierarchy lookup tables from the
// documentation site's navigation-tree script resource.
//
// The script is a flat list of assignment statements in two families:
//
//	fatherLink["child"] = "parent";
//	father["child"] = "<a ...>r1.Parent</a>";
//
// The loader matches these with literal patterns rather than interpreting
// the script language. It fetches and parses the resource at most once per
// process; the resulting table is shared read-only for the crawl's lifetime.
package jstree

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/beevik/etree"
	"github.com/fwojciec/ifacedoc"
)

// namespacePrefix decorates display names in the script's link fragments.
const namespacePrefix = "r1."

// Assignment statement patterns. Mismatched quotes fail the match, so a
// malformed line is skipped rather than half-parsed.
var (
	parentKeyRe  = regexp.MustCompile(`fatherLink\[\s*"([^"]+)"\s*\]\s*=\s*"([^"]+)"\s*;`)
	parentNameRe = regexp.MustCompile(`(?m)^\s*father\[\s*"([^"]+)"\s*\]\s*=\s*"(.*)"\s*;`)
)

// Compile-time interface verification.
var _ ifacedoc.HierarchyLoader = (*Loader)(nil)

// Loader fetches and caches the hierarchy table.
type Loader struct {
	fetcher ifacedoc.Fetcher
	url     string
	logger  *slog.Logger

	once  sync.Once
	table *ifacedoc.HierarchyTable
}

// NewLoader creates a Loader that reads the script resource at url through
// the given fetcher. The logger may be nil.
func NewLoader(fetcher ifacedoc.Fetcher, url string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fetcher: fetcher, url: url, logger: logger}
}

// Load returns the hierarchy table, fetching and parsing the script resource
// on the first call. A fetch failure is non-fatal: Load logs a warning and
// caches an empty table, so hierarchy resolution degrades to empty chains
// while the rest of the crawl proceeds.
func (l *Loader) Load(ctx context.Context) (*ifacedoc.HierarchyTable, error) {
	l.once.Do(func() {
		script, err := l.fetcher.Fetch(ctx, l.url)
		if err != nil {
			l.logger.Warn("hierarchy table unavailable, chains will be empty",
				"url", l.url,
				"err", err,
			)
			l.table = &ifacedoc.HierarchyTable{
				ParentKeyOf:  map[string]string{},
				ParentNameOf: map[string]string{},
			}
			return
		}
		l.table = ParseTable(script)
		l.logger.Info("hierarchy table loaded",
			"url", l.url,
			"relationships", len(l.table.ParentKeyOf),
		)
	})
	return l.table, nil
}

// ParseTable extracts the two lookup mappings from the script text.
// Malformed entries are skipped; a single bad line never fails the table.
func ParseTable(script string) *ifacedoc.HierarchyTable {
	table := &ifacedoc.HierarchyTable{
		ParentKeyOf:  make(map[string]string),
		ParentNameOf: make(map[string]string),
	}

	for _, m := range parentKeyRe.FindAllStringSubmatch(script, -1) {
		table.ParentKeyOf[m[1]] = m[2]
	}

	for _, m := range parentNameRe.FindAllStringSubmatch(script, -1) {
		name, ok := displayName(m[2])
		if !ok {
			continue
		}
		table.ParentNameOf[m[1]] = name
	}

	return table
}

// displayName extracts the parent's display name from a link-like markup
// fragment and strips the namespace prefix. Returns false for fragments
// that don't parse or carry no text.
func displayName(fragment string) (string, bool) {
	// The script escapes quotes inside the string literal.
	fragment = strings.ReplaceAll(fragment, `\"`, `"`)

	doc := etree.NewDocument()
	if err := doc.ReadFromString(fragment); err != nil {
		return "", false
	}
	link := doc.FindElement("//a")
	if link == nil {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(link.Text()), namespacePrefix))
	if name == "" {
		return "", false
	}
	return name, true
}
