package ifacedoc

import "context"

// PageExtractor turns one documentation page's markup into a normalized
// interface record with embedded property and method lists.
//
// Extraction is best-effort per field: a failed sub-extraction (role,
// description, index block, hierarchy) yields an empty value for that field
// only, never an error for the whole record. An error return means the page
// as a whole could not be processed; callers skip it and continue.
type PageExtractor interface {
	// Extract parses one page. The context covers the lazy hierarchy
	// table load an implementation may perform on first use.
	Extract(ctx context.Context, markup, name, url string) (*Interface, error)
}

// Discoverer parses an index page's link list into the set of interfaces to
// crawl. Discovery is flat: it never recurses into linked pages, since the
// source site's index is assumed complete.
type Discoverer interface {
	// DiscoverInterfaces returns deduplicated entries for links matching
	// the interface page naming convention, with relative references
	// resolved against baseURL. Document order is preserved.
	DiscoverInterfaces(markup, baseURL string) ([]IndexEntry, error)
}
