package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ifacedoc"
	"github.com/fwojciec/ifacedoc/bloom"
)

// Discoverer finds interface page links on an index page. Discovery is
// flat: it never follows the links it finds.
type Discoverer struct{}

// NewDiscoverer returns a new Discoverer.
func NewDiscoverer() *Discoverer {
	return &Discoverer{}
}

var _ ifacedoc.Discoverer = (*Discoverer)(nil)

// interfacePagePrefix and interfacePageSuffix describe the generator's
// filename convention for interface pages.
const (
	interfacePagePrefix = "interface_"
	interfacePageSuffix = ".htm"
)

// DiscoverInterfaces parses an index page and returns the interface pages
// it links to, in document order, deduplicated and with references
// resolved against the page's own location.
func (d *Discoverer) DiscoverInterfaces(markup, baseURL string) ([]ifacedoc.IndexEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, ifacedoc.Errorf(ifacedoc.EINVALID, "parse index page: %v", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, ifacedoc.Errorf(ifacedoc.EINVALID, "parse base url %q: %v", baseURL, err)
	}

	seen := bloom.NewFilter(4096, 0.001)
	var entries []ifacedoc.IndexEntry
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		name, ok := interfaceName(href)
		if !ok {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref).String()
		if seen.TestAndAdd(abs) {
			return
		}
		entries = append(entries, ifacedoc.IndexEntry{Name: name, URL: abs})
	})
	return entries, nil
}

// interfaceName reports whether href points at an interface page under the
// filename convention, and if so which interface it documents.
func interfaceName(href string) (string, bool) {
	file := path.Base(strings.SplitN(href, "#", 2)[0])
	if !strings.HasPrefix(file, interfacePagePrefix) || !strings.HasSuffix(file, interfacePageSuffix) {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(file, interfacePagePrefix), interfacePageSuffix)
	if name == "" {
		return "", false
	}
	return name, true
}
