package mock

import (
	"context"

	"github.com/fwojciec/ifacedoc"
)

var _ ifacedoc.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of ifacedoc.PageExtractor.
type PageExtractor struct {
	ExtractFn func(ctx context.Context, markup, name, url string) (*ifacedoc.Interface, error)
}

func (e *PageExtractor) Extract(ctx context.Context, markup, name, url string) (*ifacedoc.Interface, error) {
	return e.ExtractFn(ctx, markup, name, url)
}

var _ ifacedoc.Discoverer = (*Discoverer)(nil)

// Discoverer is a mock implementation of ifacedoc.Discoverer.
type Discoverer struct {
	DiscoverInterfacesFn func(markup, baseURL string) ([]ifacedoc.IndexEntry, error)
}

func (d *Discoverer) DiscoverInterfaces(markup, baseURL string) ([]ifacedoc.IndexEntry, error) {
	return d.DiscoverInterfacesFn(markup, baseURL)
}
