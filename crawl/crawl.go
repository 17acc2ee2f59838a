// Package crawl provides crawling orchestration. It coordinates interface
// discovery, fetching, extraction, and storage of interface records.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ifacedoc"
	"golang.org/x/sync/errgroup"
)

// DefaultLimit caps full-discovery crawls to keep runs against the live
// site bounded.
const DefaultLimit = 50

// Crawler orchestrates crawling an interface documentation site.
type Crawler struct {
	Fetcher     ifacedoc.Fetcher
	Extractor   ifacedoc.PageExtractor
	Discoverer  ifacedoc.Discoverer
	Hierarchy   ifacedoc.HierarchyLoader
	Interfaces  ifacedoc.InterfaceService
	RateLimiter ifacedoc.DomainLimiter

	// Concurrency is the number of pages processed in parallel.
	// Defaults to 1, which is polite to the single known host.
	Concurrency int

	// Limit caps the number of interfaces processed in discovery mode.
	// Defaults to DefaultLimit.
	Limit int

	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Saved      int
	Failed     int
	Properties int
	Methods    int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Name      string
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single interface page.
type pageResult struct {
	position int
	entry    ifacedoc.IndexEntry
	iface    *ifacedoc.Interface
	err      error
}

// CrawlAll discovers every interface linked from the index page and crawls
// up to Limit of them. The store is cleared first: a crawl run replaces
// prior state rather than merging with it.
func (c *Crawler) CrawlAll(ctx context.Context, indexURL string, progress ProgressFunc) (*Result, error) {
	markup, err := c.fetch(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("fetching index page: %w", err)
	}

	entries, err := c.Discoverer.DiscoverInterfaces(markup, indexURL)
	if err != nil {
		return nil, fmt.Errorf("discovering interfaces: %w", err)
	}

	limit := c.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return c.crawlEntries(ctx, entries, progress)
}

// CrawlNamed crawls a fixed set of named interfaces, deriving each page URL
// from the index page location and the known filename convention. The store
// is cleared first.
func (c *Crawler) CrawlNamed(ctx context.Context, indexURL string, names []string, progress ProgressFunc) (*Result, error) {
	base, err := url.Parse(indexURL)
	if err != nil {
		return nil, fmt.Errorf("invalid index URL: %w", err)
	}

	entries := make([]ifacedoc.IndexEntry, 0, len(names))
	for _, name := range names {
		ref := &url.URL{Path: "interface_" + name + ".htm"}
		entries = append(entries, ifacedoc.IndexEntry{
			Name: name,
			URL:  base.ResolveReference(ref).String(),
		})
	}

	return c.crawlEntries(ctx, entries, progress)
}

// crawlEntries processes the given entries: clear the store, load the
// hierarchy table once, then fetch and extract pages (concurrently when
// configured) and save the records in entry order. A page failure is
// counted and reported but never aborts the run.
func (c *Crawler) crawlEntries(ctx context.Context, entries []ifacedoc.IndexEntry, progress ProgressFunc) (*Result, error) {
	if err := c.Interfaces.DeleteAllInterfaces(ctx); err != nil {
		return nil, fmt.Errorf("clearing store: %w", err)
	}

	// Warm the hierarchy cache before workers start so they share one load
	// instead of racing to trigger it.
	if c.Hierarchy != nil {
		if _, err := c.Hierarchy.Load(ctx); err != nil && ctx.Err() != nil {
			return nil, err
		}
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	total := len(entries)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan pageResult, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, entry := range entries {
			i, entry := i, entry
			g.Go(func() error {
				result := c.processPage(gctx, i, entry)
				resultCh <- result
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, total)
	var result Result
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Completed: int(completed.Load()),
			Total:     total,
			Name:      r.entry.Name,
			URL:       r.entry.URL,
		}
		if r.err != nil {
			event.Type = ProgressFailed
			event.Error = r.err
		} else {
			event.Type = ProgressCompleted
		}
		progress(event)
	}

	// Save in entry order so re-runs produce identical stores.
	for _, r := range results {
		if r.err != nil {
			result.Failed++
			continue
		}
		if err := c.Interfaces.UpsertInterface(ctx, r.iface); err != nil {
			result.Failed++
			continue
		}
		result.Saved++
		result.Properties += len(r.iface.Properties)
		result.Methods += len(r.iface.Methods)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &result, nil
}

// processPage fetches and extracts a single interface page.
func (c *Crawler) processPage(ctx context.Context, position int, entry ifacedoc.IndexEntry) pageResult {
	result := pageResult{position: position, entry: entry}

	markup, err := c.fetch(ctx, entry.URL)
	if err != nil {
		result.err = err
		return result
	}

	iface, err := c.Extractor.Extract(ctx, markup, entry.Name, entry.URL)
	if err != nil {
		result.err = err
		return result
	}

	iface.ContentHash = computeHash(markup)
	result.iface = iface
	return result
}

// fetch applies the rate limit and retry policy around the Fetcher.
func (c *Crawler) fetch(ctx context.Context, rawURL string) (string, error) {
	if c.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", ifacedoc.Errorf(ifacedoc.EINVALID, "invalid url %q: %v", rawURL, err)
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, rawURL, c.Fetcher.Fetch, nil, delays)
}

// computeHash computes a hash of the content using xxhash.
func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}
