// Package http provides an HTTP-based implementation of ifacedoc.Fetcher
// for retrieving documentation pages. The pages are static HTML; no
// JavaScript rendering is needed.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/ifacedoc"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// userAgent identifies the crawler to the documentation host.
const userAgent = "ifacedoc/1.0 (+https://github.com/fwojciec/ifacedoc)"

// Ensure Fetcher implements ifacedoc.Fetcher at compile time.
var _ ifacedoc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Errors are classified so callers can tell a permanently missing page
// (ENOTFOUND, never retried) from a transient failure (EUNAVAILABLE).
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", ifacedoc.Errorf(ifacedoc.EINVALID, "building request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", ifacedoc.Errorf(ifacedoc.EUNAVAILABLE, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to read the body
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return "", ifacedoc.Errorf(ifacedoc.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return "", ifacedoc.Errorf(ifacedoc.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ifacedoc.Errorf(ifacedoc.EUNAVAILABLE, "reading body of %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
