package ifacedoc

import "context"

// Fetcher retrieves raw markup from URLs.
//
// Implementations classify failures with error codes so callers can tell a
// permanent miss (ENOTFOUND) from a transient network failure
// (EUNAVAILABLE). The core treats both as "skip this page and continue";
// retry policy, if any, belongs inside the Fetcher.
type Fetcher interface {
	// Fetch retrieves the markup at url. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (markup string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
