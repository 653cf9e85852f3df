package recipeprep

import "context"

// Fetcher retrieves raw HTML from URLs. Fetching happens before the
// pipeline is called; the pipeline itself never performs I/O.
type Fetcher interface {
	// Fetch returns the body of the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
