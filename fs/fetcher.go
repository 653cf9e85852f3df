package fs

import (
	"context"
	"errors"
	"net/url"
	"os"

	"github.com/fwojciec/recipeprep"
)

// Ensure Fetcher implements recipeprep.Fetcher at compile time.
var _ recipeprep.Fetcher = (*Fetcher)(nil)

// Fetcher reads saved pages from local files. It accepts plain paths and
// file:// URLs.
type Fetcher struct{}

// NewFetcher creates a new Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// Fetch returns the contents of the file at location.
func (f *Fetcher) Fetch(ctx context.Context, location string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := location
	if u, err := url.Parse(location); err == nil && u.Scheme == "file" {
		path = u.Path
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", recipeprep.Errorf(recipeprep.ENOTFOUND, "file not found: %s", path)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
