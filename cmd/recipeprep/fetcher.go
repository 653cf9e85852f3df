package main

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/recipeprep"
)

// Ensure sourceFetcher implements recipeprep.Fetcher at compile time.
var _ recipeprep.Fetcher = (*sourceFetcher)(nil)

// sourceFetcher sends http(s) URLs to the web fetcher and everything else
// to the file fetcher.
type sourceFetcher struct {
	web   recipeprep.Fetcher
	files recipeprep.Fetcher
}

func (f *sourceFetcher) Fetch(ctx context.Context, source string) (string, error) {
	if isWebURL(source) {
		return f.web.Fetch(ctx, source)
	}
	return f.files.Fetch(ctx, source)
}

func (f *sourceFetcher) Close() error {
	return errors.Join(f.web.Close(), f.files.Close())
}

func isWebURL(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
