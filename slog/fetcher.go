package slog

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/recipeprep"
)

// Ensure LoggingFetcher implements recipeprep.Fetcher.
var _ recipeprep.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every page download with its size in characters and
// whether the page carries a JSON-LD block.
type LoggingFetcher struct {
	next   recipeprep.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next recipeprep.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher. Failures are logged at warn
// level with their error code.
func (f *LoggingFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, rawURL)
	elapsed := time.Since(begin)

	if err != nil {
		f.logger.Warn("fetch failed",
			"host", hostOf(rawURL),
			"url", rawURL,
			"code", recipeprep.ErrorCode(err),
			"duration", elapsed,
			"err", err,
		)
		return "", err
	}

	f.logger.Info("fetch",
		"host", hostOf(rawURL),
		"url", rawURL,
		"chars", recipeprep.Size(html),
		"ldjson", strings.Contains(html, "application/ld+json"),
		"duration", elapsed,
	)
	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// hostOf returns the URL's host, or "local" for file paths.
func hostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return u.Host
	}
	return "local"
}
