package recipeprep

import (
	"context"
	"time"
)

// Excerpt formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Excerpt is a processed page ready to be handed downstream.
type Excerpt struct {
	SourceURL   string       `json:"sourceUrl"`
	ContentHash string       `json:"contentHash"`
	Format      string       `json:"format"`
	Content     string       `json:"content"`
	Strategy    StrategyName `json:"strategy"`
	Title       string       `json:"title,omitempty"`
	Sitename    string       `json:"sitename,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`

	OriginalSize int `json:"originalSize"`
	CleanedSize  int `json:"cleanedSize"`
}

// Validate returns an error if the excerpt contains invalid fields.
func (e *Excerpt) Validate() error {
	if e.ContentHash == "" {
		return Errorf(EINVALID, "excerpt content hash required")
	}
	switch e.Format {
	case FormatHTML, FormatMarkdown:
	default:
		return Errorf(EINVALID, "unsupported excerpt format %q", e.Format)
	}
	return nil
}

// ExcerptWriter writes excerpts to storage.
type ExcerptWriter interface {
	WriteExcerpt(ctx context.Context, ex *Excerpt) error
}

// ExcerptFilter represents a filter passed to FindExcerpts.
type ExcerptFilter struct {
	SourceURL *string
	Strategy  *StrategyName

	Offset int
	Limit  int
}

// ExcerptService reads back stored excerpts.
type ExcerptService interface {
	// FindExcerptByHash returns the excerpt with the given content hash.
	// Returns ENOTFOUND if it does not exist.
	FindExcerptByHash(ctx context.Context, hash string) (*Excerpt, error)

	// FindExcerpts returns excerpts matching the filter, newest first.
	FindExcerpts(ctx context.Context, filter ExcerptFilter) ([]*Excerpt, error)
}
