// Package readability reads page metadata using go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/recipeprep"
	"github.com/go-shiori/go-readability"
)

// Ensure MetaExtractor implements recipeprep.MetaExtractor at compile time.
var _ recipeprep.MetaExtractor = (*MetaExtractor)(nil)

// MetaExtractor wraps go-readability. Readability's byline and excerpt are
// reported as the author and description.
type MetaExtractor struct{}

// NewMetaExtractor creates a new MetaExtractor.
func NewMetaExtractor() *MetaExtractor {
	return &MetaExtractor{}
}

// ExtractMeta returns the page's title, byline, site name and excerpt.
func (e *MetaExtractor) ExtractMeta(rawHTML string) (*recipeprep.PageMeta, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, recipeprep.Errorf(recipeprep.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, recipeprep.Errorf(recipeprep.EINVALID, "failed to parse page: %v", err)
	}

	return &recipeprep.PageMeta{
		Title:       strings.TrimSpace(article.Title),
		Author:      strings.TrimSpace(article.Byline),
		Sitename:    strings.TrimSpace(article.SiteName),
		Description: strings.TrimSpace(article.Excerpt),
	}, nil
}
