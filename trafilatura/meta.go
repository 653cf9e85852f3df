// Package trafilatura reads page metadata using go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/recipeprep"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure MetaExtractor implements recipeprep.MetaExtractor at compile time.
var _ recipeprep.MetaExtractor = (*MetaExtractor)(nil)

// MetaExtractor wraps go-trafilatura's metadata extraction. Titles come
// from meta tags, JSON-LD or the title element, whichever the page offers.
type MetaExtractor struct{}

// NewMetaExtractor creates a new MetaExtractor.
func NewMetaExtractor() *MetaExtractor {
	return &MetaExtractor{}
}

// ExtractMeta returns the page's title, author, site name and description.
func (e *MetaExtractor) ExtractMeta(rawHTML string) (*recipeprep.PageMeta, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, recipeprep.Errorf(recipeprep.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return nil, recipeprep.Errorf(recipeprep.EINVALID, "failed to extract metadata: %v", err)
	}

	return &recipeprep.PageMeta{
		Title:       strings.TrimSpace(result.Metadata.Title),
		Author:      strings.TrimSpace(result.Metadata.Author),
		Sitename:    strings.TrimSpace(result.Metadata.Sitename),
		Description: strings.TrimSpace(result.Metadata.Description),
	}, nil
}
