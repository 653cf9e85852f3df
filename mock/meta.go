package mock

import "github.com/fwojciec/recipeprep"

var _ recipeprep.MetaExtractor = (*MetaExtractor)(nil)

// MetaExtractor is a mock implementation of recipeprep.MetaExtractor.
type MetaExtractor struct {
	ExtractMetaFn func(html string) (*recipeprep.PageMeta, error)
}

func (e *MetaExtractor) ExtractMeta(html string) (*recipeprep.PageMeta, error) {
	return e.ExtractMetaFn(html)
}
