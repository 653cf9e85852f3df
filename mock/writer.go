package mock

import (
	"context"

	"github.com/fwojciec/recipeprep"
)

var _ recipeprep.ExcerptWriter = (*ExcerptWriter)(nil)

// ExcerptWriter is a mock implementation of recipeprep.ExcerptWriter.
type ExcerptWriter struct {
	WriteExcerptFn func(ctx context.Context, ex *recipeprep.Excerpt) error
}

func (w *ExcerptWriter) WriteExcerpt(ctx context.Context, ex *recipeprep.Excerpt) error {
	return w.WriteExcerptFn(ctx, ex)
}

var _ recipeprep.ExcerptService = (*ExcerptService)(nil)

// ExcerptService is a mock implementation of recipeprep.ExcerptService.
type ExcerptService struct {
	FindExcerptByHashFn func(ctx context.Context, hash string) (*recipeprep.Excerpt, error)
	FindExcerptsFn      func(ctx context.Context, filter recipeprep.ExcerptFilter) ([]*recipeprep.Excerpt, error)
}

func (s *ExcerptService) FindExcerptByHash(ctx context.Context, hash string) (*recipeprep.Excerpt, error) {
	return s.FindExcerptByHashFn(ctx, hash)
}

func (s *ExcerptService) FindExcerpts(ctx context.Context, filter recipeprep.ExcerptFilter) ([]*recipeprep.Excerpt, error) {
	return s.FindExcerptsFn(ctx, filter)
}
