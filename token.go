package recipeprep

import "context"

// TokenCounter counts model tokens in text, used to report how much an
// excerpt saves compared to the raw page.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
