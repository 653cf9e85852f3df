package mock

import "github.com/fwojciec/recipeprep"

var _ recipeprep.Preprocessor = (*Preprocessor)(nil)

// Preprocessor is a mock implementation of recipeprep.Preprocessor.
type Preprocessor struct {
	ProcessFn func(html string, sourceURL string) *recipeprep.Result
}

func (p *Preprocessor) Process(html string, sourceURL string) *recipeprep.Result {
	return p.ProcessFn(html, sourceURL)
}
