package mock

import "github.com/fwojciec/recipeprep"

var _ recipeprep.Converter = (*Converter)(nil)

// Converter is a mock implementation of recipeprep.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
