package mock

import "github.com/fwojciec/recipeprep"

var _ recipeprep.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of recipeprep.Strategy.
type Strategy struct {
	NameFn     func() recipeprep.StrategyName
	EvaluateFn func(doc *recipeprep.Document) (*recipeprep.Outcome, error)
}

func (s *Strategy) Name() recipeprep.StrategyName {
	return s.NameFn()
}

func (s *Strategy) Evaluate(doc *recipeprep.Document) (*recipeprep.Outcome, error) {
	return s.EvaluateFn(doc)
}
