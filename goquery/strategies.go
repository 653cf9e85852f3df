package goquery

import "github.com/fwojciec/recipeprep"

// NewStrategies returns the three goquery strategies configured from cfg,
// in chain order.
func NewStrategies(cfg recipeprep.Config) []recipeprep.Strategy {
	return []recipeprep.Strategy{
		NewStructuredDataStrategy(cfg.StructuredData),
		NewSectionStrategy(cfg.SectionBased),
		NewContentFilterStrategy(cfg.ContentFilter),
	}
}
