package recipeprep

import "context"

// Metrics receives the per-call observations emitted by the pipeline.
// Emission is fire-and-forget: the pipeline ignores returned errors.
type Metrics interface {
	// IncrementCounter adds one to the named counter.
	IncrementCounter(name string, tags map[string]string) error

	// ObserveDistribution records one value of the named distribution.
	ObserveDistribution(name string, value float64) error
}

// DistributionSummary aggregates the observations of one distribution.
type DistributionSummary struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
}

// MetricsService reads back metrics that were persisted by a Metrics sink.
type MetricsService interface {
	// CounterTotals returns the named counter's totals grouped by the value
	// of the given tag.
	CounterTotals(ctx context.Context, name, tag string) (map[string]int, error)

	// SummarizeDistribution aggregates the named distribution.
	// Returns ENOTFOUND if nothing was recorded under the name.
	SummarizeDistribution(ctx context.Context, name string) (*DistributionSummary, error)
}

// StrategyTag is the tag carrying the strategy name on the strategy counter.
const StrategyTag = "strategy"
