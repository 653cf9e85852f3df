package mock

import (
	"context"

	"github.com/fwojciec/recipeprep"
)

var _ recipeprep.Metrics = (*Metrics)(nil)

// Metrics is a mock implementation of recipeprep.Metrics.
type Metrics struct {
	IncrementCounterFn    func(name string, tags map[string]string) error
	ObserveDistributionFn func(name string, value float64) error
}

func (m *Metrics) IncrementCounter(name string, tags map[string]string) error {
	return m.IncrementCounterFn(name, tags)
}

func (m *Metrics) ObserveDistribution(name string, value float64) error {
	return m.ObserveDistributionFn(name, value)
}

var _ recipeprep.MetricsService = (*MetricsService)(nil)

// MetricsService is a mock implementation of recipeprep.MetricsService.
type MetricsService struct {
	CounterTotalsFn         func(ctx context.Context, name, tag string) (map[string]int, error)
	SummarizeDistributionFn func(ctx context.Context, name string) (*recipeprep.DistributionSummary, error)
}

func (s *MetricsService) CounterTotals(ctx context.Context, name, tag string) (map[string]int, error) {
	return s.CounterTotalsFn(ctx, name, tag)
}

func (s *MetricsService) SummarizeDistribution(ctx context.Context, name string) (*recipeprep.DistributionSummary, error) {
	return s.SummarizeDistributionFn(ctx, name)
}
