package slog

import (
	"log/slog"

	"github.com/fwojciec/recipeprep"
)

// Ensure Metrics implements recipeprep.Metrics.
var _ recipeprep.Metrics = (*Metrics)(nil)

// Metrics is a metrics sink that writes every emission to a logger.
// It is used when no persistent sink is configured.
type Metrics struct {
	logger *slog.Logger
}

// NewMetrics creates a new Metrics sink.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{logger: logger}
}

// IncrementCounter logs a counter increment.
func (m *Metrics) IncrementCounter(name string, tags map[string]string) error {
	attrs := []any{"name", name}
	for k, v := range tags {
		attrs = append(attrs, slog.String("tag."+k, v))
	}
	m.logger.Debug("metric counter", attrs...)
	return nil
}

// ObserveDistribution logs a distribution observation.
func (m *Metrics) ObserveDistribution(name string, value float64) error {
	m.logger.Debug("metric distribution", "name", name, "value", value)
	return nil
}

// Ensure MultiMetrics implements recipeprep.Metrics.
var _ recipeprep.Metrics = (MultiMetrics)(nil)

// MultiMetrics fans every emission out to several sinks. The first error
// is returned after all sinks have been called.
type MultiMetrics []recipeprep.Metrics

// IncrementCounter forwards to every sink.
func (m MultiMetrics) IncrementCounter(name string, tags map[string]string) error {
	var first error
	for _, sink := range m {
		if err := sink.IncrementCounter(name, tags); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ObserveDistribution forwards to every sink.
func (m MultiMetrics) ObserveDistribution(name string, value float64) error {
	var first error
	for _, sink := range m {
		if err := sink.ObserveDistribution(name, value); err != nil && first == nil {
			first = err
		}
	}
	return first
}
