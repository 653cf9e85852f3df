package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/recipeprep"
)

// Ensure LoggingStrategy implements recipeprep.Strategy.
var _ recipeprep.Strategy = (*LoggingStrategy)(nil)

// LoggingStrategy wraps a Strategy with debug logging of every verdict.
type LoggingStrategy struct {
	next   recipeprep.Strategy
	logger *slog.Logger
}

// NewLoggingStrategy creates a new LoggingStrategy.
func NewLoggingStrategy(next recipeprep.Strategy, logger *slog.Logger) *LoggingStrategy {
	return &LoggingStrategy{next: next, logger: logger}
}

// WrapStrategies wraps each strategy in a LoggingStrategy.
func WrapStrategies(strategies []recipeprep.Strategy, logger *slog.Logger) []recipeprep.Strategy {
	wrapped := make([]recipeprep.Strategy, len(strategies))
	for i, s := range strategies {
		wrapped[i] = NewLoggingStrategy(s, logger)
	}
	return wrapped
}

// Name delegates to the wrapped strategy.
func (s *LoggingStrategy) Name() recipeprep.StrategyName {
	return s.next.Name()
}

// Evaluate delegates to the wrapped strategy and logs the outcome.
func (s *LoggingStrategy) Evaluate(doc *recipeprep.Document) (outcome *recipeprep.Outcome, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"strategy", string(s.next.Name()),
			"url", doc.SourceURL,
			"duration", time.Since(begin),
		}
		if outcome != nil {
			attrs = append(attrs,
				"accepted", outcome.Accepted,
				"score", outcome.Score,
				"reason", outcome.Reason,
			)
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		s.logger.Debug("strategy", attrs...)
	}(time.Now())
	return s.next.Evaluate(doc)
}
