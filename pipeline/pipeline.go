// Package pipeline runs the extraction strategies in priority order and
// decides which excerpt, if any, replaces the raw page.
package pipeline

import (
	"fmt"
	"sort"

	"github.com/fwojciec/recipeprep"
)

// Ensure Pipeline implements recipeprep.Preprocessor at compile time.
var _ recipeprep.Preprocessor = (*Pipeline)(nil)

// strategyRank fixes the chain order regardless of how strategies are passed in.
var strategyRank = map[recipeprep.StrategyName]int{
	recipeprep.StrategyStructuredData: 0,
	recipeprep.StrategySectionBased:   1,
	recipeprep.StrategyContentFilter:  2,
}

// Pipeline is the orchestrator. It holds only read-only state, so a single
// Pipeline may serve concurrent calls.
type Pipeline struct {
	config     recipeprep.Config
	strategies []recipeprep.Strategy
	metrics    recipeprep.Metrics
}

// New creates a Pipeline. Strategies are ordered structured data, section
// based, content filter; strategies with other names run afterwards in
// the order given. metrics may be nil.
func New(config recipeprep.Config, strategies []recipeprep.Strategy, metrics recipeprep.Metrics) *Pipeline {
	ordered := make([]recipeprep.Strategy, len(strategies))
	copy(ordered, strategies)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rank(ordered[i]) < rank(ordered[j])
	})

	return &Pipeline{
		config:     config,
		strategies: ordered,
		metrics:    metrics,
	}
}

func rank(s recipeprep.Strategy) int {
	if r, ok := strategyRank[s.Name()]; ok {
		return r
	}
	return len(strategyRank)
}

// Process reduces rawHTML to an excerpt. It never fails and never panics:
// strategy errors become rejections and metric failures are ignored.
func (p *Pipeline) Process(rawHTML string, sourceURL string) *recipeprep.Result {
	result := p.process(rawHTML, sourceURL)
	p.emit(result)
	return result
}

func (p *Pipeline) process(rawHTML, sourceURL string) *recipeprep.Result {
	if !p.config.Enabled {
		return recipeprep.NewResult(recipeprep.StrategyDisabled, sourceURL, rawHTML, rawHTML)
	}
	if rawHTML == "" {
		return recipeprep.NewResult(recipeprep.StrategyFallback, sourceURL, "", "")
	}

	doc := &recipeprep.Document{HTML: rawHTML, SourceURL: sourceURL}

	var bestEffort *recipeprep.Outcome
	for _, s := range p.strategies {
		if !p.config.StrategyEnabled(s.Name()) {
			continue
		}

		outcome := evaluate(s, doc)
		if outcome.Accepted && shrinks(doc, outcome) {
			return outcomeResult(s.Name(), doc, outcome)
		}
		if s.Name() == recipeprep.StrategyContentFilter {
			bestEffort = outcome
		}
	}

	// Every strategy rejected. A filtered page that is still above the
	// safe floor beats sending the raw page downstream.
	if bestEffort != nil && bestEffort.HTML != "" && shrinks(doc, bestEffort) &&
		recipeprep.Size(bestEffort.HTML) >= p.config.Fallback.MinSafeSize {
		return outcomeResult(recipeprep.StrategyContentFilter, doc, bestEffort)
	}

	return recipeprep.NewResult(recipeprep.StrategyFallback, sourceURL, rawHTML, rawHTML)
}

// shrinks reports whether the outcome is smaller than the document. Only
// the fallback may return output as large as its input.
func shrinks(doc *recipeprep.Document, outcome *recipeprep.Outcome) bool {
	return recipeprep.Size(outcome.HTML) < doc.Size()
}

func outcomeResult(name recipeprep.StrategyName, doc *recipeprep.Document, outcome *recipeprep.Outcome) *recipeprep.Result {
	r := recipeprep.NewResult(name, doc.SourceURL, doc.HTML, outcome.HTML)
	r.Score = outcome.Score
	r.Reason = outcome.Reason
	return r
}

// evaluate runs one strategy, turning errors and panics into rejections.
func evaluate(s recipeprep.Strategy, doc *recipeprep.Document) (outcome *recipeprep.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = recipeprep.Reject(0, fmt.Sprintf("strategy panicked: %v", r))
		}
	}()

	o, err := s.Evaluate(doc)
	if err != nil {
		return recipeprep.Reject(0, fmt.Sprintf("strategy failed: %v", err))
	}
	if o == nil {
		return recipeprep.Reject(0, "strategy returned no outcome")
	}
	return o
}

// emit sends the per-call metrics. Each emission is isolated so one
// failing call does not suppress the others.
func (p *Pipeline) emit(r *recipeprep.Result) {
	if p.metrics == nil {
		return
	}
	names := p.config.Metrics
	safely(func() error {
		return p.metrics.IncrementCounter(names.StrategyCounter, map[string]string{
			recipeprep.StrategyTag: string(r.Strategy),
		})
	})
	safely(func() error {
		return p.metrics.ObserveDistribution(names.OriginalSizeDist, float64(r.OriginalSize))
	})
	safely(func() error {
		return p.metrics.ObserveDistribution(names.CleanedSizeDist, float64(r.CleanedSize))
	})
}

func safely(fn func() error) {
	defer func() { _ = recover() }()
	_ = fn()
}
