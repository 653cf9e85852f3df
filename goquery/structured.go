package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/recipeprep"
)

// Ensure StructuredDataStrategy implements recipeprep.Strategy at compile time.
var _ recipeprep.Strategy = (*StructuredDataStrategy)(nil)

var scriptTypeMatcher = cascadia.MustCompile("script[type]")

// StructuredDataStrategy extracts an embedded schema.org Recipe block
// (JSON-LD) and scores how complete it is.
type StructuredDataStrategy struct {
	minCompleteness float64
}

// NewStructuredDataStrategy creates a new StructuredDataStrategy.
func NewStructuredDataStrategy(cfg recipeprep.StructuredDataConfig) *StructuredDataStrategy {
	return &StructuredDataStrategy{minCompleteness: float64(cfg.MinCompleteness)}
}

// Name returns the strategy's identifier.
func (s *StructuredDataStrategy) Name() recipeprep.StrategyName {
	return recipeprep.StrategyStructuredData
}

// Evaluate looks through every JSON-LD block for Recipe entries and keeps
// the most complete one. Malformed blocks are skipped; if every block is
// malformed an EINVALID error is returned.
func (s *StructuredDataStrategy) Evaluate(doc *recipeprep.Document) (*recipeprep.Outcome, error) {
	d, err := parse(doc.HTML)
	if err != nil {
		return nil, recipeprep.Errorf(recipeprep.EINVALID, "failed to parse HTML: %v", err)
	}

	var (
		best      ldEntry
		bestScore float64
		blocks    int
		malformed int
	)
	d.FindMatcher(scriptTypeMatcher).Each(func(_ int, sel *goquery.Selection) {
		typ, _ := sel.Attr("type")
		if !strings.Contains(strings.ToLower(typ), "ld+json") {
			return
		}
		blocks++

		payload, err := parseLD(sel.Text())
		if err != nil {
			malformed++
			return
		}
		for _, entry := range payload.entries() {
			if !entry.isRecipe() {
				continue
			}
			if score := entry.completeness(); best == nil || score > bestScore {
				best, bestScore = entry, score
			}
		}
	})

	if best == nil {
		if blocks > 0 && malformed == blocks {
			return nil, recipeprep.Errorf(recipeprep.EINVALID, "malformed structured data in %d block(s)", malformed)
		}
		return recipeprep.Reject(0, fmt.Sprintf("no recipe entry in %d structured data block(s)", blocks)), nil
	}

	if bestScore < s.minCompleteness {
		return recipeprep.Reject(bestScore, fmt.Sprintf("completeness %.0f below %.0f", bestScore, s.minCompleteness)), nil
	}

	compact, err := best.compact()
	if err != nil {
		return nil, recipeprep.Errorf(recipeprep.EINTERNAL, "failed to serialize structured data: %v", err)
	}

	return &recipeprep.Outcome{
		Accepted: true,
		HTML:     `<script type="application/ld+json">` + compact + `</script>`,
		Score:    bestScore,
		Reason:   fmt.Sprintf("recipe structured data %.0f%% complete", bestScore),
	}, nil
}
