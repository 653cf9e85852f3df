package goquery

import (
	"fmt"
	"math"
	"strings"

	"github.com/fwojciec/recipeprep"
)

// Ensure ContentFilterStrategy implements recipeprep.Strategy at compile time.
var _ recipeprep.Strategy = (*ContentFilterStrategy)(nil)

// ContentFilterStrategy strips generic page noise and keeps everything
// else. It is the last resort when no recipe structure is recognized.
type ContentFilterStrategy struct {
	minOutputSize int
}

// NewContentFilterStrategy creates a new ContentFilterStrategy.
func NewContentFilterStrategy(cfg recipeprep.ContentFilterConfig) *ContentFilterStrategy {
	return &ContentFilterStrategy{minOutputSize: cfg.MinOutputSize}
}

// Name returns the strategy's identifier.
func (s *ContentFilterStrategy) Name() recipeprep.StrategyName {
	return recipeprep.StrategyContentFilter
}

// Evaluate removes scripts, styles, navigation, footers, ads, embeds,
// hidden elements, comments and tracking attributes, then returns the
// remaining body markup. A rejected outcome still carries the filtered
// markup so the orchestrator can weigh it against the raw page.
func (s *ContentFilterStrategy) Evaluate(doc *recipeprep.Document) (*recipeprep.Outcome, error) {
	d, err := parse(doc.HTML)
	if err != nil {
		return nil, recipeprep.Errorf(recipeprep.EINVALID, "failed to parse HTML: %v", err)
	}

	stripNoise(d)
	d.FindMatcher(navigationMatcher).Remove()
	d.FindMatcher(embedMatcher).Remove()
	removeAds(d)

	body := d.Find("body")
	for _, n := range body.Nodes {
		collapseWhitespace(n)
	}
	out, err := body.Html()
	if err != nil {
		return nil, recipeprep.Errorf(recipeprep.EINTERNAL, "failed to render filtered HTML: %v", err)
	}
	out = strings.TrimSpace(out)

	size := recipeprep.Size(out)
	score := 100.0
	if s.minOutputSize > 0 {
		score = math.Min(100, float64(size)*100/float64(s.minOutputSize))
	}

	if size == 0 || size < s.minOutputSize {
		return &recipeprep.Outcome{
			HTML:   out,
			Score:  score,
			Reason: fmt.Sprintf("filtered output %d chars below %d", size, s.minOutputSize),
		}, nil
	}

	return &recipeprep.Outcome{
		Accepted: true,
		HTML:     out,
		Score:    score,
		Reason:   fmt.Sprintf("filtered output %d chars", size),
	}, nil
}
