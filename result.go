package recipeprep

import "fmt"

// Result is what the pipeline returns to its caller.
type Result struct {
	Strategy       StrategyName `json:"strategy"`
	SourceURL      string       `json:"sourceUrl"`
	OriginalSize   int          `json:"originalSize"`
	CleanedSize    int          `json:"cleanedSize"`
	ReductionRatio float64      `json:"reductionRatio"`
	CleanedHTML    string       `json:"cleanedHtml"`
	MetricsMessage string       `json:"metricsMessage"`

	// Score and Reason come from the deciding strategy's Outcome.
	// They are empty for FALLBACK and DISABLED.
	Score  float64 `json:"score,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

// NewResult builds a Result for the given strategy, deriving sizes, the
// reduction ratio and the metrics message from the two documents.
func NewResult(strategy StrategyName, sourceURL, original, cleaned string) *Result {
	r := &Result{
		Strategy:     strategy,
		SourceURL:    sourceURL,
		OriginalSize: Size(original),
		CleanedSize:  Size(cleaned),
		CleanedHTML:  cleaned,
	}
	r.ReductionRatio = ReductionRatio(r.OriginalSize, r.CleanedSize)
	r.MetricsMessage = r.summary()
	return r
}

// ReductionRatio returns the fraction of the original size removed.
// It is zero when the original is empty.
func ReductionRatio(originalSize, cleanedSize int) float64 {
	if originalSize == 0 {
		return 0
	}
	return float64(originalSize-cleanedSize) / float64(originalSize)
}

func (r *Result) summary() string {
	return fmt.Sprintf("%s: %d → %d chars (%.1f%% reduction)",
		r.Strategy, r.OriginalSize, r.CleanedSize, r.ReductionRatio*100)
}

// Preprocessor turns a raw page into a compact excerpt.
type Preprocessor interface {
	// Process never fails: every input, however degenerate, yields a Result.
	// An empty html yields FALLBACK with an empty excerpt.
	Process(html string, sourceURL string) *Result
}
