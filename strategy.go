package recipeprep

// StrategyName identifies which step of the chain produced a Result.
type StrategyName string

// StrategyName constants in chain order. FALLBACK and DISABLED are owned by
// the orchestrator rather than by a Strategy implementation.
const (
	StrategyStructuredData StrategyName = "STRUCTURED_DATA"
	StrategySectionBased   StrategyName = "SECTION_BASED"
	StrategyContentFilter  StrategyName = "CONTENT_FILTER"
	StrategyFallback       StrategyName = "FALLBACK"
	StrategyDisabled       StrategyName = "DISABLED"
)

// Outcome is a strategy's verdict on a document.
type Outcome struct {
	// Accepted reports whether the strategy met its own threshold.
	Accepted bool `json:"accepted"`

	// HTML is the candidate excerpt. It may be set on a rejected outcome
	// as a best-effort result (the content filter does this).
	HTML string `json:"html"`

	// Score is strategy-local on a 0-100 scale and is never compared
	// across strategies.
	Score float64 `json:"score"`

	// Reason is a short explanation of the verdict.
	Reason string `json:"reason"`
}

// Reject returns a rejected outcome with the given reason.
func Reject(score float64, reason string) *Outcome {
	return &Outcome{Score: score, Reason: reason}
}

// Strategy is one candidate extraction algorithm.
type Strategy interface {
	// Name returns the strategy identifier reported in results and metrics.
	Name() StrategyName

	// Evaluate inspects the document and proposes an excerpt.
	// An error is treated by the orchestrator as a rejection.
	Evaluate(doc *Document) (*Outcome, error)
}
