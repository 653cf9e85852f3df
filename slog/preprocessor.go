package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/recipeprep"
)

// Ensure LoggingPreprocessor implements recipeprep.Preprocessor.
var _ recipeprep.Preprocessor = (*LoggingPreprocessor)(nil)

// LoggingPreprocessor wraps a Preprocessor with one log line per page.
type LoggingPreprocessor struct {
	next   recipeprep.Preprocessor
	logger *slog.Logger
}

// NewLoggingPreprocessor creates a new LoggingPreprocessor.
func NewLoggingPreprocessor(next recipeprep.Preprocessor, logger *slog.Logger) *LoggingPreprocessor {
	return &LoggingPreprocessor{next: next, logger: logger}
}

// Process delegates to the wrapped preprocessor and logs the decision.
func (p *LoggingPreprocessor) Process(html string, sourceURL string) *recipeprep.Result {
	begin := time.Now()
	result := p.next.Process(html, sourceURL)
	p.logger.Info("preprocess",
		"url", sourceURL,
		"strategy", string(result.Strategy),
		"original", result.OriginalSize,
		"cleaned", result.CleanedSize,
		"reduction", result.ReductionRatio,
		"duration", time.Since(begin),
	)
	return result
}
