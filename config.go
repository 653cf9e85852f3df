package recipeprep

// Default configuration values.
const (
	DefaultMinCompleteness = 70
	DefaultMinConfidence   = 70
	DefaultMinSectionScore = 30
	DefaultMinOutputSize   = 300
	DefaultMinSafeSize     = 100

	DefaultStrategyCounter  = "preprocess.strategy"
	DefaultOriginalSizeDist = "preprocess.original_size"
	DefaultCleanedSizeDist  = "preprocess.cleaned_size"
)

// DefaultKeywords are the terms the section-based strategy looks for.
var DefaultKeywords = []string{
	"ingredients",
	"ingredient",
	"instructions",
	"directions",
	"preparation",
	"method",
	"recipe",
	"steps",
	"cook",
	"bake",
}

// Config is the process-wide pipeline configuration.
// It is built once at startup and never mutated afterwards.
type Config struct {
	Enabled        bool                 `json:"enabled"`
	StructuredData StructuredDataConfig `json:"structuredData"`
	SectionBased   SectionBasedConfig   `json:"sectionBased"`
	ContentFilter  ContentFilterConfig  `json:"contentFilter"`
	Fallback       FallbackConfig       `json:"fallback"`
	Metrics        MetricsConfig        `json:"metrics"`
}

// StructuredDataConfig configures the embedded-metadata strategy.
type StructuredDataConfig struct {
	Enabled bool `json:"enabled"`

	// MinCompleteness is the percentage (0-100) of expected recipe fields
	// a metadata block must carry to be accepted.
	MinCompleteness int `json:"minCompleteness"`
}

// SectionBasedConfig configures the heading/list section strategy.
type SectionBasedConfig struct {
	Enabled bool `json:"enabled"`

	// MinConfidence is the combined score (0-100) the matched sections
	// must reach to be accepted.
	MinConfidence int `json:"minConfidence"`

	// MinSectionScore is the score (0-100) a single section needs to be
	// included in the excerpt at all.
	MinSectionScore int `json:"minSectionScore"`

	// Keywords are matched case-insensitively against section text.
	Keywords []string `json:"keywords"`
}

// ContentFilterConfig configures the generic noise-stripping strategy.
type ContentFilterConfig struct {
	Enabled bool `json:"enabled"`

	// MinOutputSize is the smallest filtered document, in characters,
	// the strategy accepts.
	MinOutputSize int `json:"minOutputSize"`
}

// FallbackConfig configures the orchestrator's terminal fallback.
type FallbackConfig struct {
	// MinSafeSize is the smallest best-effort content-filter output, in
	// characters, that is still preferred over returning the raw page.
	MinSafeSize int `json:"minSafeSize"`
}

// MetricsConfig names the metrics emitted on every call.
type MetricsConfig struct {
	StrategyCounter  string `json:"strategyCounter"`
	OriginalSizeDist string `json:"originalSizeDist"`
	CleanedSizeDist  string `json:"cleanedSizeDist"`
}

// DefaultConfig returns a configuration with every strategy enabled.
func DefaultConfig() Config {
	keywords := make([]string, len(DefaultKeywords))
	copy(keywords, DefaultKeywords)

	return Config{
		Enabled: true,
		StructuredData: StructuredDataConfig{
			Enabled:         true,
			MinCompleteness: DefaultMinCompleteness,
		},
		SectionBased: SectionBasedConfig{
			Enabled:         true,
			MinConfidence:   DefaultMinConfidence,
			MinSectionScore: DefaultMinSectionScore,
			Keywords:        keywords,
		},
		ContentFilter: ContentFilterConfig{
			Enabled:       true,
			MinOutputSize: DefaultMinOutputSize,
		},
		Fallback: FallbackConfig{
			MinSafeSize: DefaultMinSafeSize,
		},
		Metrics: MetricsConfig{
			StrategyCounter:  DefaultStrategyCounter,
			OriginalSizeDist: DefaultOriginalSizeDist,
			CleanedSizeDist:  DefaultCleanedSizeDist,
		},
	}
}

// Validate returns an error if the configuration contains invalid values.
func (c *Config) Validate() error {
	if !isPercent(c.StructuredData.MinCompleteness) {
		return Errorf(EINVALID, "structured data min completeness must be within 0-100, got %d", c.StructuredData.MinCompleteness)
	}
	if !isPercent(c.SectionBased.MinConfidence) {
		return Errorf(EINVALID, "section min confidence must be within 0-100, got %d", c.SectionBased.MinConfidence)
	}
	if !isPercent(c.SectionBased.MinSectionScore) {
		return Errorf(EINVALID, "section min score must be within 0-100, got %d", c.SectionBased.MinSectionScore)
	}
	if c.SectionBased.Enabled && len(c.SectionBased.Keywords) == 0 {
		return Errorf(EINVALID, "section keywords required")
	}
	if c.ContentFilter.MinOutputSize < 0 {
		return Errorf(EINVALID, "content filter min output size must not be negative")
	}
	if c.Fallback.MinSafeSize < 0 {
		return Errorf(EINVALID, "fallback min safe size must not be negative")
	}
	return nil
}

// StrategyEnabled reports whether the named strategy may run.
// Strategies the configuration does not know about are enabled.
func (c *Config) StrategyEnabled(name StrategyName) bool {
	switch name {
	case StrategyStructuredData:
		return c.StructuredData.Enabled
	case StrategySectionBased:
		return c.SectionBased.Enabled
	case StrategyContentFilter:
		return c.ContentFilter.Enabled
	}
	return true
}

func isPercent(v int) bool {
	return v >= 0 && v <= 100
}
