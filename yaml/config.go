// Package yaml loads pipeline configuration from YAML files.
package yaml

import (
	"errors"
	"io"
	"os"

	"github.com/fwojciec/recipeprep"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors recipeprep.Config with optional fields, so a file
// only overrides the values it names.
type fileConfig struct {
	Enabled        *bool `yaml:"enabled"`
	StructuredData struct {
		Enabled         *bool `yaml:"enabled"`
		MinCompleteness *int  `yaml:"minCompleteness"`
	} `yaml:"structuredData"`
	SectionBased struct {
		Enabled         *bool    `yaml:"enabled"`
		MinConfidence   *int     `yaml:"minConfidence"`
		MinSectionScore *int     `yaml:"minSectionScore"`
		Keywords        []string `yaml:"keywords"`
	} `yaml:"sectionBased"`
	ContentFilter struct {
		Enabled       *bool `yaml:"enabled"`
		MinOutputSize *int  `yaml:"minOutputSize"`
	} `yaml:"contentFilter"`
	Fallback struct {
		MinSafeSize *int `yaml:"minSafeSize"`
	} `yaml:"fallback"`
	Metrics struct {
		StrategyCounter  *string `yaml:"strategyCounter"`
		OriginalSizeDist *string `yaml:"originalSizeDist"`
		CleanedSizeDist  *string `yaml:"cleanedSizeDist"`
	} `yaml:"metrics"`
}

// LoadConfig reads YAML from r and applies it over recipeprep.DefaultConfig.
// Unknown keys are rejected. An empty document yields the defaults.
func LoadConfig(r io.Reader) (recipeprep.Config, error) {
	cfg := recipeprep.DefaultConfig()

	var fc fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return recipeprep.Config{}, recipeprep.Errorf(recipeprep.EINVALID, "parse config: %v", err)
	}

	fc.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return recipeprep.Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads the YAML file at path. An empty path yields the
// defaults.
func LoadConfigFile(path string) (recipeprep.Config, error) {
	if path == "" {
		return recipeprep.DefaultConfig(), nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return recipeprep.Config{}, recipeprep.Errorf(recipeprep.ENOTFOUND, "config file not found: %s", path)
	}
	if err != nil {
		return recipeprep.Config{}, err
	}
	defer f.Close()

	return LoadConfig(f)
}

func (fc *fileConfig) apply(cfg *recipeprep.Config) {
	setBool(&cfg.Enabled, fc.Enabled)

	setBool(&cfg.StructuredData.Enabled, fc.StructuredData.Enabled)
	setInt(&cfg.StructuredData.MinCompleteness, fc.StructuredData.MinCompleteness)

	setBool(&cfg.SectionBased.Enabled, fc.SectionBased.Enabled)
	setInt(&cfg.SectionBased.MinConfidence, fc.SectionBased.MinConfidence)
	setInt(&cfg.SectionBased.MinSectionScore, fc.SectionBased.MinSectionScore)
	if fc.SectionBased.Keywords != nil {
		cfg.SectionBased.Keywords = fc.SectionBased.Keywords
	}

	setBool(&cfg.ContentFilter.Enabled, fc.ContentFilter.Enabled)
	setInt(&cfg.ContentFilter.MinOutputSize, fc.ContentFilter.MinOutputSize)

	setInt(&cfg.Fallback.MinSafeSize, fc.Fallback.MinSafeSize)

	setString(&cfg.Metrics.StrategyCounter, fc.Metrics.StrategyCounter)
	setString(&cfg.Metrics.OriginalSizeDist, fc.Metrics.OriginalSizeDist)
	setString(&cfg.Metrics.CleanedSizeDist, fc.Metrics.CleanedSizeDist)
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}
