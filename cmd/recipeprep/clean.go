package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/recipeprep"
	"github.com/fwojciec/recipeprep/batch"
)

// cleanOutput is the --json document: the pipeline result plus page
// metadata when it could be read.
type cleanOutput struct {
	*recipeprep.Result
	Meta *recipeprep.PageMeta `json:"meta,omitempty"`
}

// Run executes the clean command.
func (c *CleanCmd) Run(deps *Dependencies) error {
	html, err := c.read(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipeprep.ErrorMessage(err))
		return err
	}

	sourceURL := c.URL
	if sourceURL == "" && c.Source != "-" {
		sourceURL = c.Source
	}

	result := deps.Preprocessor.Process(html, sourceURL)

	out := result.CleanedHTML
	if c.Markdown && out != "" {
		out, err = deps.Converter.Convert(out)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", recipeprep.ErrorMessage(err))
			return err
		}
	}

	if c.JSON {
		result.CleanedHTML = out
		doc := cleanOutput{Result: result}
		if deps.Meta != nil {
			doc.Meta, _ = deps.Meta.ExtractMeta(html)
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(deps.Stdout, out)
	}

	fmt.Fprintln(deps.Stderr, result.MetricsMessage)

	if deps.TokenCounter != nil {
		before, err := deps.TokenCounter.CountTokens(deps.Ctx, html)
		if err != nil {
			return err
		}
		after, err := deps.TokenCounter.CountTokens(deps.Ctx, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stderr, "tokens: %s → %s\n", batch.FormatTokens(before), batch.FormatTokens(after))
	}

	return nil
}

func (c *CleanCmd) read(deps *Dependencies) (string, error) {
	if c.Source == "-" {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return deps.Fetcher.Fetch(deps.Ctx, c.Source)
}
