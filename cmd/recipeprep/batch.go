package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/recipeprep"
	"github.com/fwojciec/recipeprep/batch"
	"github.com/fwojciec/recipeprep/bloom"
	"github.com/fwojciec/recipeprep/fs"
)

// dedupeFalsePositiveRate is the acceptable rate of distinct excerpts
// wrongly skipped as duplicates.
const dedupeFalsePositiveRate = 0.001

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	sources, err := c.sources()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipeprep.ErrorMessage(err))
		return err
	}
	if len(sources) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no sources given. Pass URLs or paths, or use --from.")
		return recipeprep.Errorf(recipeprep.EINVALID, "no sources given")
	}

	store := fs.NewExcerptStore(c.Out, c.Name)

	runner := &batch.Runner{
		Fetcher:      deps.Fetcher,
		Preprocessor: deps.Preprocessor,
		Excerpts:     excerptWriters{store, deps.ExcerptIndex},
		Dedupe:       bloom.NewFilter(uint(max(len(sources), 1000)), dedupeFalsePositiveRate),
		Meta:         deps.Meta,
		TokenCounter: deps.TokenCounter,
		Concurrency:  c.Concurrency,
	}
	if c.Markdown {
		runner.Converter = deps.Converter
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Processing %d pages\n", event.Total)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", batch.TruncateURL(event.Source, 60), recipeprep.ErrorMessage(event.Error))
		case batch.ProgressCompleted:
			if deps.Logger == nil {
				return
			}
			deps.Logger.Debug("processed", "source", event.Source, "strategy", event.Strategy,
				"completed", event.Completed, "total", event.Total)
		}
	}

	summary, err := runner.Run(deps.Ctx, sources, progress)
	if err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if summary.Written > 0 {
		if err := store.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
	} else {
		_ = store.Abort()
	}

	fmt.Fprintf(deps.Stdout, "  Wrote %d excerpts to %s (%d failed, %d duplicate)\n",
		summary.Written, filepath.Join(c.Out, c.Name), summary.Failed, summary.Duplicates)
	fmt.Fprintf(deps.Stdout, "  %s → %s (%.1f%% reduction)\n",
		batch.FormatSize(summary.OriginalSize), batch.FormatSize(summary.CleanedSize), summary.ReductionRatio()*100)
	if deps.TokenCounter != nil {
		fmt.Fprintf(deps.Stdout, "  %s → %s\n", batch.FormatTokens(summary.OriginalTokens), batch.FormatTokens(summary.CleanedTokens))
	}
	for _, name := range sortedStrategies(summary.Strategies) {
		fmt.Fprintf(deps.Stdout, "  %-16s %d\n", name, summary.Strategies[name])
	}

	return nil
}

// sources returns the positional sources followed by those listed in
// the --from file. Blank lines and lines starting with # are ignored.
func (c *BatchCmd) sources() ([]string, error) {
	sources := append([]string(nil), c.Sources...)
	if c.From == "" {
		return sources, nil
	}

	f, err := os.Open(c.From)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sources = append(sources, line)
	}
	return sources, scanner.Err()
}

func sortedStrategies(counts map[recipeprep.StrategyName]int) []recipeprep.StrategyName {
	names := make([]recipeprep.StrategyName, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// excerptWriters writes each excerpt to every non-nil writer in order.
type excerptWriters []recipeprep.ExcerptWriter

func (w excerptWriters) WriteExcerpt(ctx context.Context, ex *recipeprep.Excerpt) error {
	var errs []error
	for _, writer := range w {
		if writer == nil {
			continue
		}
		if err := writer.WriteExcerpt(ctx, ex); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
