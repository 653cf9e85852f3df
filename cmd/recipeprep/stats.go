package main

import (
	"fmt"

	"github.com/fwojciec/recipeprep"
	"github.com/fwojciec/recipeprep/batch"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	names := deps.Config.Metrics

	totals, err := deps.Metrics.CounterTotals(deps.Ctx, names.StrategyCounter, recipeprep.StrategyTag)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipeprep.ErrorMessage(err))
		return err
	}

	if len(totals) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages processed yet. Use 'recipeprep clean' or 'recipeprep batch' first.")
		return nil
	}

	counts := make(map[recipeprep.StrategyName]int, len(totals))
	all := 0
	for name, n := range totals {
		counts[recipeprep.StrategyName(name)] = n
		all += n
	}

	fmt.Fprintf(deps.Stdout, "Strategies (%d pages):\n", all)
	for _, name := range sortedStrategies(counts) {
		n := counts[name]
		fmt.Fprintf(deps.Stdout, "  %-16s %6d  %5.1f%%\n", name, n, float64(n)*100/float64(all))
	}

	fmt.Fprintln(deps.Stdout, "Sizes:")
	for _, dist := range []string{names.OriginalSizeDist, names.CleanedSizeDist} {
		summary, err := deps.Metrics.SummarizeDistribution(deps.Ctx, dist)
		if recipeprep.ErrorCode(err) == recipeprep.ENOTFOUND {
			fmt.Fprintf(deps.Stdout, "  %-26s no data\n", dist)
			continue
		}
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", recipeprep.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "  %-26s n=%d min=%.0f max=%.0f mean=%.1f\n",
			dist, summary.Count, summary.Min, summary.Max, summary.Mean)
	}

	if c.Recent > 0 {
		excerpts, err := deps.Excerpts.FindExcerpts(deps.Ctx, recipeprep.ExcerptFilter{Limit: c.Recent})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", recipeprep.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Recent excerpts:\n")
		for _, ex := range excerpts {
			fmt.Fprintf(deps.Stdout, "  %s  %-16s %s  %s\n", ex.ContentHash, ex.Strategy,
				batch.FormatSize(ex.CleanedSize), batch.TruncateURL(ex.SourceURL, 60))
		}
	}

	return nil
}
