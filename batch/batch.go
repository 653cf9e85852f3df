// Package batch runs the preprocessing pipeline over many pages
// concurrently and stores the resulting excerpts.
package batch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/recipeprep"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Runner.Concurrency is not positive.
const DefaultConcurrency = 4

// Deduper reports whether a content hash was seen before, recording it
// if not.
type Deduper interface {
	Seen(hash string) bool
}

// Runner fetches pages, preprocesses them and writes excerpts.
type Runner struct {
	Fetcher      recipeprep.Fetcher
	Preprocessor recipeprep.Preprocessor
	Excerpts     recipeprep.ExcerptWriter

	// Converter, if set, turns excerpts into Markdown before writing.
	Converter recipeprep.Converter

	// Dedupe, if set, skips excerpts with content already written.
	Dedupe Deduper

	// Meta, if set, labels excerpts with the page title and site name.
	// Extraction failures leave the labels empty.
	Meta recipeprep.MetaExtractor

	// TokenCounter, if set, adds token totals to the summary.
	TokenCounter recipeprep.TokenCounter

	Concurrency int
	RetryDelays []time.Duration
}

// Summary holds the outcome of a batch run.
type Summary struct {
	Written    int
	Failed     int
	Duplicates int

	OriginalSize int
	CleanedSize  int

	OriginalTokens int
	CleanedTokens  int

	Strategies map[recipeprep.StrategyName]int
}

// ReductionRatio returns the size reduction across all written excerpts.
func (s *Summary) ReductionRatio() float64 {
	return recipeprep.ReductionRatio(s.OriginalSize, s.CleanedSize)
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Strategy  recipeprep.StrategyName
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single source.
type pageResult struct {
	position int
	source   string
	raw      string
	result   *recipeprep.Result
	excerpt  *recipeprep.Excerpt
	err      error
}

// Run processes every source and writes one excerpt per distinct result.
// Sources are written in input order. Individual failures are counted,
// not returned; Run only fails when ctx is canceled.
func (r *Runner) Run(ctx context.Context, sources []string, progress ProgressFunc) (*Summary, error) {
	summary := &Summary{Strategies: make(map[recipeprep.StrategyName]int)}
	total := len(sources)

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan pageResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, source := range sources {
			g.Go(func() error {
				resultCh <- r.processSource(gctx, i, source)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, total)
	var completed atomic.Int64
	for res := range resultCh {
		results[res.position] = res
		n := int(completed.Add(1))
		if progress == nil {
			continue
		}
		if res.err != nil {
			progress(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, Source: res.source, Error: res.err})
		} else {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, Source: res.source, Strategy: res.result.Strategy})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, res := range results {
		if res.err != nil {
			summary.Failed++
			continue
		}

		if r.Dedupe != nil && r.Dedupe.Seen(res.excerpt.ContentHash) {
			summary.Duplicates++
			continue
		}

		if err := r.Excerpts.WriteExcerpt(ctx, res.excerpt); err != nil {
			summary.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: total, Total: total, Source: res.source, Error: err})
			}
			continue
		}

		summary.Written++
		summary.Strategies[res.result.Strategy]++
		summary.OriginalSize += res.result.OriginalSize
		summary.CleanedSize += res.result.CleanedSize

		if r.TokenCounter != nil {
			if n, err := r.TokenCounter.CountTokens(ctx, res.raw); err == nil {
				summary.OriginalTokens += n
			}
			if n, err := r.TokenCounter.CountTokens(ctx, res.excerpt.Content); err == nil {
				summary.CleanedTokens += n
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return summary, nil
}

// processSource fetches and preprocesses a single source.
func (r *Runner) processSource(ctx context.Context, position int, source string) pageResult {
	res := pageResult{position: position, source: source}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, source, r.Fetcher.Fetch, nil, delays)
	if err != nil {
		res.err = err
		return res
	}
	res.raw = html

	result := r.Preprocessor.Process(html, source)
	if result == nil {
		res.err = recipeprep.Errorf(recipeprep.EINTERNAL, "no result for %s", source)
		return res
	}
	res.result = result

	content, format := result.CleanedHTML, recipeprep.FormatHTML
	if r.Converter != nil && content != "" {
		md, err := r.Converter.Convert(content)
		if err != nil {
			res.err = fmt.Errorf("convert %s: %w", source, err)
			return res
		}
		content, format = md, recipeprep.FormatMarkdown
	}

	res.excerpt = &recipeprep.Excerpt{
		SourceURL:    source,
		ContentHash:  ComputeHash(content),
		Format:       format,
		Content:      content,
		Strategy:     result.Strategy,
		CreatedAt:    time.Now().UTC(),
		OriginalSize: result.OriginalSize,
		CleanedSize:  result.CleanedSize,
	}
	if r.Meta != nil {
		if meta, err := r.Meta.ExtractMeta(html); err == nil {
			res.excerpt.Title = meta.Title
			res.excerpt.Sitename = meta.Sitename
		}
	}
	return res
}
