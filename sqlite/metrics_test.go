package sqlite_test

import (
	"context"
	"sync"
	"testing"

	"github.com/fwojciec/recipeprep"
	"github.com/fwojciec/recipeprep/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsStore_CounterTotals(t *testing.T) {
	t.Parallel()

	t.Run("groups counter events by tag value", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewMetricsStore(newTestDB(t))
		for _, s := range []string{"SECTION_BASED", "SECTION_BASED", "FALLBACK"} {
			require.NoError(t, store.IncrementCounter("preprocess.strategy", map[string]string{"strategy": s}))
		}

		totals, err := store.CounterTotals(context.Background(), "preprocess.strategy", "strategy")

		require.NoError(t, err)
		assert.Equal(t, map[string]int{"SECTION_BASED": 2, "FALLBACK": 1}, totals)
	})

	t.Run("ignores other counters and untagged events", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewMetricsStore(newTestDB(t))
		require.NoError(t, store.IncrementCounter("other", map[string]string{"strategy": "FALLBACK"}))
		require.NoError(t, store.IncrementCounter("preprocess.strategy", nil))

		totals, err := store.CounterTotals(context.Background(), "preprocess.strategy", "strategy")

		require.NoError(t, err)
		assert.Empty(t, totals)
	})

	t.Run("keeps every tag of an event", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewMetricsStore(newTestDB(t))
		require.NoError(t, store.IncrementCounter("c", map[string]string{"strategy": "CONTENT_FILTER", "host": "example.com"}))

		byHost, err := store.CounterTotals(context.Background(), "c", "host")

		require.NoError(t, err)
		assert.Equal(t, map[string]int{"example.com": 1}, byHost)
	})
}

func TestMetricsStore_SummarizeDistribution(t *testing.T) {
	t.Parallel()

	t.Run("aggregates observations", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewMetricsStore(newTestDB(t))
		for _, v := range []float64{100, 300, 200} {
			require.NoError(t, store.ObserveDistribution("preprocess.cleaned_size", v))
		}

		summary, err := store.SummarizeDistribution(context.Background(), "preprocess.cleaned_size")

		require.NoError(t, err)
		assert.Equal(t, &recipeprep.DistributionSummary{
			Name:  "preprocess.cleaned_size",
			Count: 3,
			Min:   100,
			Max:   300,
			Mean:  200,
		}, summary)
	})

	t.Run("returns ENOTFOUND without observations", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewMetricsStore(newTestDB(t))

		_, err := store.SummarizeDistribution(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, recipeprep.ENOTFOUND, recipeprep.ErrorCode(err))
	})

	t.Run("does not mix counters into distributions", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewMetricsStore(newTestDB(t))
		require.NoError(t, store.IncrementCounter("shared", nil))

		_, err := store.SummarizeDistribution(context.Background(), "shared")

		assert.Equal(t, recipeprep.ENOTFOUND, recipeprep.ErrorCode(err))
	})
}

func TestMetricsStore_ConcurrentWrites(t *testing.T) {
	t.Parallel()

	store := sqlite.NewMetricsStore(newTestDB(t))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.IncrementCounter("c", map[string]string{"strategy": "FALLBACK"}))
		}()
	}
	wg.Wait()

	totals, err := store.CounterTotals(context.Background(), "c", "strategy")
	require.NoError(t, err)
	assert.Equal(t, 20, totals["FALLBACK"])
}
