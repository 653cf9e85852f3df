package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/recipeprep"
	"github.com/fwojciec/recipeprep/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExcerpt(hash, url string, strategy recipeprep.StrategyName, created time.Time) *recipeprep.Excerpt {
	return &recipeprep.Excerpt{
		SourceURL:    url,
		ContentHash:  hash,
		Format:       recipeprep.FormatHTML,
		Content:      "<h2>Ingredients</h2>",
		Strategy:     strategy,
		Title:        "Apple Pie",
		Sitename:     "Pie Place",
		CreatedAt:    created,
		OriginalSize: 1000,
		CleanedSize:  20,
	}
}

func TestExcerptStore_WriteExcerpt(t *testing.T) {
	t.Parallel()

	t.Run("stores and finds by hash", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewExcerptStore(newTestDB(t))
		ctx := context.Background()
		created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		ex := newExcerpt("abc", "https://example.com/pie", recipeprep.StrategySectionBased, created)

		require.NoError(t, store.WriteExcerpt(ctx, ex))

		got, err := store.FindExcerptByHash(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, ex, got)
	})

	t.Run("replaces excerpt with the same hash", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewExcerptStore(newTestDB(t))
		ctx := context.Background()
		created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, store.WriteExcerpt(ctx, newExcerpt("abc", "https://a.example", recipeprep.StrategyFallback, created)))
		require.NoError(t, store.WriteExcerpt(ctx, newExcerpt("abc", "https://b.example", recipeprep.StrategyFallback, created)))

		all, err := store.FindExcerpts(ctx, recipeprep.ExcerptFilter{})
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "https://b.example", all[0].SourceURL)
	})

	t.Run("rejects invalid excerpt", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewExcerptStore(newTestDB(t))

		err := store.WriteExcerpt(context.Background(), &recipeprep.Excerpt{Format: recipeprep.FormatHTML})

		assert.Equal(t, recipeprep.EINVALID, recipeprep.ErrorCode(err))
	})

	t.Run("sets creation time when missing", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewExcerptStore(newTestDB(t))
		ex := newExcerpt("abc", "", recipeprep.StrategyFallback, time.Time{})

		require.NoError(t, store.WriteExcerpt(context.Background(), ex))

		assert.False(t, ex.CreatedAt.IsZero())
	})
}

func TestExcerptStore_FindExcerptByHash(t *testing.T) {
	t.Parallel()

	store := sqlite.NewExcerptStore(newTestDB(t))

	_, err := store.FindExcerptByHash(context.Background(), "missing")

	assert.Equal(t, recipeprep.ENOTFOUND, recipeprep.ErrorCode(err))
}

func TestExcerptStore_FindExcerpts(t *testing.T) {
	t.Parallel()

	store := sqlite.NewExcerptStore(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.WriteExcerpt(ctx, newExcerpt("h1", "https://example.com/a", recipeprep.StrategyStructuredData, base)))
	require.NoError(t, store.WriteExcerpt(ctx, newExcerpt("h2", "https://example.com/b", recipeprep.StrategySectionBased, base.Add(time.Hour))))
	require.NoError(t, store.WriteExcerpt(ctx, newExcerpt("h3", "https://example.com/a", recipeprep.StrategySectionBased, base.Add(2*time.Hour))))

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		got, err := store.FindExcerpts(ctx, recipeprep.ExcerptFilter{})

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"h3", "h2", "h1"}, hashes(got))
	})

	t.Run("filters by source URL", func(t *testing.T) {
		t.Parallel()

		url := "https://example.com/a"
		got, err := store.FindExcerpts(ctx, recipeprep.ExcerptFilter{SourceURL: &url})

		require.NoError(t, err)
		assert.Equal(t, []string{"h3", "h1"}, hashes(got))
	})

	t.Run("filters by strategy", func(t *testing.T) {
		t.Parallel()

		strategy := recipeprep.StrategySectionBased
		got, err := store.FindExcerpts(ctx, recipeprep.ExcerptFilter{Strategy: &strategy})

		require.NoError(t, err)
		assert.Equal(t, []string{"h3", "h2"}, hashes(got))
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		got, err := store.FindExcerpts(ctx, recipeprep.ExcerptFilter{Limit: 1, Offset: 1})

		require.NoError(t, err)
		assert.Equal(t, []string{"h2"}, hashes(got))
	})
}

func hashes(excerpts []*recipeprep.Excerpt) []string {
	out := make([]string, len(excerpts))
	for i, ex := range excerpts {
		out[i] = ex.ContentHash
	}
	return out
}
