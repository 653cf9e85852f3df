package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/recipeprep"
	"github.com/fwojciec/recipeprep/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcerptPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ex   recipeprep.Excerpt
		want string
	}{
		{
			name: "html excerpt under host",
			ex:   recipeprep.Excerpt{SourceURL: "https://example.com/pie?print=1", ContentHash: "abc", Format: recipeprep.FormatHTML},
			want: filepath.Join("example.com", "abc.html"),
		},
		{
			name: "markdown excerpt",
			ex:   recipeprep.Excerpt{SourceURL: "https://cook.example.org:8443/soup", ContentHash: "def", Format: recipeprep.FormatMarkdown},
			want: filepath.Join("cook.example.org", "def.md"),
		},
		{
			name: "missing source URL",
			ex:   recipeprep.Excerpt{ContentHash: "123", Format: recipeprep.FormatHTML},
			want: filepath.Join("unknown", "123.html"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fs.ExcerptPath(&tt.ex))
		})
	}
}

func TestFormatExcerpt(t *testing.T) {
	t.Parallel()

	got, err := fs.FormatExcerpt(&recipeprep.Excerpt{
		SourceURL:    "https://example.com/pie",
		ContentHash:  "abc",
		Format:       recipeprep.FormatMarkdown,
		Content:      "## Ingredients\n",
		Strategy:     recipeprep.StrategySectionBased,
		CreatedAt:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		OriginalSize: 5000,
		CleanedSize:  400,
	})

	require.NoError(t, err)
	assert.Equal(t, "---\n"+
		"source: https://example.com/pie\n"+
		"strategy: SECTION_BASED\n"+
		"original: 5000\n"+
		"cleaned: 400\n"+
		"created: \"2025-03-01\"\n"+
		"---\n\n"+
		"## Ingredients\n", got)
}

func TestFormatExcerpt_PageMeta(t *testing.T) {
	t.Parallel()

	got, err := fs.FormatExcerpt(&recipeprep.Excerpt{
		ContentHash: "abc",
		Format:      recipeprep.FormatHTML,
		Content:     "<h2>Ingredients</h2>",
		Strategy:    recipeprep.StrategyStructuredData,
		Title:       "Apple Pie: A Classic",
		Sitename:    "Pie Place",
		CreatedAt:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "---\n"+
		"title: 'Apple Pie: A Classic'\n"+
		"site: Pie Place\n"+
		"strategy: STRUCTURED_DATA\n"))
}

func TestExcerptStore(t *testing.T) {
	t.Parallel()

	ex := &recipeprep.Excerpt{
		SourceURL:   "https://example.com/pie",
		ContentHash: "abc",
		Format:      recipeprep.FormatHTML,
		Content:     "<h2>Ingredients</h2>",
		Strategy:    recipeprep.StrategySectionBased,
	}

	t.Run("stages until commit", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		store := fs.NewExcerptStore(base, "excerpts")

		require.NoError(t, store.WriteExcerpt(context.Background(), ex))

		_, err := os.Stat(filepath.Join(base, "excerpts"))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(base, "excerpts.tmp", "example.com", "abc.html"))
		require.NoError(t, err)

		require.NoError(t, store.Commit())

		data, err := os.ReadFile(filepath.Join(base, "excerpts", "example.com", "abc.html"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "<h2>Ingredients</h2>")
		assert.Contains(t, string(data), "strategy: SECTION_BASED")
	})

	t.Run("commit replaces previous output", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		stale := filepath.Join(base, "excerpts", "old.example", "zzz.html")
		require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
		require.NoError(t, os.WriteFile(stale, []byte("stale"), 0644))

		store := fs.NewExcerptStore(base, "excerpts")
		require.NoError(t, store.WriteExcerpt(context.Background(), ex))
		require.NoError(t, store.Commit())

		_, err := os.Stat(stale)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("abort discards staged excerpts", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		store := fs.NewExcerptStore(base, "excerpts")
		require.NoError(t, store.WriteExcerpt(context.Background(), ex))

		require.NoError(t, store.Abort())

		_, err := os.Stat(filepath.Join(base, "excerpts.tmp"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("rejects invalid excerpt", func(t *testing.T) {
		t.Parallel()

		store := fs.NewExcerptStore(t.TempDir(), "excerpts")

		err := store.WriteExcerpt(context.Background(), &recipeprep.Excerpt{Format: "pdf", ContentHash: "x"})

		assert.Equal(t, recipeprep.EINVALID, recipeprep.ErrorCode(err))
	})
}
