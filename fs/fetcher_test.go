package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/recipeprep"
	"github.com/fwojciec/recipeprep/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pie.html")
	require.NoError(t, os.WriteFile(path, []byte("<h1>Pie</h1>"), 0644))

	t.Run("reads plain path", func(t *testing.T) {
		t.Parallel()

		html, err := fs.NewFetcher().Fetch(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, "<h1>Pie</h1>", html)
	})

	t.Run("reads file URL", func(t *testing.T) {
		t.Parallel()

		html, err := fs.NewFetcher().Fetch(context.Background(), "file://"+filepath.ToSlash(path))

		require.NoError(t, err)
		assert.Equal(t, "<h1>Pie</h1>", html)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewFetcher().Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.html"))

		assert.Equal(t, recipeprep.ENOTFOUND, recipeprep.ErrorCode(err))
	})
}
