package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/recipeprep"
	"github.com/fwojciec/recipeprep/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("")
	require.NoError(t, err)

	var _ recipeprep.TokenCounter = tc

	t.Run("counts tokens in text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "2 cups flour")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("raw page costs more than its excerpt", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		excerpt := "<h2>Ingredients</h2><ul><li>2 cups flour</li></ul>"
		page := "<html><head><script>var tracking = {id: 'UA-1'};</script></head><body><nav>Home | About | Shop</nav>" +
			excerpt + "<footer>Copyright 2025 Example Kitchen. All rights reserved.</footer></body></html>"

		excerptCount, err := tc.CountTokens(ctx, excerpt)
		require.NoError(t, err)
		pageCount, err := tc.CountTokens(ctx, page)
		require.NoError(t, err)

		assert.Greater(t, pageCount, excerptCount)
	})

	t.Run("returns context error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := tc.CountTokens(ctx, "text")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewTokenCounter(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewTokenCounter("not-a-model")

	assert.Equal(t, recipeprep.EINVALID, recipeprep.ErrorCode(err))
}
