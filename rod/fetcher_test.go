//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/recipeprep"
	"github.com/fwojciec/recipeprep/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements recipeprep.Fetcher.
var _ recipeprep.Fetcher = (*rod.Fetcher)(nil)

// scriptedRecipe injects its JSON-LD block at load time, the way many
// recipe plugins do.
const scriptedRecipe = `<!DOCTYPE html><html><head><title>Soup</title></head><body>
<div id="card"></div>
<script>
var s = document.createElement('script');
s.type = 'application/ld+json';
s.text = JSON.stringify({"@type": "Recipe", "name": "Rendered Soup"});
document.head.appendChild(s);
document.getElementById('card').innerHTML = '<h2>Ingredients</h2><ul><li>water</li><li>salt</li></ul>';
</script></body></html>`

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(scriptedRecipe))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(20 * time.Second))
	require.NoError(t, err)
	defer fetcher.Close()

	t.Run("returns script-built content", func(t *testing.T) {
		html, err := fetcher.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, html, "Rendered Soup")
		assert.Contains(t, html, "<li>salt</li>")
	})

	t.Run("returns error for canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, srv.URL)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFetcher_Fetch_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(500 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	start := time.Now()
	_, err = fetcher.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestFetcher_Close_KillsLauncherProcess(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	pid := fetcher.LauncherPID()
	require.NotZero(t, pid)
	require.NoError(t, syscall.Kill(pid, syscall.Signal(0)))

	require.NoError(t, fetcher.Close())

	assert.Eventually(t, func() bool {
		return syscall.Kill(pid, syscall.Signal(0)) != nil
	}, 5*time.Second, 100*time.Millisecond)
}
