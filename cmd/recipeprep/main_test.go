package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/recipeprep/cmd/recipeprep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pancakePage = `<!DOCTYPE html><html><head><title>Pancakes</title>
<script type="application/ld+json">{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Buttermilk Pancakes",
  "description": "Fluffy weekend pancakes.",
  "recipeIngredient": ["2 cups flour", "2 cups buttermilk", "2 eggs"],
  "recipeInstructions": [{"@type": "HowToStep", "text": "Whisk everything."}],
  "totalTime": "PT25M",
  "recipeYield": "4 servings"
}</script>
</head><body><nav>Home | Breakfast</nav><p>A long story about pancakes.</p></body></html>`

// newTestMain returns a Main backed by a database in a temporary directory.
func newTestMain(t *testing.T) *main.Main {
	t.Helper()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	return m
}

func writePage(t *testing.T, dir, name, html string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(html), 0644))
	return path
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help lists commands", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := newTestMain(t).Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		for _, cmd := range []string{"clean", "batch", "stats"} {
			assert.Contains(t, stdout.String(), cmd)
		}
		assert.Contains(t, stdout.String(), "Usage:")
	})

	t.Run("fails without arguments", func(t *testing.T) {
		t.Parallel()

		err := newTestMain(t).Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("cleans a saved page and records metrics", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		path := writePage(t, t.TempDir(), "pancakes.html", pancakePage)

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"clean", path, "--url", "https://example.com/pancakes"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"name":"Buttermilk Pancakes"`)
		assert.NotContains(t, stdout.String(), "long story")
		assert.Contains(t, stderr.String(), "STRUCTURED_DATA:")

		stdout.Reset()
		err = m.Run(context.Background(), []string{"stats"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "STRUCTURED_DATA")
		assert.Contains(t, stdout.String(), "preprocess.original_size")
	})

	t.Run("cleans stdin", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		m.Stdin = strings.NewReader(pancakePage)

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"clean", "-", "--markdown"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "```json")
		assert.Contains(t, stdout.String(), `"name": "Buttermilk Pancakes"`)
	})

	t.Run("batch writes distinct excerpts", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		pages := t.TempDir()
		out := t.TempDir()
		a := writePage(t, pages, "a.html", pancakePage)
		b := writePage(t, pages, "b.html", pancakePage)

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"batch", a, b, "--out", out, "--name", "run"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Wrote 1 excerpts")
		assert.Contains(t, stdout.String(), "1 duplicate")

		files, err := filepath.Glob(filepath.Join(out, "run", "unknown", "*.html"))
		require.NoError(t, err)
		assert.Len(t, files, 1)

		stdout.Reset()
		err = m.Run(context.Background(), []string{"stats", "--recent", "5"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Recent excerpts:")
		assert.Contains(t, stdout.String(), strings.TrimSuffix(filepath.Base(files[0]), ".html"))
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		t.Parallel()

		cfg := writePage(t, t.TempDir(), "bad.yaml", "sectionBased:\n  minConfidence: 400\n")

		stderr := &bytes.Buffer{}
		err := newTestMain(t).Run(context.Background(), []string{"--config", cfg, "stats"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load config")
		assert.Contains(t, stderr.String(), "RECIPEPREP_CONFIG")
	})
}
