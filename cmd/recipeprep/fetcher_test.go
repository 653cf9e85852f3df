package main

import (
	"context"
	"testing"
	"time"

	rphttp "github.com/fwojciec/recipeprep/http"
	"github.com/fwojciec/recipeprep/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFetcher_Fetch(t *testing.T) {
	t.Parallel()

	f := &sourceFetcher{
		web: &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) { return "web", nil },
			CloseFn: func() error { return nil },
		},
		files: &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) { return "file", nil },
			CloseFn: func() error { return nil },
		},
	}

	tests := []struct {
		source string
		want   string
	}{
		{"https://example.com/pie", "web"},
		{"HTTP://example.com/pie", "web"},
		{"saved/pie.html", "file"},
		{"file:///tmp/pie.html", "file"},
	}
	for _, tt := range tests {
		got, err := f.Fetch(context.Background(), tt.source)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.source)
	}

	assert.NoError(t, f.Close())
}

func TestNewWebFetcher_UsesHTTPWithoutRender(t *testing.T) {
	t.Parallel()

	f, err := newWebFetcher(&CLI{Timeout: time.Second}, true)

	require.NoError(t, err)
	assert.IsType(t, &rphttp.Fetcher{}, f)
	require.NoError(t, f.Close())
}
