package slog_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fwojciec/recipeprep"
	"github.com/fwojciec/recipeprep/mock"
	rpslog "github.com/fwojciec/recipeprep/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	t.Run("logs counter with tags", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		m := rpslog.NewMetrics(debugLogger(&buf))

		err := m.IncrementCounter("preprocess.strategy", map[string]string{"strategy": "FALLBACK"})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "name=preprocess.strategy")
		assert.Contains(t, buf.String(), "tag.strategy=FALLBACK")
	})

	t.Run("logs distribution value", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		m := rpslog.NewMetrics(debugLogger(&buf))

		err := m.ObserveDistribution("preprocess.cleaned_size", 512)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "name=preprocess.cleaned_size")
		assert.Contains(t, buf.String(), "value=512")
	})
}

func TestMultiMetrics(t *testing.T) {
	t.Parallel()

	t.Run("forwards to every sink and returns first error", func(t *testing.T) {
		t.Parallel()

		var calls []string
		failing := &mock.Metrics{
			IncrementCounterFn: func(name string, tags map[string]string) error {
				calls = append(calls, "failing")
				return errors.New("unreachable")
			},
		}
		healthy := &mock.Metrics{
			IncrementCounterFn: func(name string, tags map[string]string) error {
				calls = append(calls, "healthy")
				return nil
			},
		}

		err := rpslog.MultiMetrics{failing, healthy}.IncrementCounter("c", nil)

		require.Error(t, err)
		assert.Equal(t, []string{"failing", "healthy"}, calls)
	})

	t.Run("forwards observations", func(t *testing.T) {
		t.Parallel()

		var got []float64
		sink := &mock.Metrics{
			ObserveDistributionFn: func(name string, value float64) error {
				got = append(got, value)
				return nil
			},
		}

		var sinks rpslog.MultiMetrics = []recipeprep.Metrics{sink, sink}
		err := sinks.ObserveDistribution("d", 3)

		require.NoError(t, err)
		assert.Equal(t, []float64{3, 3}, got)
	})
}
