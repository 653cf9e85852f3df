package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/recipeprep"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ recipeprep.Metrics        = (*MetricsStore)(nil)
	_ recipeprep.MetricsService = (*MetricsStore)(nil)
)

const (
	kindCounter      = "counter"
	kindDistribution = "distribution"
)

// MetricsStore persists metric events and aggregates them on read.
type MetricsStore struct {
	db  *DB
	now func() time.Time
}

// NewMetricsStore creates a new MetricsStore.
func NewMetricsStore(db *DB) *MetricsStore {
	return &MetricsStore{db: db, now: time.Now}
}

// IncrementCounter records one counter event with its tags.
func (s *MetricsStore) IncrementCounter(name string, tags map[string]string) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.New().String()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO metric_events (id, name, kind, value, recorded_at)
		VALUES (?, ?, ?, 1, ?)
	`, id, name, kindCounter, s.now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	for k, v := range tags {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO metric_tags (event_id, key, value) VALUES (?, ?, ?)
		`, id, k, v); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ObserveDistribution records one distribution value.
func (s *MetricsStore) ObserveDistribution(name string, value float64) error {
	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO metric_events (id, name, kind, value, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), name, kindDistribution, value, s.now().UTC().Format(time.RFC3339))
	return err
}

// CounterTotals returns the named counter's event counts grouped by the
// value of tag. Events without the tag are not counted.
func (s *MetricsStore) CounterTotals(ctx context.Context, name, tag string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.value, COUNT(*)
		FROM metric_events e
		JOIN metric_tags t ON t.event_id = e.id
		WHERE e.name = ? AND e.kind = ? AND t.key = ?
		GROUP BY t.value
	`, name, kindCounter, tag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var value string
		var count int
		if err := rows.Scan(&value, &count); err != nil {
			return nil, err
		}
		totals[value] = count
	}

	return totals, rows.Err()
}

// SummarizeDistribution aggregates the named distribution.
func (s *MetricsStore) SummarizeDistribution(ctx context.Context, name string) (*recipeprep.DistributionSummary, error) {
	summary := recipeprep.DistributionSummary{Name: name}

	var minV, maxV, mean *float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), MIN(value), MAX(value), AVG(value)
		FROM metric_events
		WHERE name = ? AND kind = ?
	`, name, kindDistribution).Scan(&summary.Count, &minV, &maxV, &mean)
	if err != nil {
		return nil, err
	}

	if summary.Count == 0 {
		return nil, recipeprep.Errorf(recipeprep.ENOTFOUND, "no observations for %q", name)
	}
	summary.Min, summary.Max, summary.Mean = *minV, *maxV, *mean

	return &summary, nil
}
