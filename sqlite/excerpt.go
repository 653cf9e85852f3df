package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/recipeprep"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ recipeprep.ExcerptWriter  = (*ExcerptStore)(nil)
	_ recipeprep.ExcerptService = (*ExcerptStore)(nil)
)

// ExcerptStore stores excerpts keyed by content hash.
type ExcerptStore struct {
	db *DB
}

// NewExcerptStore creates a new ExcerptStore.
func NewExcerptStore(db *DB) *ExcerptStore {
	return &ExcerptStore{db: db}
}

// WriteExcerpt inserts the excerpt. An excerpt whose content hash is
// already stored is replaced.
func (s *ExcerptStore) WriteExcerpt(ctx context.Context, ex *recipeprep.Excerpt) error {
	if err := ex.Validate(); err != nil {
		return err
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO excerpts (id, source_url, content_hash, format, content, strategy, title, sitename, original_size, cleaned_size, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(content_hash) DO UPDATE SET
			source_url = excluded.source_url,
			format = excluded.format,
			content = excluded.content,
			strategy = excluded.strategy,
			title = excluded.title,
			sitename = excluded.sitename,
			original_size = excluded.original_size,
			cleaned_size = excluded.cleaned_size,
			created_at = excluded.created_at
	`, uuid.New().String(), ex.SourceURL, ex.ContentHash, ex.Format, ex.Content, string(ex.Strategy),
		ex.Title, ex.Sitename, ex.OriginalSize, ex.CleanedSize, ex.CreatedAt.UTC().Format(time.RFC3339))

	return err
}

const excerptColumns = "source_url, content_hash, format, content, strategy, title, sitename, original_size, cleaned_size, created_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanExcerpt(row scanner) (*recipeprep.Excerpt, error) {
	var ex recipeprep.Excerpt
	var strategy, createdAt string
	if err := row.Scan(&ex.SourceURL, &ex.ContentHash, &ex.Format, &ex.Content, &strategy,
		&ex.Title, &ex.Sitename, &ex.OriginalSize, &ex.CleanedSize, &createdAt); err != nil {
		return nil, err
	}
	ex.Strategy = recipeprep.StrategyName(strategy)

	var err error
	ex.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

// FindExcerptByHash retrieves an excerpt by content hash.
func (s *ExcerptStore) FindExcerptByHash(ctx context.Context, hash string) (*recipeprep.Excerpt, error) {
	ex, err := scanExcerpt(s.db.QueryRowContext(ctx,
		"SELECT "+excerptColumns+" FROM excerpts WHERE content_hash = ?", hash))
	if err == sql.ErrNoRows {
		return nil, recipeprep.Errorf(recipeprep.ENOTFOUND, "excerpt not found")
	}
	if err != nil {
		return nil, err
	}
	return ex, nil
}

// FindExcerpts retrieves excerpts matching the filter.
func (s *ExcerptStore) FindExcerpts(ctx context.Context, filter recipeprep.ExcerptFilter) ([]*recipeprep.Excerpt, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + excerptColumns + " FROM excerpts WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Strategy != nil {
		query.WriteString(" AND strategy = ?")
		args = append(args, string(*filter.Strategy))
	}

	query.WriteString(" ORDER BY created_at DESC, content_hash ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var excerpts []*recipeprep.Excerpt
	for rows.Next() {
		ex, err := scanExcerpt(rows)
		if err != nil {
			return nil, err
		}
		excerpts = append(excerpts, ex)
	}

	return excerpts, rows.Err()
}
