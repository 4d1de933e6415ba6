package lookup

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=lookup

// Repository persists audited lookups.
type Repository interface {
	Create(ctx context.Context, l *Lookup) error
	ListRecent(ctx context.Context, limit int) ([]Lookup, error)
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, l *Lookup) error {
	const sql = `
		INSERT INTO movie_lookups (id, request_id, mode, term, page, outcome, status_code, upstream_status, total_results, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, sql,
		l.ID, l.RequestID, l.Mode, l.Term, l.Page, l.Outcome,
		l.StatusCode, l.UpstreamStatus, l.TotalResults, l.DurationMS, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert lookup: %w", err)
	}
	return nil
}

func (r *PostgresRepo) ListRecent(ctx context.Context, limit int) ([]Lookup, error) {
	const sql = `
		SELECT id, request_id, mode, term, page, outcome, status_code, upstream_status, total_results, duration_ms, created_at
		FROM movie_lookups
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("list lookups: %w", err)
	}
	defer rows.Close()

	var out []Lookup
	for rows.Next() {
		var l Lookup
		if err := rows.Scan(&l.ID, &l.RequestID, &l.Mode, &l.Term, &l.Page, &l.Outcome,
			&l.StatusCode, &l.UpstreamStatus, &l.TotalResults, &l.DurationMS, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lookup: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lookups: %w", err)
	}
	return out, nil
}
