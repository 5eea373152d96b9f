package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"seocompetitor/internal/model"
)

// HistoryRepository reads stored snapshots back.
type HistoryRepository struct {
	DB *pgxpool.Pool
}

// ListByURL returns the most recent snapshots of url, newest first.
func (r *HistoryRepository) ListByURL(ctx context.Context, url string, limit int) ([]model.Snapshot, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id::text AS id, run_id::text AS run_id, url, title, description,
		       keywords, error, analyzed_at, created_at
		FROM competitor_snapshots
		WHERE url = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, url, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots for %s: %w", url, err)
	}

	snapshots, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Snapshot])
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshots for %s: %w", url, err)
	}
	return snapshots, nil
}
