package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"seocompetitor/internal/model"
)

const createSnapshotsTable = `
	CREATE TABLE IF NOT EXISTS competitor_snapshots (
		id          uuid PRIMARY KEY,
		run_id      uuid NOT NULL,
		url         text NOT NULL,
		title       text NOT NULL DEFAULT '',
		description text NOT NULL DEFAULT '',
		keywords    text[] NOT NULL DEFAULT '{}',
		error       text NOT NULL DEFAULT '',
		analyzed_at timestamptz,
		created_at  timestamptz NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS competitor_snapshots_url_idx
		ON competitor_snapshots (url, created_at DESC);
`

// SnapshotRepository stores one row per competitor report.
type SnapshotRepository struct {
	DB *sql.DB
}

func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, createSnapshotsTable); err != nil {
		return fmt.Errorf("failed to create competitor_snapshots: %w", err)
	}
	return nil
}

// SaveRun stores every report of a run in a single transaction.
func (r *SnapshotRepository) SaveRun(ctx context.Context, runID uuid.UUID, reports []model.CompetitorReport) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to open tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, rep := range reports {
		var analyzedAt sql.NullTime
		if !rep.Failed() {
			analyzedAt = sql.NullTime{Time: rep.AnalyzedAt, Valid: true}
		}
		keywords := rep.Keywords
		if keywords == nil {
			keywords = []string{}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO competitor_snapshots
			(id, run_id, url, title, description, keywords, error, analyzed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, uuid.New(), runID, rep.URL, rep.Title, rep.Description, pq.Array(keywords), rep.Error, analyzedAt)
		if err != nil {
			return fmt.Errorf("failed to store snapshot for %s: %w", rep.URL, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshots: %w", err)
	}
	return nil
}
