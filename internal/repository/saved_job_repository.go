package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-board/internal/domain"
)

// SavedJobRepository manages per-user job bookmarks.
type SavedJobRepository interface {
	// Toggle removes the bookmark when present and adds it otherwise, reporting the new state.
	// A job that no longer exists reports pgx.ErrNoRows.
	Toggle(ctx context.Context, userID, jobID int64) (saved bool, err error)
	ListJobs(ctx context.Context, userID int64) ([]domain.Job, error)
}

type savedJobRepository struct {
	pool *pgxpool.Pool
}

// NewSavedJobRepository builds repository.
func NewSavedJobRepository(pool *pgxpool.Pool) SavedJobRepository {
	return &savedJobRepository{pool: pool}
}

func (r *savedJobRepository) Toggle(ctx context.Context, userID, jobID int64) (bool, error) {
	var saved bool
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id=$1 AND job_id=$2`, userID, jobID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() > 0 {
			return nil
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO saved_jobs (user_id, job_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
			userID, jobID,
		); err != nil {
			if violates(err, "23503", "") {
				return pgx.ErrNoRows
			}
			return err
		}
		saved = true
		return nil
	})
	return saved, err
}

func (r *savedJobRepository) ListJobs(ctx context.Context, userID int64) ([]domain.Job, error) {
	query := jobSelect + `
        JOIN saved_jobs s ON s.job_id = j.id
        WHERE s.user_id=$1
        ORDER BY s.created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}
