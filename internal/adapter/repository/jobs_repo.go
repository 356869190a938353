package repository

import (
	"context"

	"curriculo-generator/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// JobsRepo persists generation audit entries. A nil pool turns Save into a
// no-op so the service runs without a database.
type JobsRepo struct {
	pool *pgxpool.Pool
}

func NewJobsRepo(pool *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{pool: pool}
}

func (r *JobsRepo) Save(ctx context.Context, j *domain.GenerationJob) error {
	if r == nil || r.pool == nil {
		return nil
	}

	_, err := r.pool.Exec(ctx, `INSERT INTO generation_jobs (id, request_id, status, error_kind, html_bytes, pdf_bytes, attempts, duration_ms, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, error_kind = EXCLUDED.error_kind, html_bytes = EXCLUDED.html_bytes, pdf_bytes = EXCLUDED.pdf_bytes, attempts = EXCLUDED.attempts, duration_ms = EXCLUDED.duration_ms, updated_at = EXCLUDED.updated_at`,
		j.ID, j.RequestID, j.Status, j.ErrorKind, j.HTMLBytes, j.PDFBytes, j.Attempts, j.DurationMs, j.CreatedAt, j.UpdatedAt)
	return err
}

// CountByStatus returns how many jobs ended in each status.
func (r *JobsRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	if r == nil || r.pool == nil {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT status, count(*) FROM generation_jobs GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}
