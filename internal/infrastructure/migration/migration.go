package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

// Migration represents a database migration
type Migration struct {
	Name string
	SQL  string
}

// Migrations lists the audit schema changes in order. Each statement is
// idempotent.
var Migrations = []Migration{
	{
		Name: "create_generation_jobs",
		SQL: `
		CREATE TABLE IF NOT EXISTS generation_jobs (
			id UUID PRIMARY KEY,
			request_id TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			error_kind TEXT NOT NULL DEFAULT '',
			html_bytes INTEGER NOT NULL DEFAULT 0,
			pdf_bytes INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
	},
	{
		Name: "add_attempts_and_duration_to_generation_jobs",
		SQL: `
		ALTER TABLE generation_jobs
		ADD COLUMN IF NOT EXISTS attempts INTEGER NOT NULL DEFAULT 0,
		ADD COLUMN IF NOT EXISTS duration_ms BIGINT NOT NULL DEFAULT 0;`,
	},
	{
		Name: "index_generation_jobs_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS generation_jobs_created_at_idx ON generation_jobs (created_at);`,
	},
	{
		// the download name embeds the person's name
		Name: "drop_file_name_from_generation_jobs",
		SQL:  `ALTER TABLE generation_jobs DROP COLUMN IF EXISTS file_name;`,
	},
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		return nil
	}
	logger.Info("starting database migrations")

	for _, m := range Migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			logger.Error("migration failed", zap.String("name", m.Name), zap.Error(err))
			return err
		}
		logger.Info("migration completed", zap.String("name", m.Name))
	}

	logger.Info("all migrations completed")
	return nil
}
