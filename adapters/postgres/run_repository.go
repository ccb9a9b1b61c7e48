// Package postgres persists analysis runs when a DATABASE_URL is
// configured. The pipeline never depends on it; absence of a database only
// disables the history view.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"ablab/domain/verdict"
	"ablab/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id              UUID PRIMARY KEY,
	experiment_name TEXT NOT NULL DEFAULT '',
	metric_column   TEXT NOT NULL,
	metric_type     TEXT NOT NULL,
	chosen_test     TEXT NOT NULL,
	p_value         DOUBLE PRECISION NOT NULL,
	significant     BOOLEAN NOT NULL,
	report          JSONB NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL
)`

// RunRepositoryImpl implements RunRepository for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository connects and ensures the runs table exists.
func NewRunRepository(databaseURL string) (*RunRepositoryImpl, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring analysis_runs table: %w", err)
	}
	return &RunRepositoryImpl{db: db}, nil
}

// Close releases the connection pool.
func (r *RunRepositoryImpl) Close() error { return r.db.Close() }

// SaveRun stores one completed analysis run.
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, report *verdict.AnalysisReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO analysis_runs (id, experiment_name, metric_column, metric_type, chosen_test, p_value, significant, report, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, report.RunID, report.ExperimentName, report.MetricColumn, string(report.MetricType),
		string(report.Result.Test), report.Result.PValue, report.Result.Significant, payload, report.AnalyzedAt)
	return err
}

// RecentRuns lists the newest runs first.
func (r *RunRepositoryImpl) RecentRuns(ctx context.Context, limit int) ([]ports.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	records := []ports.RunRecord{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, experiment_name, metric_column, metric_type, chosen_test, p_value, significant, report, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	return records, err
}
