package ports

import (
	"context"
	"encoding/json"
	"time"

	"ablab/domain/verdict"
)

// RunRecord is one persisted analysis run, summarized for listing with the
// full report attached as JSON.
type RunRecord struct {
	ID             string          `db:"id" json:"id"`
	ExperimentName string          `db:"experiment_name" json:"experiment_name"`
	MetricColumn   string          `db:"metric_column" json:"metric_column"`
	MetricType     string          `db:"metric_type" json:"metric_type"`
	ChosenTest     string          `db:"chosen_test" json:"chosen_test"`
	PValue         float64         `db:"p_value" json:"p_value"`
	Significant    bool            `db:"significant" json:"significant"`
	Report         json.RawMessage `db:"report" json:"report"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// RunRepository records completed analysis runs for the UI's history view.
// The decision engine itself stays stateless; this is session-scoped state
// owned by the surrounding application.
type RunRepository interface {
	SaveRun(ctx context.Context, report *verdict.AnalysisReport) error
	RecentRuns(ctx context.Context, limit int) ([]RunRecord, error)
}
