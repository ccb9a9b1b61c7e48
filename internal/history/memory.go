// Package history keeps recent analysis runs in memory when no database is
// configured. Explicit session-scoped state, not hidden module globals.
package history

import (
	"context"
	"encoding/json"
	"sync"

	"ablab/domain/verdict"
	"ablab/ports"
)

// MemoryStore is a bounded in-memory RunRepository.
type MemoryStore struct {
	mu      sync.RWMutex
	records []ports.RunRecord
	cap     int
}

// NewMemoryStore creates a store keeping at most capacity runs.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 100
	}
	return &MemoryStore{cap: capacity}
}

// SaveRun appends a run, evicting the oldest past capacity.
func (s *MemoryStore) SaveRun(_ context.Context, report *verdict.AnalysisReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	rec := ports.RunRecord{
		ID:             report.RunID,
		ExperimentName: report.ExperimentName,
		MetricColumn:   report.MetricColumn,
		MetricType:     string(report.MetricType),
		ChosenTest:     string(report.Result.Test),
		PValue:         report.Result.PValue,
		Significant:    report.Result.Significant,
		Report:         payload,
		CreatedAt:      report.AnalyzedAt,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	if len(s.records) > s.cap {
		s.records = s.records[len(s.records)-s.cap:]
	}
	return nil
}

// RecentRuns lists the newest runs first.
func (s *MemoryStore) RecentRuns(_ context.Context, limit int) ([]ports.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}
	out := make([]ports.RunRecord, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}
