package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ablab/domain/experiment"
	"ablab/domain/verdict"
)

// SweepRequest analyzes several metric columns of one upload in a single
// call. Every metric gets its own complete, independent pipeline run; the
// runs share nothing mutable, so they may proceed concurrently.
type SweepRequest struct {
	Base    AnalysisRequest // MetricColumn and MetricType taken per entry
	Metrics []SweepMetric
}

// SweepMetric names one metric column and its type.
type SweepMetric struct {
	Column string                `json:"column"`
	Type   experiment.MetricType `json:"type"`
}

// SweepEntry is one metric's outcome within a sweep.
type SweepEntry struct {
	Metric string                  `json:"metric"`
	Report *verdict.AnalysisReport `json:"report,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

// SweepService fans one upload out across metrics.
type SweepService struct {
	analysis *AnalysisService
	// MaxConcurrent bounds simultaneous runs; zero means unbounded.
	MaxConcurrent int
}

// NewSweepService creates a sweep service
func NewSweepService(analysis *AnalysisService) *SweepService {
	return &SweepService{analysis: analysis, MaxConcurrent: 4}
}

// Run analyzes every requested metric. Per-metric validation failures are
// recorded on their entry rather than failing the whole sweep; the slice
// order matches the request order.
func (s *SweepService) Run(ctx context.Context, req SweepRequest) ([]SweepEntry, error) {
	entries := make([]SweepEntry, len(req.Metrics))

	g, _ := errgroup.WithContext(ctx)
	if s.MaxConcurrent > 0 {
		g.SetLimit(s.MaxConcurrent)
	}
	for i, m := range req.Metrics {
		i, m := i, m
		g.Go(func() error {
			r := req.Base
			r.MetricColumn = m.Column
			r.MetricType = m.Type
			report, err := s.analysis.Analyze(r)
			entry := SweepEntry{Metric: m.Column, Report: report}
			if err != nil {
				entry.Error = err.Error()
				entry.Report = nil
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
