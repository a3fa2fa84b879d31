package service

import (
	"context"

	"github.com/spec-kit/triage-service/internal/domain"
)

// ReportSummary aggregates the audit trail for analytics.
type ReportSummary struct {
	TotalTickets      int     `json:"total_tickets"`
	Approved          int     `json:"approved"`
	Rejected          int     `json:"rejected"`
	ApprovalRate      float64 `json:"approval_rate"`
	AverageConfidence float64 `json:"average_confidence"`
}

// Report is the exported audit artifact: summary analytics plus the full
// record sequence in insertion order.
type Report struct {
	Summary ReportSummary   `json:"summary"`
	Tickets []domain.Record `json:"tickets"`
}

// ReportService derives analytics and export artifacts from Memory. Memory
// is the sole source: nothing here re-computes pipeline outcomes.
type ReportService struct {
	memory *MemoryService
}

// NewReportService constructs the service.
func NewReportService(memory *MemoryService) *ReportService {
	return &ReportService{memory: memory}
}

// Summary computes aggregate analytics over all records.
func (s *ReportService) Summary(ctx context.Context) (*ReportSummary, error) {
	records, err := s.memory.All(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(records), nil
}

// Export builds the full report artifact.
func (s *ReportService) Export(ctx context.Context) (*Report, error) {
	records, err := s.memory.All(ctx)
	if err != nil {
		return nil, err
	}
	return &Report{
		Summary: *summarize(records),
		Tickets: records,
	}, nil
}

func summarize(records []domain.Record) *ReportSummary {
	summary := &ReportSummary{TotalTickets: len(records)}
	if len(records) == 0 {
		return summary
	}
	totalConfidence := 0.0
	for _, record := range records {
		if record.Approved {
			summary.Approved++
		} else {
			summary.Rejected++
		}
		totalConfidence += record.Analysis.Confidence
	}
	summary.ApprovalRate = float64(summary.Approved) / float64(len(records))
	summary.AverageConfidence = totalConfidence / float64(len(records))
	return summary
}
