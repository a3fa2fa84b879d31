package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/repository"
)

// MemoryService is the pipeline's append-only audit memory. It owns record
// identity stamping and the derived analytics the audit trail feeds.
type MemoryService struct {
	records repository.RecordRepository
}

// NewMemoryService constructs the service.
func NewMemoryService(records repository.RecordRepository) *MemoryService {
	return &MemoryService{records: records}
}

// Store appends a record, stamping id and storage time when unset.
func (s *MemoryService) Store(ctx context.Context, record *domain.Record) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.StoredAt.IsZero() {
		record.StoredAt = time.Now().UTC()
	}
	return s.records.Append(ctx, record)
}

// All returns every record in insertion order.
func (s *MemoryService) All(ctx context.Context) ([]domain.Record, error) {
	return s.records.List(ctx)
}

// Count returns the number of stored records.
func (s *MemoryService) Count(ctx context.Context) (int64, error) {
	return s.records.Count(ctx)
}

// ApprovalRate returns the fraction of records stored with approval, zero
// when nothing has been recorded yet.
func (s *MemoryService) ApprovalRate(ctx context.Context) (float64, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	approved := 0
	for _, record := range records {
		if record.Approved {
			approved++
		}
	}
	return float64(approved) / float64(len(records)), nil
}

// AverageConfidence returns the mean analysis confidence across all records,
// zero when nothing has been recorded yet.
func (s *MemoryService) AverageConfidence(ctx context.Context) (float64, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	total := 0.0
	for _, record := range records {
		total += record.Analysis.Confidence
	}
	return total / float64(len(records)), nil
}
