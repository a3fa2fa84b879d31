package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/triage-service/internal/domain"
)

// memoryRecordRepository is an in-process append log. Appends are serialized
// behind a mutex so concurrent pipelines never interleave partial records;
// reads return copies so callers cannot mutate stored history. Contents do
// not survive a restart, which limits audit usefulness to a single run.
type memoryRecordRepository struct {
	mu      sync.RWMutex
	records []domain.Record
}

// NewMemoryRecordRepository builds an in-memory repository for tests and for
// running without postgres.
func NewMemoryRecordRepository() RecordRepository {
	return &memoryRecordRepository{}
}

func (r *memoryRecordRepository) Append(ctx context.Context, record *domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	return nil
}

func (r *memoryRecordRepository) List(ctx context.Context) ([]domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *memoryRecordRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.records)), nil
}
