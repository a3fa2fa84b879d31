package repository

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/triage-service/internal/domain"
)

// memoryApproverRepository keeps approvers in process memory for tests and
// for running without postgres. Missing rows report pgx.ErrNoRows so error
// mapping matches the database-backed repository.
type memoryApproverRepository struct {
	mu        sync.RWMutex
	byID      map[string]domain.Approver
	idByEmail map[string]string
}

// NewMemoryApproverRepository builds an in-memory repository.
func NewMemoryApproverRepository() ApproverRepository {
	return &memoryApproverRepository{
		byID:      make(map[string]domain.Approver),
		idByEmail: make(map[string]string),
	}
}

func (r *memoryApproverRepository) Create(ctx context.Context, approver *domain.Approver) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existingID, ok := r.idByEmail[approver.Email]; ok {
		existing := r.byID[existingID]
		existing.Name = approver.Name
		existing.PasswordHash = approver.PasswordHash
		r.byID[existingID] = existing
		*approver = existing
		return nil
	}
	if approver.CreatedAt.IsZero() {
		approver.CreatedAt = time.Now().UTC()
	}
	r.byID[approver.ID] = *approver
	r.idByEmail[approver.Email] = approver.ID
	return nil
}

func (r *memoryApproverRepository) GetByID(ctx context.Context, id string) (*domain.Approver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	approver, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &approver, nil
}

func (r *memoryApproverRepository) GetByEmail(ctx context.Context, email string) (*domain.Approver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.idByEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	approver := r.byID[id]
	return &approver, nil
}
