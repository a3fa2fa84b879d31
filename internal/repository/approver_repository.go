package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/triage-service/internal/domain"
)

// ApproverRepository stores humans allowed to resolve pending approvals.
type ApproverRepository interface {
	Create(ctx context.Context, approver *domain.Approver) error
	GetByID(ctx context.Context, id string) (*domain.Approver, error)
	GetByEmail(ctx context.Context, email string) (*domain.Approver, error)
}

type approverRepository struct {
	pool *pgxpool.Pool
}

// NewApproverRepository builds the postgres-backed repository.
func NewApproverRepository(pool *pgxpool.Pool) ApproverRepository {
	return &approverRepository{pool: pool}
}

func (r *approverRepository) Create(ctx context.Context, approver *domain.Approver) error {
	const query = `
        INSERT INTO approvers (id, email, name, password_hash)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		approver.ID,
		approver.Email,
		approver.Name,
		approver.PasswordHash,
	).Scan(&approver.ID, &approver.CreatedAt)
}

func (r *approverRepository) GetByID(ctx context.Context, id string) (*domain.Approver, error) {
	const query = `
        SELECT id, email, name, password_hash, created_at
        FROM approvers WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *approverRepository) GetByEmail(ctx context.Context, email string) (*domain.Approver, error) {
	const query = `
        SELECT id, email, name, password_hash, created_at
        FROM approvers WHERE email=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *approverRepository) scanOne(row rowScanner) (*domain.Approver, error) {
	var approver domain.Approver
	if err := row.Scan(
		&approver.ID,
		&approver.Email,
		&approver.Name,
		&approver.PasswordHash,
		&approver.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &approver, nil
}
