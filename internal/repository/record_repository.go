package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/triage-service/internal/domain"
)

// RecordRepository stores the append-only audit trail. No update or delete
// operation exists: records are immutable once appended, and List returns
// them in insertion order.
type RecordRepository interface {
	Append(ctx context.Context, record *domain.Record) error
	List(ctx context.Context) ([]domain.Record, error)
	Count(ctx context.Context) (int64, error)
}

type recordRepository struct {
	pool *pgxpool.Pool
}

// NewRecordRepository builds the postgres-backed repository.
func NewRecordRepository(pool *pgxpool.Pool) RecordRepository {
	return &recordRepository{pool: pool}
}

func (r *recordRepository) Append(ctx context.Context, record *domain.Record) error {
	const query = `
        INSERT INTO triage_records (
            record_id, ticket_id, merchant_id, description, severity, ticket_created_at,
            root_cause, confidence, reasoning,
            action, risk_level, needs_human_approval,
            result_status, result_action, error_detail,
            approved, stored_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`
	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.Ticket.ID,
		record.Ticket.MerchantID,
		record.Ticket.Description,
		record.Ticket.Severity,
		record.Ticket.Timestamp,
		record.Analysis.RootCause,
		record.Analysis.Confidence,
		record.Analysis.Reasoning,
		record.Decision.Action,
		record.Decision.RiskLevel,
		record.Decision.NeedsHumanApproval,
		record.Result.Status,
		record.Result.Action,
		record.Result.ErrorDetail,
		record.Approved,
		record.StoredAt,
	)
	return err
}

func (r *recordRepository) List(ctx context.Context) ([]domain.Record, error) {
	const query = `
        SELECT record_id, ticket_id, merchant_id, description, severity, ticket_created_at,
               root_cause, confidence, reasoning,
               action, risk_level, needs_human_approval,
               result_status, result_action, error_detail,
               approved, stored_at
        FROM triage_records ORDER BY seq ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Record
	for rows.Next() {
		var record domain.Record
		if err := rows.Scan(
			&record.ID,
			&record.Ticket.ID,
			&record.Ticket.MerchantID,
			&record.Ticket.Description,
			&record.Ticket.Severity,
			&record.Ticket.Timestamp,
			&record.Analysis.RootCause,
			&record.Analysis.Confidence,
			&record.Analysis.Reasoning,
			&record.Decision.Action,
			&record.Decision.RiskLevel,
			&record.Decision.NeedsHumanApproval,
			&record.Result.Status,
			&record.Result.Action,
			&record.Result.ErrorDetail,
			&record.Approved,
			&record.StoredAt,
		); err != nil {
			return nil, err
		}
		// The decision snapshot carries the analysis values forward.
		record.Decision.Confidence = record.Analysis.Confidence
		record.Decision.RootCause = record.Analysis.RootCause
		result = append(result, record)
	}
	return result, rows.Err()
}

func (r *recordRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM triage_records`).Scan(&count)
	return count, err
}
