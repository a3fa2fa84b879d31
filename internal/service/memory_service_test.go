package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/repository"
)

func storedRecord(confidence float64, approved bool) *domain.Record {
	return &domain.Record{
		Ticket: domain.Ticket{
			ID:          "TCK-0001",
			MerchantID:  "M-1001",
			Description: "desc",
			Severity:    domain.SeverityMedium,
		},
		Analysis: domain.Analysis{RootCause: domain.RootCauseUserError, Confidence: confidence},
		Decision: domain.Decision{Action: "send self-service guide"},
		Result:   domain.Result{Status: domain.StatusResolved, Action: "send self-service guide"},
		Approved: approved,
	}
}

func TestMemoryServiceStampsIdentity(t *testing.T) {
	memory := NewMemoryService(repository.NewMemoryRecordRepository())
	record := storedRecord(0.8, true)

	require.NoError(t, memory.Store(context.Background(), record))

	assert.NotEmpty(t, record.ID)
	assert.False(t, record.StoredAt.IsZero())
}

func TestMemoryServiceAnalyticsOnEmptyTrail(t *testing.T) {
	memory := NewMemoryService(repository.NewMemoryRecordRepository())
	ctx := context.Background()

	count, err := memory.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	rate, err := memory.ApprovalRate(ctx)
	require.NoError(t, err)
	assert.Zero(t, rate)

	avg, err := memory.AverageConfidence(ctx)
	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestMemoryServiceAnalytics(t *testing.T) {
	memory := NewMemoryService(repository.NewMemoryRecordRepository())
	ctx := context.Background()

	require.NoError(t, memory.Store(ctx, storedRecord(0.9, true)))
	require.NoError(t, memory.Store(ctx, storedRecord(0.5, true)))
	require.NoError(t, memory.Store(ctx, storedRecord(0.7, false)))

	count, err := memory.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	rate, err := memory.ApprovalRate(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, rate, 1e-9)

	avg, err := memory.AverageConfidence(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, avg, 1e-9)
}
