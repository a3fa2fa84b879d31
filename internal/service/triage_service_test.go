package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/approval"
	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/observability"
	"github.com/spec-kit/triage-service/internal/repository"
	"github.com/spec-kit/triage-service/internal/triage"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

type countingExecutor struct {
	calls int
	err   error
}

func (e *countingExecutor) Execute(ctx context.Context, ticket domain.Ticket, decision domain.Decision) error {
	e.calls++
	return e.err
}

func newTestTriage(t *testing.T, exec triage.Executor) (*TriageService, *MemoryService) {
	t.Helper()
	memory := NewMemoryService(repository.NewMemoryRecordRepository())
	svc := NewTriageService(TriageDependencies{
		Reasoner:   triage.NewReasoner(),
		Decider:    triage.NewDecider(),
		Actor:      triage.NewActor(exec, zap.NewNop()),
		Memory:     memory,
		Gate:       approval.NewGate(approval.NewMemoryStore()),
		Dispatcher: events.NewInMemoryDispatcher(),
		Metrics:    observability.NewMetrics(),
		Logger:     zap.NewNop(),
	})
	return svc, memory
}

func testTicket(id, description string, severity domain.Severity) domain.Ticket {
	return domain.Ticket{
		ID:          id,
		MerchantID:  "M-1001",
		Description: description,
		Severity:    severity,
	}
}

func TestProcessExecutesConfidentLowRiskTickets(t *testing.T) {
	exec := &countingExecutor{}
	svc, memory := newTestTriage(t, exec)
	ctx := context.Background()

	outcome, err := svc.Process(ctx, testTicket("TCK-0001", "Checkout page returns 502", domain.SeverityMedium))
	require.NoError(t, err)

	assert.False(t, outcome.Suspended)
	require.NotNil(t, outcome.Record)
	assert.Equal(t, domain.RootCauseConfigurationIssue, outcome.Analysis.RootCause)
	assert.Equal(t, "auto-apply configuration fix", outcome.Decision.Action)
	assert.Equal(t, domain.StatusResolved, outcome.Record.Result.Status)
	assert.True(t, outcome.Record.Approved)
	assert.Equal(t, 1, exec.calls)

	count, err := memory.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestProcessSuspendsGatedTickets(t *testing.T) {
	exec := &countingExecutor{}
	svc, memory := newTestTriage(t, exec)
	ctx := context.Background()

	outcome, err := svc.Process(ctx, testTicket("TCK-0002", "Whole site down, customers see a stack trace", domain.SeverityCritical))
	require.NoError(t, err)

	assert.True(t, outcome.Suspended)
	assert.Nil(t, outcome.Record)
	assert.NotEmpty(t, outcome.ApprovalReasons)
	assert.Equal(t, 0, exec.calls, "suspended decision must not execute")

	count, err := memory.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "no record until the suspension resolves")

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "TCK-0002", pending[0].TicketID)
}

func TestProcessRejectsDuplicateSuspension(t *testing.T) {
	svc, _ := newTestTriage(t, &countingExecutor{})
	ctx := context.Background()
	ticket := testTicket("TCK-0003", "site down", domain.SeverityCritical)

	_, err := svc.Process(ctx, ticket)
	require.NoError(t, err)

	_, err = svc.Process(ctx, ticket)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestResolveApprovalExecutesOriginalDecision(t *testing.T) {
	exec := &countingExecutor{}
	svc, memory := newTestTriage(t, exec)
	ctx := context.Background()

	outcome, err := svc.Process(ctx, testTicket("TCK-0004", "Customers see a stack trace on checkout", domain.SeverityHigh))
	require.NoError(t, err)
	require.True(t, outcome.Suspended)

	record, err := svc.Resolve(ctx, "TCK-0004", true, "approver-1")
	require.NoError(t, err)

	assert.Equal(t, 1, exec.calls)
	assert.Equal(t, outcome.Decision.Action, record.Result.Action)
	assert.Equal(t, domain.StatusEscalated, record.Result.Status)
	assert.True(t, record.Approved)

	count, err := memory.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestResolveRejectionNeverExecutes(t *testing.T) {
	exec := &countingExecutor{}
	svc, memory := newTestTriage(t, exec)
	ctx := context.Background()

	_, err := svc.Process(ctx, testTicket("TCK-0005", "site down", domain.SeverityCritical))
	require.NoError(t, err)

	record, err := svc.Resolve(ctx, "TCK-0005", false, "approver-1")
	require.NoError(t, err)

	assert.Equal(t, 0, exec.calls, "rejected remediation must never be invoked")
	assert.Equal(t, domain.StatusRejectedByHuman, record.Result.Status)
	assert.Equal(t, "escalate to engineering", record.Result.Action)
	assert.False(t, record.Approved)
	assert.Empty(t, record.Result.ErrorDetail)

	count, err := memory.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestResolveIsExactlyOnce(t *testing.T) {
	svc, _ := newTestTriage(t, &countingExecutor{})
	ctx := context.Background()

	_, err := svc.Process(ctx, testTicket("TCK-0006", "site down", domain.SeverityCritical))
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, "TCK-0006", true, "approver-1")
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, "TCK-0006", true, "approver-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestResolveUnknownTicket(t *testing.T) {
	svc, _ := newTestTriage(t, &countingExecutor{})

	_, err := svc.Resolve(context.Background(), "TCK-MISSING", true, "approver-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestProcessRecordsExecutionFailures(t *testing.T) {
	exec := &countingExecutor{err: errors.New("remediation backend unreachable")}
	svc, _ := newTestTriage(t, exec)

	outcome, err := svc.Process(context.Background(), testTicket("TCK-0007", "Checkout page returns 502", domain.SeverityMedium))
	require.NoError(t, err, "execution faults are captured, not returned")

	require.NotNil(t, outcome.Record)
	assert.Equal(t, domain.StatusFailed, outcome.Record.Result.Status)
	assert.Equal(t, "remediation backend unreachable", outcome.Record.Result.ErrorDetail)
}

func TestIdenticalTicketsDivergeOnHumanSignal(t *testing.T) {
	exec := &countingExecutor{}
	svc, memory := newTestTriage(t, exec)
	ctx := context.Background()
	description := "Whole site down for every customer"

	_, err := svc.Process(ctx, testTicket("TCK-A", description, domain.SeverityCritical))
	require.NoError(t, err)
	_, err = svc.Process(ctx, testTicket("TCK-B", description, domain.SeverityCritical))
	require.NoError(t, err)

	approvedRecord, err := svc.Resolve(ctx, "TCK-A", true, "approver-1")
	require.NoError(t, err)
	rejectedRecord, err := svc.Resolve(ctx, "TCK-B", false, "approver-1")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusEscalated, approvedRecord.Result.Status)
	assert.True(t, approvedRecord.Approved)
	assert.Equal(t, domain.StatusRejectedByHuman, rejectedRecord.Result.Status)
	assert.False(t, rejectedRecord.Approved)
	assert.Equal(t, approvedRecord.Result.Action, rejectedRecord.Result.Action,
		"same decision, different terminal status")

	records, err := memory.All(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestEveryProcessedTicketIsRecorded(t *testing.T) {
	svc, memory := newTestTriage(t, &countingExecutor{})
	ctx := context.Background()

	descriptions := []string{
		"Checkout page returns 502",
		"forgot password",
		"stuck on store setup",
		"nothing matches this wording at all",
	}
	for i, description := range descriptions {
		_, err := svc.Process(ctx, testTicket(fmt.Sprintf("TCK-%04d", i), description, domain.SeverityLow))
		require.NoError(t, err)
	}

	// The unknown-cause ticket gates on low confidence; resolve it so every
	// submitted ticket reaches a terminal record.
	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	for _, p := range pending {
		_, err := svc.Resolve(ctx, p.TicketID, true, "approver-1")
		require.NoError(t, err)
	}

	count, err := memory.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(descriptions)), count)

	records, err := memory.All(ctx)
	require.NoError(t, err)
	for _, record := range records {
		assert.NotEmpty(t, record.ID)
		assert.NotEmpty(t, record.Result.Status)
		assert.False(t, record.StoredAt.IsZero())
	}
}
