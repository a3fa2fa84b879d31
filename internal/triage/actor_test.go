package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
)

type scriptedExecutor struct {
	calls    int
	err      error
	panicMsg string
}

func (e *scriptedExecutor) Execute(ctx context.Context, ticket domain.Ticket, decision domain.Decision) error {
	e.calls++
	if e.panicMsg != "" {
		panic(e.panicMsg)
	}
	return e.err
}

func TestActorResolvesNonEscalationActions(t *testing.T) {
	exec := &scriptedExecutor{}
	actor := NewActor(exec, zap.NewNop())
	decision := domain.Decision{Action: "send self-service guide"}

	result := actor.Act(context.Background(), ticketWith("forgot password", domain.SeverityLow), decision)

	assert.Equal(t, domain.StatusResolved, result.Status)
	assert.Equal(t, "send self-service guide", result.Action)
	assert.Empty(t, result.ErrorDetail)
	assert.Equal(t, 1, exec.calls)
}

func TestActorReportsEscalationHandoff(t *testing.T) {
	actor := NewActor(&scriptedExecutor{}, zap.NewNop())
	decision := domain.Decision{Action: "escalate to engineering"}

	result := actor.Act(context.Background(), ticketWith("stack trace on checkout", domain.SeverityHigh), decision)

	assert.Equal(t, domain.StatusEscalated, result.Status)
	assert.Empty(t, result.ErrorDetail)
}

func TestActorCapturesExecutionErrors(t *testing.T) {
	exec := &scriptedExecutor{err: errors.New("merchant system unavailable")}
	actor := NewActor(exec, zap.NewNop())
	decision := domain.Decision{Action: "auto-apply configuration fix"}

	result := actor.Act(context.Background(), ticketWith("502 on checkout", domain.SeverityMedium), decision)

	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.Equal(t, "merchant system unavailable", result.ErrorDetail)
	assert.Equal(t, "auto-apply configuration fix", result.Action)
}

func TestActorCapturesPanics(t *testing.T) {
	exec := &scriptedExecutor{panicMsg: "nil pointer in remediation client"}
	actor := NewActor(exec, zap.NewNop())
	decision := domain.Decision{Action: "auto-apply configuration fix"}

	var result domain.Result
	require.NotPanics(t, func() {
		result = actor.Act(context.Background(), ticketWith("502", domain.SeverityMedium), decision)
	})

	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.Contains(t, result.ErrorDetail, "execution panicked")
	assert.Contains(t, result.ErrorDetail, "nil pointer in remediation client")
}

func TestStubExecutorAlwaysSucceeds(t *testing.T) {
	exec := NewStubExecutor(zap.NewNop())
	err := exec.Execute(context.Background(), ticketWith("desc", domain.SeverityLow), domain.Decision{Action: "send self-service guide"})
	assert.NoError(t, err)
}
