package triage

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
)

// Executor is the remediation surface the actor drives. Implementations
// perform (or simulate) the declared effect and report failure via error.
type Executor interface {
	Execute(ctx context.Context, ticket domain.Ticket, decision domain.Decision) error
}

// Actor carries out approved decisions. Act never returns an error to the
// caller: every execution fault is captured and reported as a failed Result
// with a diagnostic detail.
type Actor struct {
	executor Executor
	logger   *zap.Logger
}

// NewActor constructs the actor.
func NewActor(executor Executor, logger *zap.Logger) *Actor {
	return &Actor{executor: executor, logger: logger}
}

// Act executes the decision's action and reports its terminal status.
func (a *Actor) Act(ctx context.Context, ticket domain.Ticket, decision domain.Decision) (result domain.Result) {
	result = domain.Result{Action: decision.Action}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("action execution panicked",
				zap.String("ticket_id", ticket.ID),
				zap.String("action", decision.Action),
				zap.Any("panic", r))
			result.Status = domain.StatusFailed
			result.ErrorDetail = fmt.Sprintf("execution panicked: %v", r)
		}
	}()

	if err := a.executor.Execute(ctx, ticket, decision); err != nil {
		a.logger.Warn("action execution failed",
			zap.String("ticket_id", ticket.ID),
			zap.String("action", decision.Action),
			zap.Error(err))
		result.Status = domain.StatusFailed
		result.ErrorDetail = err.Error()
		return result
	}

	if isEscalation(decision.Action) {
		// Success for an escalation means "handed off", not "fixed".
		result.Status = domain.StatusEscalated
	} else {
		result.Status = domain.StatusResolved
	}
	return result
}

func isEscalation(action string) bool {
	return strings.HasPrefix(action, "escalate")
}

// StubExecutor is the default remediation surface. It declares the effect in
// the log and reports success; real merchant-system calls live behind the
// Executor boundary.
type StubExecutor struct {
	logger *zap.Logger
}

// NewStubExecutor constructs the stub.
func NewStubExecutor(logger *zap.Logger) *StubExecutor {
	return &StubExecutor{logger: logger}
}

// Execute logs the declared effect.
func (e *StubExecutor) Execute(ctx context.Context, ticket domain.Ticket, decision domain.Decision) error {
	e.logger.Info("executing remediation",
		zap.String("ticket_id", ticket.ID),
		zap.String("merchant_id", ticket.MerchantID),
		zap.String("action", decision.Action),
		zap.String("risk_level", string(decision.RiskLevel)))
	return nil
}
