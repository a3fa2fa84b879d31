package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/approval"
	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/intake"
	"github.com/spec-kit/triage-service/internal/observability"
	"github.com/spec-kit/triage-service/internal/triage"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

// TriageService runs the decision pipeline: reason, decide, gate, act,
// record. Every ticket that enters Process terminates in exactly one stored
// record, either immediately or once its suspension is resolved.
type TriageService struct {
	reasoner   *triage.Reasoner
	decider    *triage.Decider
	actor      *triage.Actor
	memory     *MemoryService
	gate       *approval.Gate
	source     intake.Source
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// TriageDependencies bundles collaborators for the triage service.
type TriageDependencies struct {
	Reasoner   *triage.Reasoner
	Decider    *triage.Decider
	Actor      *triage.Actor
	Memory     *MemoryService
	Gate       *approval.Gate
	Source     intake.Source
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// TriageOutcome reports what the pipeline did with one ticket. Record is nil
// while the ticket is suspended at the approval gate.
type TriageOutcome struct {
	Ticket          domain.Ticket
	Analysis        domain.Analysis
	Decision        domain.Decision
	ApprovalReasons []string
	Suspended       bool
	Record          *domain.Record
}

// NewTriageService constructs the service.
func NewTriageService(deps TriageDependencies) *TriageService {
	return &TriageService{
		reasoner:   deps.Reasoner,
		decider:    deps.Decider,
		actor:      deps.Actor,
		memory:     deps.Memory,
		gate:       deps.Gate,
		source:     deps.Source,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// Process runs one ticket through the pipeline. Tickets whose decision
// requires human approval are suspended at the gate; everything else
// executes and is recorded before Process returns.
func (s *TriageService) Process(ctx context.Context, ticket domain.Ticket) (*TriageOutcome, error) {
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketReceived,
		TicketID: ticket.ID,
		Actor:    systemActor(),
		Payload: events.TicketReceivedPayload{
			MerchantID: ticket.MerchantID,
			Severity:   ticket.Severity,
		},
	})

	analysis := s.reasoner.Reason(ticket)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventAnalysisCompleted,
		TicketID: ticket.ID,
		Actor:    systemActor(),
		Payload: events.AnalysisCompletedPayload{
			RootCause:  analysis.RootCause,
			Confidence: analysis.Confidence,
		},
	})

	decision := s.decider.Decide(ticket, analysis)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventDecisionMade,
		TicketID: ticket.ID,
		Actor:    systemActor(),
		Payload: events.DecisionMadePayload{
			Action:             decision.Action,
			RiskLevel:          decision.RiskLevel,
			NeedsHumanApproval: decision.NeedsHumanApproval,
		},
	})

	outcome := &TriageOutcome{
		Ticket:   ticket,
		Analysis: analysis,
		Decision: decision,
	}

	if decision.NeedsHumanApproval {
		reasons := s.decider.ApprovalReasons(ticket, analysis)
		err := s.gate.Suspend(ctx, approval.PendingApproval{
			TicketID: ticket.ID,
			Ticket:   ticket,
			Analysis: analysis,
			Decision: decision,
			Reasons:  reasons,
		})
		if errors.Is(err, approval.ErrAlreadyPending) {
			return nil, apperrors.NewConflict("ticket already awaiting approval", map[string]any{
				"ticket_id": ticket.ID,
			})
		}
		if err != nil {
			return nil, err
		}
		s.metrics.RecordSuspension()
		s.publishEvent(ctx, events.Event{
			Type:     events.EventApprovalRequested,
			TicketID: ticket.ID,
			Actor:    systemActor(),
			Payload: events.ApprovalRequestedPayload{
				Action:  decision.Action,
				Reasons: reasons,
			},
		})
		s.logger.Info("ticket suspended awaiting approval",
			zap.String("ticket_id", ticket.ID),
			zap.Strings("reasons", reasons))
		outcome.ApprovalReasons = reasons
		outcome.Suspended = true
		return outcome, nil
	}

	record, err := s.execute(ctx, ticket, analysis, decision, true, systemActor())
	if err != nil {
		return nil, err
	}
	outcome.Record = record
	return outcome, nil
}

// Resolve applies a human approve/reject signal to the suspended pipeline
// instance for the given ticket. On approval the original decision executes
// unchanged; on rejection the remediation is never invoked and a
// rejected_by_human record is stored with approved=false.
func (s *TriageService) Resolve(ctx context.Context, ticketID string, approved bool, approverID string) (*domain.Record, error) {
	pending, err := s.gate.Resolve(ctx, ticketID)
	if errors.Is(err, approval.ErrNotPending) {
		return nil, apperrors.NewNotFound("pending approval", map[string]any{"ticket_id": ticketID})
	}
	if err != nil {
		return nil, err
	}

	actor := approverActor(approverID)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventApprovalResolved,
		TicketID: ticketID,
		Actor:    actor,
		Payload: events.ApprovalResolvedPayload{
			Approved: approved,
			Action:   pending.Decision.Action,
		},
	})

	if approved {
		return s.execute(ctx, pending.Ticket, pending.Analysis, pending.Decision, true, actor)
	}

	result := domain.Result{
		Status: domain.StatusRejectedByHuman,
		Action: pending.Decision.Action,
	}
	return s.record(ctx, pending.Ticket, pending.Analysis, pending.Decision, result, false, actor)
}

// ProcessBacklog drains the intake source through the pipeline one ticket at
// a time. Storage failures are logged and do not stop the remaining tickets.
func (s *TriageService) ProcessBacklog(ctx context.Context) ([]TriageOutcome, error) {
	tickets := s.source.Observe(ctx)
	outcomes := make([]TriageOutcome, 0, len(tickets))
	for _, ticket := range tickets {
		outcome, err := s.Process(ctx, ticket)
		if err != nil {
			s.logger.Error("backlog ticket failed to process",
				zap.String("ticket_id", ticket.ID),
				zap.Error(err))
			continue
		}
		outcomes = append(outcomes, *outcome)
	}
	return outcomes, nil
}

// Pending lists tickets currently parked at the approval gate.
func (s *TriageService) Pending(ctx context.Context) ([]approval.PendingApproval, error) {
	return s.gate.Pending(ctx)
}

func (s *TriageService) execute(ctx context.Context, ticket domain.Ticket, analysis domain.Analysis, decision domain.Decision, approved bool, actor events.Actor) (*domain.Record, error) {
	result := s.actor.Act(ctx, ticket, decision)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventActionExecuted,
		TicketID: ticket.ID,
		Actor:    actor,
		Payload: events.ActionExecutedPayload{
			Action:      result.Action,
			Status:      result.Status,
			ErrorDetail: result.ErrorDetail,
		},
	})
	return s.record(ctx, ticket, analysis, decision, result, approved, actor)
}

// record appends the audit entry. The pipeline owns this append, immediately
// after the actor returns, so no executed action goes unrecorded.
func (s *TriageService) record(ctx context.Context, ticket domain.Ticket, analysis domain.Analysis, decision domain.Decision, result domain.Result, approved bool, actor events.Actor) (*domain.Record, error) {
	record := &domain.Record{
		Ticket:   ticket,
		Analysis: analysis,
		Decision: decision,
		Result:   result,
		Approved: approved,
	}
	if err := s.memory.Store(ctx, record); err != nil {
		return nil, err
	}
	s.metrics.RecordOutcome(result.Status)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventRecordStored,
		TicketID: ticket.ID,
		Actor:    actor,
		Payload: events.RecordStoredPayload{
			RecordID: record.ID,
			Status:   result.Status,
			Approved: approved,
		},
	})
	return record, nil
}

func (s *TriageService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func systemActor() events.Actor {
	return events.Actor{Type: domain.SubjectTypeSystem}
}

func approverActor(approverID string) events.Actor {
	return events.Actor{
		Type:       domain.SubjectTypeApprover,
		ApproverID: &approverID,
	}
}
