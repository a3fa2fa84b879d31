package events

import (
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketReceived    EventType = "ticket_received"
	EventAnalysisCompleted EventType = "analysis_completed"
	EventDecisionMade      EventType = "decision_made"
	EventApprovalRequested EventType = "approval_requested"
	EventApprovalResolved  EventType = "approval_resolved"
	EventActionExecuted    EventType = "action_executed"
	EventRecordStored      EventType = "record_stored"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type       domain.SubjectType `json:"type"`
	ApproverID *string            `json:"approver_id,omitempty"`
}

// Event represents a pipeline event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketReceivedPayload payload.
type TicketReceivedPayload struct {
	MerchantID string          `json:"merchant_id"`
	Severity   domain.Severity `json:"severity"`
}

// AnalysisCompletedPayload payload.
type AnalysisCompletedPayload struct {
	RootCause  domain.RootCause `json:"root_cause"`
	Confidence float64          `json:"confidence"`
}

// DecisionMadePayload payload.
type DecisionMadePayload struct {
	Action             string           `json:"action"`
	RiskLevel          domain.RiskLevel `json:"risk_level"`
	NeedsHumanApproval bool             `json:"needs_human_approval"`
}

// ApprovalRequestedPayload payload.
type ApprovalRequestedPayload struct {
	Action  string   `json:"action"`
	Reasons []string `json:"reasons"`
}

// ApprovalResolvedPayload payload.
type ApprovalResolvedPayload struct {
	Approved bool   `json:"approved"`
	Action   string `json:"action"`
}

// ActionExecutedPayload payload.
type ActionExecutedPayload struct {
	Action      string              `json:"action"`
	Status      domain.ResultStatus `json:"status"`
	ErrorDetail string              `json:"error_detail,omitempty"`
}

// RecordStoredPayload payload.
type RecordStoredPayload struct {
	RecordID string              `json:"record_id"`
	Status   domain.ResultStatus `json:"status"`
	Approved bool                `json:"approved"`
}
