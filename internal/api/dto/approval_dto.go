package dto

import (
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

// PendingApprovalResponse describes a ticket parked at the approval gate.
type PendingApprovalResponse struct {
	TicketID    string          `json:"ticket_id"`
	Ticket      domain.Ticket   `json:"ticket"`
	Analysis    domain.Analysis `json:"analysis"`
	Decision    domain.Decision `json:"decision"`
	Reasons     []string        `json:"reasons"`
	RequestedAt time.Time       `json:"requested_at"`
	AgeSeconds  int64           `json:"age_seconds"`
}

// ResolveApprovalResponse returns the record produced by a resolution.
type ResolveApprovalResponse struct {
	Record domain.Record `json:"record"`
}
