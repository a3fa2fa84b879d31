package dto

import (
	"github.com/spec-kit/triage-service/internal/domain"
)

// SubmitTicketRequest payload.
type SubmitTicketRequest struct {
	MerchantID  string `json:"merchant_id"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// TriageOutcomeResponse reports what the pipeline did with one ticket.
type TriageOutcomeResponse struct {
	Ticket          domain.Ticket   `json:"ticket"`
	Analysis        domain.Analysis `json:"analysis"`
	Decision        domain.Decision `json:"decision"`
	ApprovalReasons []string        `json:"approval_reasons,omitempty"`
	PendingApproval bool            `json:"pending_approval"`
	Result          *domain.Result  `json:"result,omitempty"`
	RecordID        string          `json:"record_id,omitempty"`
	Approved        *bool           `json:"approved,omitempty"`
}

// BacklogRunResponse reports a backlog processing run.
type BacklogRunResponse struct {
	Processed int                     `json:"processed"`
	Outcomes  []TriageOutcomeResponse `json:"outcomes"`
}
