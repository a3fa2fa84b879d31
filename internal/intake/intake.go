package intake

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/triage-service/internal/domain"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

// Submission is a raw ticket submission before validation. Invalid
// submissions are rejected here, before a Ticket entity exists, and never
// reach the pipeline or the audit trail.
type Submission struct {
	MerchantID  string `json:"merchant_id"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// NewTicket validates a submission and constructs an immutable Ticket with a
// fresh id and creation timestamp.
func NewTicket(sub Submission) (domain.Ticket, error) {
	merchantID := strings.TrimSpace(sub.MerchantID)
	description := strings.TrimSpace(sub.Description)
	if merchantID == "" || description == "" {
		return domain.Ticket{}, apperrors.NewValidationError("merchant_id and description required", nil)
	}

	severity := domain.Severity(strings.ToLower(strings.TrimSpace(sub.Severity)))
	if severity == "" {
		severity = domain.SeverityMedium
	}
	if !severity.Valid() {
		return domain.Ticket{}, apperrors.NewValidationError("invalid severity", map[string]any{
			"severity": sub.Severity,
		})
	}

	return domain.Ticket{
		ID:          generateTicketID(),
		MerchantID:  merchantID,
		Description: description,
		Severity:    severity,
		Timestamp:   time.Now().UTC(),
	}, nil
}

func generateTicketID() string {
	return "TCK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
