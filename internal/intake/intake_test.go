package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-service/internal/domain"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

func TestNewTicketValidSubmission(t *testing.T) {
	ticket, err := NewTicket(Submission{
		MerchantID:  " M-1001 ",
		Description: " Checkout page returns 502 ",
		Severity:    "HIGH",
	})
	require.NoError(t, err)

	assert.Equal(t, "M-1001", ticket.MerchantID)
	assert.Equal(t, "Checkout page returns 502", ticket.Description)
	assert.Equal(t, domain.SeverityHigh, ticket.Severity)
	assert.Regexp(t, `^TCK-[0-9A-F]{8}$`, ticket.ID)
	assert.False(t, ticket.Timestamp.IsZero())
}

func TestNewTicketDefaultsSeverityToMedium(t *testing.T) {
	ticket, err := NewTicket(Submission{MerchantID: "M-1001", Description: "forgot password"})
	require.NoError(t, err)
	assert.Equal(t, domain.SeverityMedium, ticket.Severity)
}

func TestNewTicketRejectsInvalidSubmissions(t *testing.T) {
	tests := []struct {
		name string
		sub  Submission
	}{
		{"missing merchant", Submission{Description: "desc"}},
		{"missing description", Submission{MerchantID: "M-1001"}},
		{"blank description", Submission{MerchantID: "M-1001", Description: "   "}},
		{"unknown severity", Submission{MerchantID: "M-1001", Description: "desc", Severity: "urgent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTicket(tt.sub)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
		})
	}
}

func TestNewTicketAssignsFreshIdentity(t *testing.T) {
	sub := Submission{MerchantID: "M-1001", Description: "desc"}

	first, err := NewTicket(sub)
	require.NoError(t, err)
	second, err := NewTicket(sub)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}
