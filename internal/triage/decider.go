package triage

import (
	"fmt"

	"github.com/spec-kit/triage-service/internal/domain"
)

// approvalConfidenceFloor is the confidence below which automated execution
// requires a human sign-off.
const approvalConfidenceFloor = 0.7

// Decider maps a ticket and its analysis to a remediation decision. Decide
// is deterministic in (severity, root cause, confidence) and has no side
// effects.
type Decider struct{}

// NewDecider constructs the decider.
func NewDecider() *Decider {
	return &Decider{}
}

// Decide selects the remediation action, assigns a risk tier, and determines
// whether the action is gated on human approval.
func (d *Decider) Decide(ticket domain.Ticket, analysis domain.Analysis) domain.Decision {
	needsApproval := needsHumanApproval(ticket, analysis)

	risk := domain.RiskLow
	switch {
	case needsApproval || ticket.Severity.AtLeast(domain.SeverityHigh):
		risk = domain.RiskHigh
	case ticket.Severity == domain.SeverityMedium:
		risk = domain.RiskMedium
	}

	return domain.Decision{
		Action:             ActionFor(analysis.RootCause),
		RiskLevel:          risk,
		NeedsHumanApproval: needsApproval,
		Confidence:         analysis.Confidence,
		RootCause:          analysis.RootCause,
	}
}

// ApprovalReasons derives the human-readable explanation for an approval
// requirement from the same predicates Decide uses, so the policy has a
// single source of truth. Returns nil when no approval is required.
func (d *Decider) ApprovalReasons(ticket domain.Ticket, analysis domain.Analysis) []string {
	var reasons []string
	if ticket.Severity == domain.SeverityCritical {
		reasons = append(reasons, "critical severity ticket")
	}
	if analysis.Confidence < approvalConfidenceFloor {
		reasons = append(reasons, fmt.Sprintf("low confidence (%.0f%%)", analysis.Confidence*100))
	}
	if analysis.RootCause == domain.RootCausePlatformBug {
		reasons = append(reasons, "potential platform bug")
	}
	return reasons
}

func needsHumanApproval(ticket domain.Ticket, analysis domain.Analysis) bool {
	return ticket.Severity == domain.SeverityCritical ||
		analysis.Confidence < approvalConfidenceFloor ||
		analysis.RootCause == domain.RootCausePlatformBug
}

// ActionFor maps every root cause to exactly one remediation action. The
// mapping is total: values outside the taxonomy fall back to the unknown
// action, so no unmapped case can reach the actor.
func ActionFor(cause domain.RootCause) string {
	switch cause {
	case domain.RootCausePlatformBug:
		return "escalate to engineering"
	case domain.RootCauseUserError:
		return "send self-service guide"
	case domain.RootCauseConfigurationIssue:
		return "auto-apply configuration fix"
	case domain.RootCauseMerchantSetup:
		return "send merchant setup checklist"
	default:
		return "request more information"
	}
}
