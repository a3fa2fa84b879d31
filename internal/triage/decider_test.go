package triage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-service/internal/domain"
)

func TestDecideApprovalPolicy(t *testing.T) {
	decider := NewDecider()
	confidences := []float64{0.10, 0.50, 0.69, 0.70, 0.80, 0.95}

	for _, severity := range domain.Severities() {
		for _, cause := range domain.RootCauses() {
			for _, confidence := range confidences {
				name := fmt.Sprintf("%s/%s/%.2f", severity, cause, confidence)
				t.Run(name, func(t *testing.T) {
					ticket := ticketWith("desc", severity)
					analysis := domain.Analysis{RootCause: cause, Confidence: confidence}

					decision := decider.Decide(ticket, analysis)

					wantApproval := severity == domain.SeverityCritical ||
						confidence < approvalConfidenceFloor ||
						cause == domain.RootCausePlatformBug
					assert.Equal(t, wantApproval, decision.NeedsHumanApproval)

					reasons := decider.ApprovalReasons(ticket, analysis)
					if wantApproval {
						assert.NotEmpty(t, reasons)
					} else {
						assert.Empty(t, reasons)
					}
				})
			}
		}
	}
}

func TestDecideRiskTiers(t *testing.T) {
	decider := NewDecider()

	tests := []struct {
		name       string
		severity   domain.Severity
		analysis   domain.Analysis
		wantRisk   domain.RiskLevel
		wantGating bool
	}{
		{
			name:     "low severity confident user error is low risk",
			severity: domain.SeverityLow,
			analysis: domain.Analysis{RootCause: domain.RootCauseUserError, Confidence: 0.80},
			wantRisk: domain.RiskLow,
		},
		{
			name:     "medium severity confident configuration issue is medium risk",
			severity: domain.SeverityMedium,
			analysis: domain.Analysis{RootCause: domain.RootCauseConfigurationIssue, Confidence: 0.95},
			wantRisk: domain.RiskMedium,
		},
		{
			name:     "high severity is high risk even without gating",
			severity: domain.SeverityHigh,
			analysis: domain.Analysis{RootCause: domain.RootCauseConfigurationIssue, Confidence: 0.95},
			wantRisk: domain.RiskHigh,
		},
		{
			name:       "low severity platform bug is high risk because it gates",
			severity:   domain.SeverityLow,
			analysis:   domain.Analysis{RootCause: domain.RootCausePlatformBug, Confidence: 0.90},
			wantRisk:   domain.RiskHigh,
			wantGating: true,
		},
		{
			name:       "low confidence forces high risk",
			severity:   domain.SeverityLow,
			analysis:   domain.Analysis{RootCause: domain.RootCauseUserError, Confidence: 0.40},
			wantRisk:   domain.RiskHigh,
			wantGating: true,
		},
		{
			name:       "critical severity forces high risk",
			severity:   domain.SeverityCritical,
			analysis:   domain.Analysis{RootCause: domain.RootCauseUserError, Confidence: 0.95},
			wantRisk:   domain.RiskHigh,
			wantGating: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := decider.Decide(ticketWith("desc", tt.severity), tt.analysis)
			assert.Equal(t, tt.wantRisk, decision.RiskLevel)
			assert.Equal(t, tt.wantGating, decision.NeedsHumanApproval)
		})
	}
}

func TestActionForIsTotal(t *testing.T) {
	want := map[domain.RootCause]string{
		domain.RootCausePlatformBug:        "escalate to engineering",
		domain.RootCauseUserError:          "send self-service guide",
		domain.RootCauseConfigurationIssue: "auto-apply configuration fix",
		domain.RootCauseMerchantSetup:      "send merchant setup checklist",
		domain.RootCauseUnknown:            "request more information",
	}
	for cause, action := range want {
		assert.Equal(t, action, ActionFor(cause), "cause %s", cause)
	}

	// Values outside the taxonomy still map to an action.
	assert.Equal(t, "request more information", ActionFor(domain.RootCause("nonsense")))
}

func TestApprovalReasonsMatchPolicy(t *testing.T) {
	decider := NewDecider()

	t.Run("critical high confidence ticket", func(t *testing.T) {
		ticket := ticketWith("Checkout page returns 502", domain.SeverityCritical)
		analysis := domain.Analysis{RootCause: domain.RootCauseConfigurationIssue, Confidence: 0.95}

		decision := decider.Decide(ticket, analysis)
		require.True(t, decision.NeedsHumanApproval)

		reasons := decider.ApprovalReasons(ticket, analysis)
		assert.Equal(t, []string{"critical severity ticket"}, reasons)
	})

	t.Run("platform bug with low confidence stacks reasons", func(t *testing.T) {
		ticket := ticketWith("something broken", domain.SeverityMedium)
		analysis := domain.Analysis{RootCause: domain.RootCausePlatformBug, Confidence: 0.45}

		reasons := decider.ApprovalReasons(ticket, analysis)
		assert.Equal(t, []string{"low confidence (45%)", "potential platform bug"}, reasons)
	})

	t.Run("no gating yields no reasons", func(t *testing.T) {
		ticket := ticketWith("forgot password", domain.SeverityLow)
		analysis := domain.Analysis{RootCause: domain.RootCauseUserError, Confidence: 0.80}

		require.False(t, decider.Decide(ticket, analysis).NeedsHumanApproval)
		assert.Nil(t, decider.ApprovalReasons(ticket, analysis))
	})
}

func TestDecideCarriesAnalysisForward(t *testing.T) {
	decider := NewDecider()
	analysis := domain.Analysis{RootCause: domain.RootCauseMerchantSetup, Confidence: 0.85}

	decision := decider.Decide(ticketWith("store setup help", domain.SeverityLow), analysis)

	assert.Equal(t, analysis.Confidence, decision.Confidence)
	assert.Equal(t, analysis.RootCause, decision.RootCause)
	assert.Equal(t, "send merchant setup checklist", decision.Action)
}
