package domain

// RiskLevel grades how consequential an automated action is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Decision is the Decider's output. Confidence and RootCause are carried
// forward from the Analysis so downstream components need not re-join the
// two records. Immutable once produced.
type Decision struct {
	Action             string    `json:"action"`
	RiskLevel          RiskLevel `json:"risk_level"`
	NeedsHumanApproval bool      `json:"needs_human_approval"`
	Confidence         float64   `json:"confidence"`
	RootCause          RootCause `json:"root_cause"`
}
