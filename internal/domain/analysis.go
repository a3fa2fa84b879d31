package domain

// RootCause is the closed taxonomy of underlying ticket causes.
type RootCause string

const (
	RootCausePlatformBug        RootCause = "platform_bug"
	RootCauseUserError          RootCause = "user_error"
	RootCauseConfigurationIssue RootCause = "configuration_issue"
	RootCauseMerchantSetup      RootCause = "merchant_setup"
	RootCauseUnknown            RootCause = "unknown"
)

// RootCauses lists every taxonomy value.
func RootCauses() []RootCause {
	return []RootCause{
		RootCausePlatformBug,
		RootCauseUserError,
		RootCauseConfigurationIssue,
		RootCauseMerchantSetup,
		RootCauseUnknown,
	}
}

// Analysis is the Reasoner's output for a single ticket. It is owned by the
// ticket it analyzes and never mutated after creation.
type Analysis struct {
	RootCause  RootCause `json:"root_cause"`
	Confidence float64   `json:"confidence"`
	Reasoning  string    `json:"reasoning"`
}
