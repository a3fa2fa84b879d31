package domain

// ResultStatus enumerates terminal pipeline outcomes.
type ResultStatus string

const (
	StatusResolved        ResultStatus = "resolved"
	StatusEscalated       ResultStatus = "escalated"
	StatusRejectedByHuman ResultStatus = "rejected_by_human"
	StatusFailed          ResultStatus = "failed"
)

// Result is the Actor's output. Action mirrors Decision.Action unless the
// decision was rejected before execution. ErrorDetail is populated only for
// failed executions.
type Result struct {
	Status      ResultStatus `json:"status"`
	Action      string       `json:"action"`
	ErrorDetail string       `json:"error_detail,omitempty"`
}
