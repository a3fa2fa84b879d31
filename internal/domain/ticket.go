package domain

import "time"

// Severity enumerates ticket urgency, totally ordered low to critical.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// Valid reports whether the severity is a known value.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// AtLeast reports whether the severity is as urgent as the given one.
func (s Severity) AtLeast(other Severity) bool {
	return severityRank[s] >= severityRank[other]
}

// Severities lists all valid severities in ascending urgency.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// Ticket is the immutable intake record for a reported problem.
// Re-processing the same id never mutates the original ticket; it only
// produces new Analysis/Decision/Result records.
type Ticket struct {
	ID          string    `json:"id"`
	MerchantID  string    `json:"merchant_id"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	Timestamp   time.Time `json:"timestamp"`
}
