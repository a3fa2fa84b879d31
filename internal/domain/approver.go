package domain

import "time"

// SubjectType identifies the kind of actor behind an operation.
type SubjectType string

const (
	SubjectTypeSystem   SubjectType = "system"
	SubjectTypeApprover SubjectType = "approver"
)

// Approver is a human allowed to resolve pending approvals.
type Approver struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
