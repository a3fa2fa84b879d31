package domain

import "time"

// Record is the durable audit entry for a fully processed ticket. Records
// are append-only: once stored they are never mutated or deleted, and their
// insertion order is the system's audit trail.
type Record struct {
	ID       string    `json:"record_id"`
	Ticket   Ticket    `json:"ticket"`
	Analysis Analysis  `json:"analysis"`
	Decision Decision  `json:"decision"`
	Result   Result    `json:"result"`
	Approved bool      `json:"approved"`
	StoredAt time.Time `json:"stored_at"`
}
