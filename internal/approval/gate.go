package approval

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

// ErrNotPending is returned when no suspended pipeline exists for a ticket.
var ErrNotPending = errors.New("no pending approval for ticket")

// ErrAlreadyPending is returned when a ticket is suspended twice.
var ErrAlreadyPending = errors.New("ticket already awaiting approval")

// PendingApproval is a pipeline instance parked at the human gate. It holds
// everything needed to resume: the decision executes unchanged on approval.
type PendingApproval struct {
	TicketID    string          `json:"ticket_id"`
	Ticket      domain.Ticket   `json:"ticket"`
	Analysis    domain.Analysis `json:"analysis"`
	Decision    domain.Decision `json:"decision"`
	Reasons     []string        `json:"reasons"`
	RequestedAt time.Time       `json:"requested_at"`
}

// Store persists suspended pipeline instances keyed by ticket id.
type Store interface {
	Put(ctx context.Context, pending PendingApproval) error
	Take(ctx context.Context, ticketID string) (*PendingApproval, error)
	List(ctx context.Context) ([]PendingApproval, error)
}

// Gate suspends decisions that require human sign-off and correlates the
// later approve/reject signal back to the suspended instance. There is no
// timeout: a suspended ticket stays parked until a human resolves it.
type Gate struct {
	store Store
}

// NewGate constructs the gate over the given pending store.
func NewGate(store Store) *Gate {
	return &Gate{store: store}
}

// Suspend parks a ticket awaiting human approval.
func (g *Gate) Suspend(ctx context.Context, pending PendingApproval) error {
	if pending.RequestedAt.IsZero() {
		pending.RequestedAt = time.Now().UTC()
	}
	return g.store.Put(ctx, pending)
}

// Resolve removes and returns the suspended instance for the ticket. Each
// suspension resolves exactly once; a second call reports ErrNotPending.
func (g *Gate) Resolve(ctx context.Context, ticketID string) (*PendingApproval, error) {
	return g.store.Take(ctx, ticketID)
}

// Pending lists suspended instances in suspension order.
func (g *Gate) Pending(ctx context.Context) ([]PendingApproval, error) {
	return g.store.List(ctx)
}
