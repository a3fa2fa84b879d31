package approval

import (
	"context"
	"sync"
)

// memoryStore keeps pending approvals in process memory. Suitable for tests
// and for running without Redis; suspensions do not survive a restart.
type memoryStore struct {
	mu      sync.Mutex
	pending map[string]PendingApproval
	order   []string
}

// NewMemoryStore creates an in-process pending store.
func NewMemoryStore() Store {
	return &memoryStore{pending: make(map[string]PendingApproval)}
}

func (s *memoryStore) Put(ctx context.Context, pending PendingApproval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[pending.TicketID]; ok {
		return ErrAlreadyPending
	}
	s.pending[pending.TicketID] = pending
	s.order = append(s.order, pending.TicketID)
	return nil
}

func (s *memoryStore) Take(ctx context.Context, ticketID string) (*PendingApproval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, ok := s.pending[ticketID]
	if !ok {
		return nil, ErrNotPending
	}
	delete(s.pending, ticketID)
	for i, id := range s.order {
		if id == ticketID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return &pending, nil
}

func (s *memoryStore) List(ctx context.Context) ([]PendingApproval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PendingApproval, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.pending[id])
	}
	return out, nil
}
