package approval

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	pendingKeyPrefix = "approval:pending:"
	pendingIndexKey  = "approval:pending_index"
)

// redisStore keeps pending approvals in Redis so suspended tickets survive a
// process restart. Entries carry no TTL: the only way out of the pending set
// is an explicit approve or reject.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed pending store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Put(ctx context.Context, pending PendingApproval) error {
	payload, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("marshal pending approval: %w", err)
	}
	ok, err := s.client.SetNX(ctx, pendingKeyPrefix+pending.TicketID, payload, 0).Result()
	if err != nil {
		return fmt.Errorf("store pending approval: %w", err)
	}
	if !ok {
		return ErrAlreadyPending
	}
	return s.client.ZAdd(ctx, pendingIndexKey, redis.Z{
		Score:  float64(pending.RequestedAt.UnixNano()),
		Member: pending.TicketID,
	}).Err()
}

func (s *redisStore) Take(ctx context.Context, ticketID string) (*PendingApproval, error) {
	payload, err := s.client.GetDel(ctx, pendingKeyPrefix+ticketID).Bytes()
	if err == redis.Nil {
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("take pending approval: %w", err)
	}
	if err := s.client.ZRem(ctx, pendingIndexKey, ticketID).Err(); err != nil {
		return nil, fmt.Errorf("drop pending index entry: %w", err)
	}
	var pending PendingApproval
	if err := json.Unmarshal(payload, &pending); err != nil {
		return nil, fmt.Errorf("unmarshal pending approval: %w", err)
	}
	return &pending, nil
}

func (s *redisStore) List(ctx context.Context) ([]PendingApproval, error) {
	ids, err := s.client.ZRange(ctx, pendingIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list pending approvals: %w", err)
	}
	out := make([]PendingApproval, 0, len(ids))
	for _, id := range ids {
		payload, err := s.client.Get(ctx, pendingKeyPrefix+id).Bytes()
		if err == redis.Nil {
			// Resolved between ZRange and Get; skip.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load pending approval %s: %w", id, err)
		}
		var pending PendingApproval
		if err := json.Unmarshal(payload, &pending); err != nil {
			return nil, fmt.Errorf("unmarshal pending approval %s: %w", id, err)
		}
		out = append(out, pending)
	}
	return out, nil
}
