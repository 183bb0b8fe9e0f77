package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore maps a patient's Idempotency-Key to the appointment it
// produced, so a retried booking request replays instead of failing.
type IdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewIdempotencyStore(client redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the appointment id stored for the key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, patientID int64, key string) (int64, bool, error) {
	raw, err := s.client.Get(ctx, idempotencyKey(patientID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("idempotency lookup: %w", err)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency lookup: corrupt value %q: %w", raw, err)
	}
	return id, true, nil
}

// Remember stores the key only if it is not already present, so the first
// booking for a key wins.
func (s *IdempotencyStore) Remember(ctx context.Context, patientID int64, key string, appointmentID int64) error {
	err := s.client.SetNX(ctx, idempotencyKey(patientID, key), appointmentID, s.ttl).Err()
	if err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func idempotencyKey(patientID int64, key string) string {
	return "idem:book:" + strconv.FormatInt(patientID, 10) + ":" + key
}
