package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// DedupChecker remembers which appointment events the audit log already holds.
// Key format: audit:dedup:<event_id>
type DedupChecker struct {
	client redis.Cmdable
}

func NewDedupChecker(client redis.Cmdable) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether the event has already been recorded.
func (d *DedupChecker) IsDuplicate(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKey(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the event as processed; the key expires after dedupTTL.
func (d *DedupChecker) Mark(ctx context.Context, eventID string) error {
	return d.client.Set(ctx, dedupKey(eventID), "1", dedupTTL).Err()
}

func dedupKey(eventID string) string {
	return "audit:dedup:" + eventID
}
