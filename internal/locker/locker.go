package locker

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const reserveTTL = 10 * time.Second

// Locker is a short-TTL redis guard taken around a slot reservation. It
// fails duplicate submits fast, before they queue up on the database row
// lock; the reserve transaction itself stays the source of truth for
// correctness. The client is injected so tests can run against miniredis
// and services can share one connection pool.
type Locker struct {
	client *redis.Client
}

func New(client *redis.Client) *Locker {
	return &Locker{client: client}
}

func reserveKey(slotID uuid.UUID) string {
	return "reserve:slot:" + slotID.String()
}

// Acquire claims the slot for the duration of the booking attempt. Returns
// false when another attempt currently holds it.
func (l *Locker) Acquire(ctx context.Context, slotID uuid.UUID) (bool, error) {
	return l.client.SetNX(ctx, reserveKey(slotID), "1", reserveTTL).Result()
}

// Release frees the slot guard. Safe to call after the lock expired.
func (l *Locker) Release(ctx context.Context, slotID uuid.UUID) error {
	return l.client.Del(ctx, reserveKey(slotID)).Err()
}
