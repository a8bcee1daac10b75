package redis

import (
	// Go Internal Packages
	"context"
	"time"

	// External Packages
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only while it still carries the caller's token,
// so a holder whose key expired cannot free a lock someone else took since.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// LockClient is the part of the redis client the Locker needs.
type LockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	redis.Scripter
}

// Locker holds one short-lived key per operation id while a review request for
// it is in flight. The TTL frees ids held by a crashed process.
type Locker struct {
	client LockClient
	ttl    time.Duration
}

func NewLocker(client LockClient, ttl time.Duration) *Locker {
	return &Locker{client: client, ttl: ttl}
}

func lockKey(id string) string { return "op-lock:" + id }

func (l *Locker) Acquire(ctx context.Context, id string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, lockKey(id), token, l.ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

func (l *Locker) Release(ctx context.Context, id, token string) error {
	return releaseScript.Run(ctx, l.client, []string{lockKey(id)}, token).Err()
}
