package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
)

// unlockScript releases a lock only when the caller still owns it.
var unlockScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

// LockManager hands out best-effort distributed locks.  A lock that expires
// before release is silently lost; callers must size the TTL to cover the
// critical section.
type LockManager struct {
	client *Client
	logger logging.Logger
}

// NewLockManager constructs a LockManager on top of the client.
func NewLockManager(client *Client, log logging.Logger) *LockManager {
	return &LockManager{client: client, logger: log}
}

// TryAcquire attempts a non-blocking lock acquisition.  On success it returns
// a release function and acquired=true; when another holder owns the lock it
// returns acquired=false with no error.
func (m *LockManager) TryAcquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	token := uuid.NewString()

	ok, err := m.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeCacheError, "failed to acquire lock")
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		res, err := unlockScript.Run(ctx, m.client.Underlying(), []string{m.client.fullKey(key)}, token).Result()
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeCacheError, "failed to release lock")
		}
		if n, _ := res.(int64); n == 0 {
			m.logger.Warn("Lock expired before release", logging.String("key", key))
		}
		return nil
	}
	return release, true, nil
}

//Personal.AI order the ending
