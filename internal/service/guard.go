package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/smart-kitchen/backend/internal/logger"
)

// Guard is a cross-process lock that keeps one generation in flight per
// session when several replicas share sessions.
// Acquire and Release take an owner token so a holder can only release its own lock.
type Guard interface {
	Acquire(ctx context.Context, sessionID, owner string) (bool, error)
	Release(ctx context.Context, sessionID, owner string) error
}

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard implements Guard with SET NX and a TTL, so a crashed replica
// cannot hold a session forever.
type RedisGuard struct {
	redis     *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// NewRedisGuard creates a guard on the given client.
func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisGuard{
		redis:     client,
		ttl:       ttl,
		keyPrefix: "generation:inflight",
	}
}

func (g *RedisGuard) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", g.keyPrefix, sessionID)
}

// Acquire implements Guard.
func (g *RedisGuard) Acquire(ctx context.Context, sessionID, owner string) (bool, error) {
	ok, err := g.redis.SetNX(ctx, g.key(sessionID), owner, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire generation guard: %w", err)
	}
	return ok, nil
}

// Release implements Guard. A lock that expired and was taken by another
// owner is left alone.
func (g *RedisGuard) Release(ctx context.Context, sessionID, owner string) error {
	if err := releaseScript.Run(ctx, g.redis, []string{g.key(sessionID)}, owner).Err(); err != nil {
		return fmt.Errorf("failed to release generation guard: %w", err)
	}
	return nil
}

// SessionGenerator runs generations for sessions, one at a time per session.
type SessionGenerator struct {
	generator Generator
	guard     Guard
}

// NewSessionGenerator creates a SessionGenerator. guard may be nil, in which
// case only the in-process session state prevents overlap.
func NewSessionGenerator(generator Generator, guard Guard) *SessionGenerator {
	return &SessionGenerator{generator: generator, guard: guard}
}

// Submit snapshots the session stock and runs the pipeline. A second submit
// while one is pending gets a generation_in_progress result and leaves the
// session untouched. The provider call is not cancelled if ctx is.
func (g *SessionGenerator) Submit(ctx context.Context, sess *Session) GenerationResult {
	req, err := sess.Begin()
	if err != nil {
		return failed(newGenerationError(KindInProgress, ""))
	}

	ctx = context.WithoutCancel(ctx)

	if g.guard != nil {
		owner := req.ID.String()
		acquired, err := g.guard.Acquire(ctx, sess.ID, owner)
		if err != nil {
			// Fall back to the in-process state rather than refusing the request.
			logger.L().Warn("generation guard unavailable", zap.String("session_id", sess.ID), zap.Error(err))
		} else if !acquired {
			busy := failed(newGenerationError(KindInProgress, ""))
			sess.abandon(req)
			return busy
		} else {
			defer func() {
				if err := g.guard.Release(ctx, sess.ID, owner); err != nil {
					logger.L().Warn("failed to release generation guard", zap.String("session_id", sess.ID), zap.Error(err))
				}
			}()
		}
	}

	result := g.generator.Generate(ctx, req)
	sess.Complete(req, result)
	return result
}
