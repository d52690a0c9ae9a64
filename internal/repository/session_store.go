package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yourorg/hoteldesk/internal/infrastructure/redis"
	"github.com/yourorg/hoteldesk/internal/reliability/circuitbreaker"
)

// RedisSessionStore implements domain.SessionStore on Redis. Revoked token
// IDs are stored with a TTL matching the token's remaining lifetime, so the
// denylist cleans itself up.
//
// Lookups go through a circuit breaker: when Redis keeps failing, revocation
// checks fail open rather than blocking every authenticated request on a
// dead dependency.
type RedisSessionStore struct {
	redis   *redis.Client
	breaker *circuitbreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewRedisSessionStore creates a new session store
func NewRedisSessionStore(redisClient *redis.Client, logger *slog.Logger) *RedisSessionStore {
	if logger == nil {
		logger = slog.Default()
	}

	breaker := circuitbreaker.New(5, 2, 30*time.Second)
	breaker.OnStateChange(func(from, to circuitbreaker.State) {
		logger.Warn("session store circuit state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	return &RedisSessionStore{
		redis:   redisClient,
		breaker: breaker,
		logger:  logger,
	}
}

// Revoke marks a token ID as revoked until its natural expiry
func (s *RedisSessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired, nothing to deny.
		return nil
	}

	if err := s.redis.Set(ctx, revocationKey(tokenID), "revoked", ttl); err != nil {
		s.breaker.RecordFailure()
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	s.breaker.RecordSuccess()
	return nil
}

// IsRevoked reports whether a token ID has been revoked. With the circuit
// open the check is skipped and the session is treated as live.
func (s *RedisSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if !s.breaker.AllowRequest() {
		s.logger.Debug("session revocation check skipped, circuit open",
			slog.String("token_id", tokenID))
		return false, nil
	}

	revoked, err := s.redis.Exists(ctx, revocationKey(tokenID))
	if err != nil {
		s.breaker.RecordFailure()
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}

	s.breaker.RecordSuccess()
	return revoked, nil
}

func revocationKey(tokenID string) string {
	return "session:revoked:" + tokenID
}
