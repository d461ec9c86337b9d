// Package session implements the server-side session state backing the
// cookie-based login. A session is an opaque token mapped to the
// authenticated identity in Redis; the client only ever holds the token.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ashleendsilva/food-rescue/internal/domain/user"
)

// Identity is the authenticated identity a session holds.
type Identity struct {
	UserID int64     `json:"user_id"`
	Role   user.Role `json:"user_role"`
}

// Store defines the interface for session persistence. Get returns
// (nil, nil) for an unknown or expired token.
type Store interface {
	Create(ctx context.Context, ident Identity) (string, error)
	Get(ctx context.Context, token string) (*Identity, error)
	Delete(ctx context.Context, token string) error
}

// RedisStore implements Store using Redis as the backing store.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisStore creates a new Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, log: log}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Create stores a new session and returns its opaque token.
func (s *RedisStore) Create(ctx context.Context, ident Identity) (string, error) {
	token := uuid.New().String()

	data, err := json.Marshal(ident)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(token), data, s.ttl).Err(); err != nil {
		s.log.Error("failed to store session", zap.Int64("user_id", ident.UserID), zap.Error(err))
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	s.log.Debug("session created", zap.Int64("user_id", ident.UserID))
	return token, nil
}

// Get retrieves the identity for a token.
func (s *RedisStore) Get(ctx context.Context, token string) (*Identity, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		s.log.Error("failed to load session", zap.Error(err))
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var ident Identity
	if err := json.Unmarshal(data, &ident); err != nil {
		s.log.Error("failed to unmarshal session", zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &ident, nil
}

// Delete removes a session. Deleting an unknown token is not an error.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		s.log.Error("failed to delete session", zap.Error(err))
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.log.Debug("session deleted")
	return nil
}
