package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vkuzmenko/techstore-backend/pkg/redis"
)

// SessionStore binds anonymous cart tokens to cart ids in Redis. Tokens are
// opaque client-held strings; the binding expires after the configured TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore builds a session store over the shared Redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// CartID resolves the cart bound to the token. The second return is false
// when no binding exists.
func (s *SessionStore) CartID(ctx context.Context, token string) (uuid.UUID, bool, error) {
	value, err := s.client.Get(ctx, s.client.CartSessionKey(token))
	if redis.IsNil(err) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("load cart session: %w", err)
	}
	cartID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("parse cart session value: %w", err)
	}
	return cartID, true, nil
}

// Bind stores the token to cart binding and starts its TTL.
func (s *SessionStore) Bind(ctx context.Context, token string, cartID uuid.UUID) error {
	if err := s.client.Set(ctx, s.client.CartSessionKey(token), cartID.String(), s.ttl); err != nil {
		return fmt.Errorf("bind cart session: %w", err)
	}
	return nil
}

// Touch renews the binding's TTL on cart activity.
func (s *SessionStore) Touch(ctx context.Context, token string) error {
	if err := s.client.Expire(ctx, s.client.CartSessionKey(token), s.ttl); err != nil {
		return fmt.Errorf("touch cart session: %w", err)
	}
	return nil
}

// Drop removes the binding, typically after checkout consumes the cart.
func (s *SessionStore) Drop(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.client.CartSessionKey(token)); err != nil {
		return fmt.Errorf("drop cart session: %w", err)
	}
	return nil
}
