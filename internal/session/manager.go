// Package session keeps the locally cached proof of authentication: an
// opaque bearer token plus the role and email it was issued for. All three
// travel as one atomic unit.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/milsabores/storefront/internal/redisx"
)

var ErrNoSession = errors.New("session: not found")

type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

type Manager struct {
	Redis  *redis.Client
	Secret []byte
	TTL    time.Duration
}

// Issue mints a session token for the confirmed identity and writes the
// token/role/email record in a single MULTI/EXEC pipeline.
func (m *Manager) Issue(ctx context.Context, email, role string) (string, error) {
	token, jti, err := mintToken(m.Secret, email, role, m.TTL)
	if err != nil {
		return "", fmt.Errorf("session: sign: %w", err)
	}
	key := fmt.Sprintf(redisx.KeySession, jti)
	pipe := m.Redis.TxPipeline()
	pipe.HSet(ctx, key, "token", token, "role", role, "email", email)
	pipe.Expire(ctx, key, m.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("session: store: %w", err)
	}
	return token, nil
}

// Lookup resolves a bearer token to its session. A cleared session fails the
// lookup even while the token itself is still unexpired.
func (m *Manager) Lookup(ctx context.Context, token string) (Session, error) {
	c, err := parseToken(m.Secret, token, true)
	if err != nil {
		return Session{}, ErrNoSession
	}
	vals, err := m.Redis.HGetAll(ctx, fmt.Sprintf(redisx.KeySession, c.ID)).Result()
	if err != nil {
		return Session{}, fmt.Errorf("session: read: %w", err)
	}
	if len(vals) == 0 {
		return Session{}, ErrNoSession
	}
	return Session{Token: vals["token"], Role: vals["role"], Email: vals["email"]}, nil
}

// Clear revokes the session. Unknown or expired tokens clear to nothing;
// Clear never fails for them.
func (m *Manager) Clear(ctx context.Context, token string) error {
	c, err := parseToken(m.Secret, token, false)
	if err != nil {
		return nil
	}
	return m.Redis.Del(ctx, fmt.Sprintf(redisx.KeySession, c.ID)).Err()
}
