package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"deposito626-api/internal/cache"
	"deposito626-api/internal/model"
)

const (
	// SessionTokenPrefix is the prefix for all admin session tokens.
	SessionTokenPrefix = "dp_"

	// SessionTTL is the admin session lifetime.
	SessionTTL = 1 * time.Hour

	// sessionKeyPrefix namespaces session entries in the cache.
	sessionKeyPrefix = "session:"
)

// SessionService handles admin login and session token validation.
// Sessions live in the cache (Redis in production, memory otherwise).
type SessionService struct {
	cache    cache.Cache
	loginKey string
}

// NewSessionService creates a session service. Returns nil when no login
// key is configured, which disables the whole admin surface.
func NewSessionService(c cache.Cache, loginKey string) *SessionService {
	if loginKey == "" {
		return nil
	}
	return &SessionService{cache: c, loginKey: loginKey}
}

// Login checks the password against the configured login key and mints
// a session token on success.
func (s *SessionService) Login(ctx context.Context, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.loginKey)) != 1 {
		return "", fmt.Errorf("invalid credentials")
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := SessionTokenPrefix + hex.EncodeToString(tokenBytes)

	session := model.AdminSession{
		Subject:   "admin",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := s.cache.Set(ctx, sessionKeyPrefix+token, data, SessionTTL); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	log.Printf("[SessionService] Admin session created, expires=%v", session.ExpiresAt)
	return token, nil
}

// Validate checks a session token and returns its payload.
func (s *SessionService) Validate(ctx context.Context, token string) (*model.AdminSession, error) {
	if len(token) < len(SessionTokenPrefix) || token[:len(SessionTokenPrefix)] != SessionTokenPrefix {
		return nil, fmt.Errorf("invalid token format")
	}

	data, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err == cache.ErrCacheMiss {
		return nil, fmt.Errorf("session not found or expired")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session model.AdminSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.cache.Delete(ctx, sessionKeyPrefix+token)
		return nil, fmt.Errorf("session expired")
	}

	return &session, nil
}

// Logout revokes a session token.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+token)
}

// RevokeAll revokes every active session, forcing all admin devices to
// log in again. Used after rotating the login key or on suspected
// token exposure.
func (s *SessionService) RevokeAll(ctx context.Context) error {
	if err := s.cache.DeletePrefix(ctx, sessionKeyPrefix); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	log.Println("[SessionService] All admin sessions revoked")
	return nil
}

// Refresh extends an existing session's TTL.
func (s *SessionService) Refresh(ctx context.Context, token string) error {
	session, err := s.Validate(ctx, token)
	if err != nil {
		return err
	}

	session.ExpiresAt = time.Now().Add(SessionTTL)
	data, _ := json.Marshal(session)
	return s.cache.Set(ctx, sessionKeyPrefix+token, data, SessionTTL)
}
