// Package auth gates the admin surface: a single configured admin account,
// bcrypt password check, opaque session tokens held in Redis.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type SessionStore interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

type Manager struct {
	store        SessionStore
	email        string
	passwordHash []byte
	sessionTTL   time.Duration
}

func NewManager(store SessionStore, email, passwordHash string, sessionTTL time.Duration) *Manager {
	return &Manager{
		store:        store,
		email:        email,
		passwordHash: []byte(passwordHash),
		sessionTTL:   sessionTTL,
	}
}

// SignIn verifies the credentials and issues a session token.
func (m *Manager) SignIn(ctx context.Context, email, password string) (string, error) {
	emailMatch := subtle.ConstantTimeCompare([]byte(email), []byte(m.email)) == 1
	err := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password))
	if !emailMatch || err != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := m.store.Save(ctx, token, m.sessionTTL); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return token, nil
}

// SignOut deletes the session. Unknown tokens are not an error.
func (m *Manager) SignOut(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}

// Validate reports whether the token belongs to a live session.
func (m *Manager) Validate(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return m.store.Exists(ctx, token)
}
