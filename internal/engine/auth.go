// internal/engine/auth.go
package engine

import (
	"fmt"
	"strings"

	"github.com/bigbrain-live/bigbrain/internal/auth"
	"github.com/bigbrain-live/bigbrain/internal/models"
)

// Register creates a new admin account, marks its session active, and
// returns a signed token.
func (e *Engine) Register(email, password, name string) (string, error) {
	var token string
	err := e.store.WithUserLock(func() error {
		if email == "" {
			return NewInputError("email must be supplied")
		}
		if _, ok := e.store.Admins[email]; ok {
			return NewInputError("email address already registered")
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		e.store.Admins[email] = &models.Admin{
			Name:          name,
			PasswordHash:  hash,
			SessionActive: true,
		}

		token, err = auth.CreateJWT(email)
		return err
	})
	return token, err
}

// Login verifies credentials, marks the admin session active, and returns
// a signed token. Unknown emails and wrong passwords fail identically.
func (e *Engine) Login(email, password string) (string, error) {
	var token string
	err := e.store.WithUserLock(func() error {
		admin, ok := e.store.Admins[email]
		if !ok {
			return NewInputError("invalid username or password")
		}
		match, err := auth.VerifyPassword(password, admin.PasswordHash)
		if err != nil || !match {
			return NewInputError("invalid username or password")
		}

		admin.SessionActive = true
		token, err = auth.CreateJWT(email)
		return err
	})
	return token, err
}

// Logout marks the admin session inactive. Issued tokens are not revoked;
// SessionActive only records login state.
func (e *Engine) Logout(email string) error {
	return e.store.WithUserLock(func() error {
		admin, ok := e.store.Admins[email]
		if !ok {
			return NewAccessError("invalid token")
		}
		admin.SessionActive = false
		return nil
	})
}

// AuthEmail resolves the admin email from a bearer Authorization header.
// Any verification failure, including a token for an admin the store no
// longer knows, is an access error.
func (e *Engine) AuthEmail(authorization string) (string, error) {
	token := strings.TrimPrefix(authorization, "Bearer ")
	email, err := auth.AuthenticateJWT(token)
	if err != nil {
		return "", NewAccessError("invalid token")
	}

	err = e.store.WithUserLock(func() error {
		if _, ok := e.store.Admins[email]; !ok {
			return NewAccessError("invalid token")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return email, nil
}
