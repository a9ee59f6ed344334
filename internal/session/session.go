// Package session manages the client's login session.
//
// The backend issues a JWT on login. The client never verifies the
// signature, it only decodes the claims to learn the user id, so token
// parsing here is deliberately unverified.
package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/poojitha20043/postx/internal/repositories"
	"github.com/poojitha20043/postx/internal/shared"
)

// Manager reads and writes the persisted login session.
type Manager struct {
	repo *repositories.SessionRepository
}

// NewManager creates a [Manager] backed by the given repository.
func NewManager(repo *repositories.SessionRepository) *Manager {
	return &Manager{repo: repo}
}

// claimKeys are tried in order when extracting the user id from a token.
var claimKeys = []string{"id", "userId", "sub", "user_id", "_id"}

// ExtractUserID decodes a JWT without verifying its signature and returns
// the first user-id claim present.
func ExtractUserID(token string) (string, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("failed to decode token (%v): %w", err, shared.ErrNotAuthenticated)
	}

	for _, key := range claimKeys {
		if v, ok := claims[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, nil
			}
		}
	}

	return "", fmt.Errorf("token carries no user id claim: %w", shared.ErrNotAuthenticated)
}

// Establish decodes the token, then persists the session.
func (m *Manager) Establish(token, email string) (string, error) {
	userID, err := ExtractUserID(token)
	if err != nil {
		return "", err
	}

	if err := m.repo.Save(token, userID, email); err != nil {
		return "", err
	}
	return userID, nil
}

// Token returns the stored JWT, or [shared.ErrNotAuthenticated] when logged out.
func (m *Manager) Token() (string, error) {
	token, err := m.repo.Token()
	if err != nil {
		return "", shared.ErrNotAuthenticated
	}
	return token, nil
}

// UserID returns the user id captured at login.
func (m *Manager) UserID() (string, error) {
	userID, err := m.repo.UserID()
	if err != nil {
		return "", shared.ErrNotAuthenticated
	}
	return userID, nil
}

// Email returns the email the session was established with.
func (m *Manager) Email() (string, error) {
	email, err := m.repo.Email()
	if err != nil {
		return "", shared.ErrNotAuthenticated
	}
	return email, nil
}

// Clear removes the persisted session.
func (m *Manager) Clear() error {
	return m.repo.Clear()
}

// LoggedIn reports whether a session is present.
func (m *Manager) LoggedIn() bool {
	_, err := m.repo.Token()
	return err == nil
}
