package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// Session table keys.
const (
	sessionKeyToken  = "token"
	sessionKeyUserID = "user_id"
	sessionKeyEmail  = "email"
)

// SessionRepository persists the login session as key/value rows.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) get(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM session WHERE key = ?", key).Scan(&value)
	ok, err := rowExists(err)
	if err != nil {
		return "", fmt.Errorf("failed to query session: %w", err)
	}
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (r *SessionRepository) put(key, value string) error {
	query := `
		INSERT INTO session (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to store session value: %w", err)
	}
	return nil
}

// Token returns the stored backend JWT, or [ErrNotFound] when logged out.
func (r *SessionRepository) Token() (string, error) {
	return r.get(sessionKeyToken)
}

// UserID returns the user id extracted from the token at login time.
func (r *SessionRepository) UserID() (string, error) {
	return r.get(sessionKeyUserID)
}

// Email returns the email the session was established with.
func (r *SessionRepository) Email() (string, error) {
	return r.get(sessionKeyEmail)
}

// Save stores a complete session, replacing any previous one.
func (r *SessionRepository) Save(token, userID, email string) error {
	if err := r.put(sessionKeyToken, token); err != nil {
		return err
	}
	if err := r.put(sessionKeyUserID, userID); err != nil {
		return err
	}
	return r.put(sessionKeyEmail, email)
}

// Clear removes all session rows.
func (r *SessionRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM session"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
