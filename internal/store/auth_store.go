package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// MagicToken is a one-shot login token emailed to a user.
type MagicToken struct {
	ID         int64      `db:"id"`
	Email      string     `db:"email"`
	Token      string     `db:"token"`
	CreatedAt  time.Time  `db:"created_at"`
	ApprovedAt *time.Time `db:"approved_at"`
}

// Session is an authenticated browser session.
type Session struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Token     string    `db:"token"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (s *Store) CreateMagicToken(email, token string) error {
	_, err := s.db.Exec(
		"INSERT INTO magic_tokens (email, token, created_at) VALUES (?, ?, ?)",
		strings.ToLower(strings.TrimSpace(email)), token, s.now(),
	)
	if err != nil {
		return fmt.Errorf("create magic token: %w", err)
	}
	return nil
}

func (s *Store) GetMagicToken(token string) (*MagicToken, error) {
	var mt MagicToken
	err := s.db.Get(&mt,
		"SELECT id, email, token, created_at, approved_at FROM magic_tokens WHERE token = ?", token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get magic token: %w", err)
	}
	return &mt, nil
}

func (s *Store) ApproveMagicToken(id int64) error {
	_, err := s.db.Exec("UPDATE magic_tokens SET approved_at = ? WHERE id = ?", s.now(), id)
	if err != nil {
		return fmt.Errorf("approve magic token %d: %w", id, err)
	}
	return nil
}

func (s *Store) CreateSession(userID int64, token string, expiresAt time.Time) error {
	_, err := s.db.Exec(
		"INSERT INTO sessions (user_id, token, created_at, expires_at) VALUES (?, ?, ?, ?)",
		userID, token, s.now(), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *Store) GetSession(token string) (*Session, error) {
	var sess Session
	err := s.db.Get(&sess,
		"SELECT id, user_id, token, created_at, expires_at FROM sessions WHERE token = ?", token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}

func (s *Store) DeleteSession(token string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE token = ?", token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Store) DeleteExpiredSessions() error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE expires_at < ?", s.now()); err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	return nil
}
