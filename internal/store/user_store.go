package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kidandcat/taskboard/internal/model"
)

const userColumns = "id, name, email, role, email_verified_at, created_at, updated_at"

// CreateUser inserts a user. Email is normalized to lowercase.
func (s *Store) CreateUser(name, email string, role model.UserRole) (*model.User, error) {
	now := s.now()
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := s.db.Exec(
		"INSERT INTO users (name, email, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		name, email, role, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetUser(id)
}

func (s *Store) GetUser(id int64) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, "SELECT "+userColumns+" FROM users WHERE email = ?",
		strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (s *Store) ListUsers() ([]model.User, error) {
	var users []model.User
	if err := s.db.Select(&users, "SELECT "+userColumns+" FROM users ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user. Their projects cascade away; tasks
// assigned to them elsewhere become unassigned via ON DELETE SET NULL.
func (s *Store) DeleteUser(id int64) error {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureAdmin creates the user as an admin, or promotes an existing
// account. Used to sync configured admin emails at startup.
func (s *Store) EnsureAdmin(email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.GetUserByEmail(email)
	if errors.Is(err, ErrNotFound) {
		name := strings.Split(email, "@")[0]
		return s.CreateUser(name, email, model.RoleAdmin)
	}
	if err != nil {
		return nil, err
	}
	if u.Role != model.RoleAdmin {
		if _, err := s.db.Exec("UPDATE users SET role = ?, updated_at = ? WHERE id = ?",
			model.RoleAdmin, s.now(), u.ID); err != nil {
			return nil, fmt.Errorf("promote admin %s: %w", email, err)
		}
		return s.GetUser(u.ID)
	}
	return u, nil
}
