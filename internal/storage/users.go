package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// User is a climber profile.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Premium   bool      `json:"premium"`
	CreatedAt time.Time `json:"createdAt"`
}

// EnsureUser creates the user if it does not exist yet and returns it.
// An existing user keeps its name unless it was empty.
func (s *Store) EnsureUser(ctx context.Context, id, name string) (User, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name
		 WHERE users.name = '' AND excluded.name != ''`,
		id, name,
	)
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot ensure user: %w", err)
	}
	return s.Profile(ctx, id)
}

// Profile returns the user with the given id, or ErrNotFound.
func (s *Store) Profile(ctx context.Context, id string) (User, error) {
	var u User
	var createdAt any
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, premium, created_at FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Name, &u.Premium, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot query user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return u, nil
}

// SetPremium sets the premium flag, creating the user when needed.
func (s *Store) SetPremium(ctx context.Context, id string, premium bool) (User, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, premium) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET premium = excluded.premium`,
		id, premium,
	)
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot set premium: %w", err)
	}
	return s.Profile(ctx, id)
}
