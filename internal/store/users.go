package store

import (
	"context"
	"fmt"

	"github.com/utakatalp/nba-tracker/internal/league"
)

const userSelect = `SELECT id, username, password FROM users`

func scanUser(row scanner) (league.User, error) {
	var u league.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash)
	return u, err
}

// UserByUsername loads a user. The bool is false when no such user exists.
func (s *Store) UserByUsername(ctx context.Context, username string) (league.User, bool, error) {
	u, found, err := get(ctx, s, "UserByUsername", userSelect+` WHERE username = ?`, []any{username}, scanUser)
	if err != nil {
		return league.User{}, false, fmt.Errorf("getting user %s: %w", username, err)
	}
	return u, found, nil
}

// UserByID loads a user. The bool is false when no such user exists.
func (s *Store) UserByID(ctx context.Context, id int64) (league.User, bool, error) {
	u, found, err := get(ctx, s, "UserByID", userSelect+` WHERE id = ?`, []any{id}, scanUser)
	if err != nil {
		return league.User{}, false, fmt.Errorf("getting user %d: %w", id, err)
	}
	return u, found, nil
}

// CreateUser inserts a user with an already hashed password. A taken
// username fails with the engine's uniqueness error.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	id, err := s.Insert(ctx, `INSERT INTO users (username, password) VALUES (?, ?)`, username, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("inserting user %s: %w", username, err)
	}
	return id, nil
}
