// Package auth registers and authenticates tracker users and issues the
// signed session tokens that gate write routes.
package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/utakatalp/nba-tracker/internal/league"
)

// Users is the user-record store the service needs.
type Users interface {
	UserByUsername(ctx context.Context, username string) (league.User, bool, error)
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)
}

// Service registers and authenticates users against a Users store.
type Service struct {
	users Users
	cost  int
}

// NewService returns a Service hashing passwords with bcrypt's default cost.
func NewService(users Users) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost}
}

// Register creates a user. It returns false without writing when the
// username is already taken.
func (s *Service) Register(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	_, found, err := s.users.UserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if found {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return false, fmt.Errorf("hashing password: %w", err)
	}
	if _, err := s.users.CreateUser(ctx, username, string(hash)); err != nil {
		return false, err
	}
	return true, nil
}

// Authenticate returns the user whose password matches. The bool is false
// for an unknown username or a wrong password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (league.User, bool, error) {
	user, found, err := s.users.UserByUsername(ctx, strings.TrimSpace(username))
	if err != nil || !found {
		return league.User{}, false, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return league.User{}, false, nil
	}
	return user, true, nil
}
