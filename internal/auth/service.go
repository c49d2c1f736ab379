package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"comissoes/internal/core"
)

// UserStore is the persistence surface the auth flows need.
type UserStore interface {
	CreateUser(ctx context.Context, u *core.User) error
	GetUserByName(ctx context.Context, name string) (*core.User, error)
	GetUserByID(ctx context.Context, id int64) (*core.User, error)
	UpdatePasswordHash(ctx context.Context, userID int64, hash string) error
}

// Service implements registration, login and password recovery over a
// user store.
type Service struct {
	users UserStore
}

func NewService(users UserStore) *Service {
	return &Service{users: users}
}

// Register creates a new account. Name collisions are checked
// case-insensitively; the storage unique constraint backs this up.
func (s *Service) Register(ctx context.Context, fullName, password string) (*core.User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, core.ErrEmptyName
	}
	if password == "" {
		return nil, core.ErrEmptyPassword
	}

	existing, err := s.users.GetUserByName(ctx, fullName)
	if err != nil && !errors.Is(err, core.ErrUserNotFound) {
		return nil, fmt.Errorf("check existing name: %w", err)
	}
	if existing != nil {
		return nil, ErrNameTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &core.User{Name: fullName, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies name and password. The name lookup is
// case-insensitive; the failure reason is never disclosed.
func (s *Service) Login(ctx context.Context, fullName, password string) (*core.User, error) {
	user, err := s.users.GetUserByName(ctx, strings.TrimSpace(fullName))
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if !VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// RecoverPassword resets the credential after the name/email heuristic
// matches. Unknown names and mismatches return the same error so the
// form cannot be used to probe for accounts.
func (s *Service) RecoverPassword(ctx context.Context, fullName, email, newPassword string) error {
	if newPassword == "" {
		return core.ErrEmptyPassword
	}

	user, err := s.users.GetUserByName(ctx, strings.TrimSpace(fullName))
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return ErrRecoveryMismatch
		}
		return fmt.Errorf("look up user: %w", err)
	}

	if !core.EmailMatchesName(user.Name, email) {
		return ErrRecoveryMismatch
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("store new password: %w", err)
	}
	return nil
}
