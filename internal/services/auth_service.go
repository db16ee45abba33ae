package services

import (
	"context"
	"errors"

	"github.com/bariskara/product-api/internal/auth"
	"github.com/bariskara/product-api/internal/models"
	repo "github.com/bariskara/product-api/internal/repository"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so callers cannot enumerate registered usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
)

type AuthResult struct {
	User  models.SanitizedUser
	Token string
}

type AuthService struct {
	users repo.Users
	tm    *auth.TokenManager
}

func NewAuthService(users repo.Users, tm *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tm: tm}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (AuthResult, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, err
	}

	if auth.ComparePassword(password, u.PasswordHash) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.tm.Sign(u.ID, u.Username)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u.Sanitize(), Token: token}, nil
}

// Register checks for an existing username by lookup before creating the
// user; two concurrent registrations can still race past the check.
func (s *AuthService) Register(ctx context.Context, username, password string) (AuthResult, error) {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return AuthResult{}, ErrUsernameTaken
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return AuthResult{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return AuthResult{}, err
	}
	u, err := s.users.Create(ctx, username, hash)
	if err != nil {
		return AuthResult{}, err
	}

	// registration tokens carry only the username, no user id
	token, err := s.tm.Sign("", username)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u.Sanitize(), Token: token}, nil
}
