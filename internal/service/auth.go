// Package service contains application services for authentication and tasks.
package service

import (
	"context"
	"errors"

	pkgcrypto "github.com/avasilenko/smart-todo/internal/crypto"
	"github.com/avasilenko/smart-todo/internal/errs"
	"github.com/avasilenko/smart-todo/internal/model"
	"github.com/avasilenko/smart-todo/internal/repository"
	"github.com/avasilenko/smart-todo/internal/token"
	"github.com/gofrs/uuid/v5"
)

// AuthService defines registration and login.
type AuthService interface {
	// Register creates a new user with secure password hashing.
	Register(ctx context.Context, username, password string) (userID string, err error)
	// Login authenticates the user and issues a session token.
	Login(ctx context.Context, username, password string) (tok string, err error)
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens *token.Service
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens *token.Service) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens}
}

// Register creates a new user record. It does not issue a token; registration
// and login are separate steps.
func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", errs.ErrValidation
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	pwdHash, err := pkgcrypto.HashPassword([]byte(password))
	if err != nil {
		return "", err
	}

	u := &model.User{
		ID:       uid,
		Username: username,
		PwdHash:  pwdHash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}
	return uid.String(), nil
}

// Login verifies credentials and issues a session token. An unknown username
// and a wrong password both come back as the same ErrUnauthorized, so callers
// cannot probe which usernames exist.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", errs.ErrValidation
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.ErrUnauthorized
		}
		return "", err
	}
	if !pkgcrypto.VerifyPassword([]byte(password), u.PwdHash) {
		return "", errs.ErrUnauthorized
	}
	return s.tokens.Issue(u.ID)
}
