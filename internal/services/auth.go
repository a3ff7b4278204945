package services

import (
	"context"
	"errors"

	"github.com/todozero/todozero/internal/apperr"
	"github.com/todozero/todozero/internal/auth"
	"github.com/todozero/todozero/internal/models"
	"github.com/todozero/todozero/internal/store"
)

const TokenType = "Bearer"

type AuthService struct {
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

func NewAuthService(hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{hasher: hasher, tokens: tokens}
}

// Login exchanges an email and password for an access token. An unknown
// email and a wrong password both yield apperr.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, tx store.Tx, email, password string) (string, error) {
	user, err := tx.Users().FindByEmail(ctx, email)

	if errors.Is(err, apperr.ErrNotFound) {
		return "", apperr.ErrInvalidCredentials
	}

	if err != nil {
		return "", err
	}

	if !s.hasher.Verify(password, user.Password) {
		return "", apperr.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.Email)
}

// Refresh issues a new token for an already authenticated user.
func (s *AuthService) Refresh(actor *models.User) (string, error) {
	if actor == nil {
		return "", apperr.ErrUnauthenticated
	}
	return s.tokens.Issue(actor.Email)
}
