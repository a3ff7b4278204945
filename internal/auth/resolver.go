package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/todozero/todozero/internal/apperr"
	"github.com/todozero/todozero/internal/models"
)

// ErrNoToken is wrapped into apperr.ErrUnauthenticated when the request
// carries no bearer token at all.
var ErrNoToken = errors.New("not authenticated")

// UserFinder is the slice of the user repository the resolver needs.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Resolver turns a bearer token into the user it was issued for.
type Resolver struct {
	tokens *TokenService
}

func NewResolver(tokens *TokenService) *Resolver {
	return &Resolver{tokens: tokens}
}

// Resolve validates token and loads its subject from users. Every failure
// except a store error wraps apperr.ErrUnauthenticated.
func (r *Resolver) Resolve(ctx context.Context, users UserFinder, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: %w", apperr.ErrUnauthenticated, ErrNoToken)
	}

	claims, err := r.tokens.Validate(token)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrUnauthenticated, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", apperr.ErrUnauthenticated)
	}

	user, err := users.FindByEmail(ctx, claims.Subject)

	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %q no longer exists", apperr.ErrUnauthenticated, claims.Subject)
	}

	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	return user, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)

	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
