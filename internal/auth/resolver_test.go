package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todozero/todozero/internal/apperr"
	"github.com/todozero/todozero/internal/models"
)

type fakeFinder struct {
	users map[string]*models.User
	err   error
	calls int
}

func (f *fakeFinder) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[email]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return u, nil
}

func newResolverFixture(t *testing.T) (*Resolver, *TokenService, *fakeFinder) {
	t.Helper()
	tokens, err := NewTokenService("super-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)
	finder := &fakeFinder{users: map[string]*models.User{
		"alice@test.com": {ID: 1, Username: "alice", Email: "alice@test.com"},
	}}
	return NewResolver(tokens), tokens, finder
}

func TestResolve_Success(t *testing.T) {
	r, tokens, finder := newResolverFixture(t)

	tok, err := tokens.Issue("alice@test.com")
	require.NoError(t, err)

	user, err := r.Resolve(context.Background(), finder, tok)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
}

func TestResolve_NoToken(t *testing.T) {
	r, _, finder := newResolverFixture(t)

	_, err := r.Resolve(context.Background(), finder, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
	assert.True(t, errors.Is(err, ErrNoToken))
	assert.Zero(t, finder.calls)
}

func TestResolve_InvalidToken(t *testing.T) {
	r, _, finder := newResolverFixture(t)

	_, err := r.Resolve(context.Background(), finder, "invalid-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))

	var tokenErr *TokenError
	require.True(t, errors.As(err, &tokenErr))
	assert.Equal(t, TokenMalformed, tokenErr.Kind)
	assert.Zero(t, finder.calls)
}

func TestResolve_ExpiredToken(t *testing.T) {
	r, tokens, finder := newResolverFixture(t)

	issuedAt := time.Now().Add(-time.Hour)
	tokens.now = func() time.Time { return issuedAt }
	tok, err := tokens.Issue("alice@test.com")
	require.NoError(t, err)
	tokens.now = time.Now

	_, err = r.Resolve(context.Background(), finder, tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))

	var tokenErr *TokenError
	require.True(t, errors.As(err, &tokenErr))
	assert.Equal(t, TokenExpired, tokenErr.Kind)
}

func TestResolve_MissingSubject(t *testing.T) {
	r, tokens, finder := newResolverFixture(t)

	tok, err := tokens.Issue("")
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), finder, tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
	assert.Zero(t, finder.calls)
}

func TestResolve_UserVanished(t *testing.T) {
	r, tokens, finder := newResolverFixture(t)

	tok, err := tokens.Issue("alice@test.com")
	require.NoError(t, err)

	delete(finder.users, "alice@test.com")

	_, err = r.Resolve(context.Background(), finder, tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
	assert.False(t, errors.Is(err, apperr.ErrNotFound))
}

func TestResolve_StoreFailureIsNotUnauthenticated(t *testing.T) {
	r, tokens, finder := newResolverFixture(t)
	finder.err = errors.New("connection reset")

	tok, err := tokens.Issue("alice@test.com")
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), finder, tok)
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperr.ErrUnauthenticated))
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc", "abc", true},
		{"Bearer   abc  ", "abc", true},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		got, ok := BearerToken(tc.header)
		assert.Equal(t, tc.ok, ok, tc.header)
		assert.Equal(t, tc.want, got, tc.header)
	}
}
