package services

import (
	"context"
	"fmt"

	"github.com/todozero/todozero/internal/auth"
	"github.com/todozero/todozero/internal/models"
	"github.com/todozero/todozero/internal/policy"
	"github.com/todozero/todozero/internal/store"
)

// UserInput is the full set of writable user fields. Registration and
// update both replace all three.
type UserInput struct {
	Username string
	Email    string
	Password string
}

type UserService struct {
	hasher *auth.PasswordHasher
}

func NewUserService(hasher *auth.PasswordHasher) *UserService {
	return &UserService{hasher: hasher}
}

// Register creates a user. A taken username or email is reported as
// *apperr.ConflictError.
func (s *UserService) Register(ctx context.Context, tx store.Tx, in UserInput) (*models.User, error) {
	digest, err := s.hasher.Hash(in.Password)

	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: digest,
	}

	if err := tx.Users().Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Get(ctx context.Context, tx store.Tx, id uint) (*models.User, error) {
	return tx.Users().FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, tx store.Tx, page store.Page) ([]models.User, error) {
	return tx.Users().List(ctx, page)
}

// Update replaces username, email and password of user id. Only that user
// may do it.
func (s *UserService) Update(ctx context.Context, tx store.Tx, actor *models.User, id uint, in UserInput) (*models.User, error) {
	if err := policy.AuthorizeUserMutation(actor, id); err != nil {
		return nil, err
	}

	user, err := tx.Users().FindByID(ctx, id)

	if err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)

	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user.Username = in.Username
	user.Email = in.Email
	user.Password = digest

	if err := tx.Users().Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes user id together with its todos.
func (s *UserService) Delete(ctx context.Context, tx store.Tx, actor *models.User, id uint) error {
	if err := policy.AuthorizeUserMutation(actor, id); err != nil {
		return err
	}

	user, err := tx.Users().FindByID(ctx, id)

	if err != nil {
		return err
	}

	return tx.Users().Delete(ctx, user)
}
