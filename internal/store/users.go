package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/todozero/todozero/internal/apperr"
	"github.com/todozero/todozero/internal/models"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	existing, err := r.FindByUsernameOrEmail(ctx, user.Username, user.Email)

	if err == nil {
		if existing.Username == user.Username {
			return &apperr.ConflictError{Field: apperr.FieldUsername}
		}
		return &apperr.ConflictError{Field: apperr.FieldEmail}
	}

	if !errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("check existing user: %w", err)
	}

	// A concurrent registration can still win between the check above and
	// this insert; the unique index catches it.
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return classify(err)
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, classify(err)
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, classify(err)
	}

	return &user, nil
}

// FindByUsernameOrEmail returns a user holding either value, preferring one
// that matches username.
func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	var users []models.User

	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		Order("id").
		Limit(2).
		Find(&users).Error

	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}

	if len(users) > 0 {
		return &users[0], nil
	}

	return nil, apperr.ErrNotFound
}

func (r *userRepository) List(ctx context.Context, page Page) ([]models.User, error) {
	users := []models.User{}

	err := r.db.WithContext(ctx).
		Order("id").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&users).Error

	if err != nil {
		return nil, err
	}

	return users, nil
}

// Update writes every column of user. Uniqueness is left to the engine.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return classify(err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, user *models.User) error {
	tx := r.db.WithContext(ctx)

	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Todo{}).Error; err != nil {
		return fmt.Errorf("delete todos of user %d: %w", user.ID, err)
	}

	result := tx.Delete(&models.User{}, user.ID)

	if result.Error != nil {
		return classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}

	return nil
}
