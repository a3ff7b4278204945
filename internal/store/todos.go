package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/todozero/todozero/internal/apperr"
	"github.com/todozero/todozero/internal/models"
)

type todoRepository struct {
	db *gorm.DB
}

func (r *todoRepository) Create(ctx context.Context, todo *models.Todo) error {
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return classify(err)
	}
	return nil
}

func (r *todoRepository) FindOwned(ctx context.Context, ownerID, id uint) (*models.Todo, error) {
	var todo models.Todo

	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&todo).Error

	if err != nil {
		return nil, classify(err)
	}

	return &todo, nil
}

func (r *todoRepository) ListFiltered(ctx context.Context, ownerID uint, filter TodoFilter, page Page) ([]models.Todo, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)

	if filter.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", containsPattern(filter.Title))
	}

	if filter.Description != "" {
		query = query.Where("LOWER(description) LIKE ?", containsPattern(filter.Description))
	}

	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}

	todos := []models.Todo{}

	err := query.
		Order("id").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&todos).Error

	if err != nil {
		return nil, err
	}

	return todos, nil
}

func (r *todoRepository) Update(ctx context.Context, todo *models.Todo) error {
	if err := r.db.WithContext(ctx).Save(todo).Error; err != nil {
		return classify(err)
	}
	return nil
}

func (r *todoRepository) Delete(ctx context.Context, todo *models.Todo) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", todo.UserID).
		Delete(&models.Todo{}, todo.ID)

	if result.Error != nil {
		return classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
