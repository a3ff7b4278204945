package services

import (
	"context"

	"github.com/todozero/todozero/internal/models"
	"github.com/todozero/todozero/internal/policy"
	"github.com/todozero/todozero/internal/store"
)

type TodoInput struct {
	Title       string
	Description string
	State       models.TodoState
}

// TodoService only ever touches the actor's own todos.
type TodoService struct{}

func NewTodoService() *TodoService {
	return &TodoService{}
}

func (s *TodoService) Create(ctx context.Context, tx store.Tx, actor *models.User, in TodoInput) (*models.Todo, error) {
	ownerID, err := policy.TodoOwner(actor)

	if err != nil {
		return nil, err
	}

	todo := &models.Todo{
		Title:       in.Title,
		Description: in.Description,
		State:       in.State,
		UserID:      ownerID,
	}

	if err := tx.Todos().Create(ctx, todo); err != nil {
		return nil, err
	}

	return todo, nil
}

func (s *TodoService) List(ctx context.Context, tx store.Tx, actor *models.User, filter store.TodoFilter, page store.Page) ([]models.Todo, error) {
	ownerID, err := policy.TodoOwner(actor)

	if err != nil {
		return nil, err
	}

	return tx.Todos().ListFiltered(ctx, ownerID, filter, page)
}

// Patch applies the supplied fields to the actor's todo id. A todo owned by
// someone else is reported as apperr.ErrNotFound.
func (s *TodoService) Patch(ctx context.Context, tx store.Tx, actor *models.User, id uint, patch models.TodoPatch) (*models.Todo, error) {
	ownerID, err := policy.TodoOwner(actor)

	if err != nil {
		return nil, err
	}

	todo, err := tx.Todos().FindOwned(ctx, ownerID, id)

	if err != nil {
		return nil, err
	}

	if !patch.Apply(todo) {
		return todo, nil
	}

	if err := tx.Todos().Update(ctx, todo); err != nil {
		return nil, err
	}

	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, tx store.Tx, actor *models.User, id uint) error {
	ownerID, err := policy.TodoOwner(actor)

	if err != nil {
		return err
	}

	todo, err := tx.Todos().FindOwned(ctx, ownerID, id)

	if err != nil {
		return err
	}

	return tx.Todos().Delete(ctx, todo)
}
