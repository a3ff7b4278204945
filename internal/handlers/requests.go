package handlers

import (
	"fmt"

	"github.com/todozero/todozero/internal/models"
	"github.com/todozero/todozero/internal/store"
)

type UserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenRequest is the OAuth2 password form: username carries the email.
type TokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type PageQuery struct {
	Limit  int `form:"limit,default=10" binding:"min=0"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

type TodoRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	State       models.TodoState `json:"state" binding:"required,oneof=draft doing done trash"`
}

// TodoPatchRequest distinguishes an omitted field (nil) from an empty one.
type TodoPatchRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	State       *models.TodoState `json:"state" binding:"omitempty,oneof=draft doing done trash"`
}

type TodoQuery struct {
	PageQuery
	Title       string           `form:"title"`
	Description string           `form:"description"`
	State       models.TodoState `form:"state" binding:"omitempty,oneof=draft doing done trash"`
}

func (q PageQuery) page(maxLimit int) (store.Page, error) {
	if maxLimit > 0 && q.Limit > maxLimit {
		return store.Page{}, fmt.Errorf("limit: must be less than or equal to %d", maxLimit)
	}
	return store.Page{Limit: q.Limit, Offset: q.Offset}, nil
}

func (q TodoQuery) filter() store.TodoFilter {
	return store.TodoFilter{
		Title:       q.Title,
		Description: q.Description,
		State:       q.State,
	}
}

func (r TodoPatchRequest) patch() models.TodoPatch {
	return models.TodoPatch{
		Title:       r.Title,
		Description: r.Description,
		State:       r.State,
	}
}
