package types

import (
	"time"

	"github.com/todozero/todozero/internal/models"
)

type Message struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	ID       uint   `json:"id"`
}

type UserList struct {
	Users []UserResponse `json:"users"`
}

type TodoResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	State       models.TodoState `json:"state"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type TodoList struct {
	Todos []TodoResponse `json:"todos"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		Username: user.Username,
		Email:    user.Email,
		ID:       user.ID,
	}
}

func NewUserList(users []models.User) UserList {
	list := UserList{Users: make([]UserResponse, 0, len(users))}

	for i := range users {
		list.Users = append(list.Users, NewUserResponse(&users[i]))
	}

	return list
}

func NewTodoResponse(todo *models.Todo) TodoResponse {
	return TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		State:       todo.State,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

func NewTodoList(todos []models.Todo) TodoList {
	list := TodoList{Todos: make([]TodoResponse, 0, len(todos))}

	for i := range todos {
		list.Todos = append(list.Todos, NewTodoResponse(&todos[i]))
	}

	return list
}
