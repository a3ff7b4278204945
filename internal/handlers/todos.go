package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/todozero/todozero/internal/models"
	"github.com/todozero/todozero/internal/services"
	"github.com/todozero/todozero/internal/store"
	"github.com/todozero/todozero/internal/types"
	"github.com/todozero/todozero/internal/utils"
)

const todoResource = "todo"

func (h *Handler) CreateTodo(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		writeDetail(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	var req TodoRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeBindError(ctx, err)
		return
	}

	var todo *models.Todo

	err = h.store.Transact(ctx.Request.Context(), func(tx store.Tx) error {
		var err error
		todo, err = h.todos.Create(ctx.Request.Context(), tx, currentUser, services.TodoInput(req))
		return err
	})

	if err != nil {
		h.writeError(ctx, todoResource, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewTodoResponse(todo))
}

func (h *Handler) ListTodos(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		writeDetail(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	var query TodoQuery

	if err := ctx.ShouldBindQuery(&query); err != nil {
		writeBindError(ctx, err)
		return
	}

	page, err := query.page(h.maxPageLimit)

	if err != nil {
		writeDetail(ctx, http.StatusUnprocessableEntity, err.Error())
		return
	}

	todos, err := h.todos.List(ctx.Request.Context(), h.store.Session(ctx.Request.Context()), currentUser, query.filter(), page)

	if err != nil {
		h.writeError(ctx, todoResource, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTodoList(todos))
}

func (h *Handler) PatchTodo(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		writeDetail(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := utils.GetIDParam(ctx, "todo_id")

	if err != nil {
		writeDetail(ctx, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var req TodoPatchRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeBindError(ctx, err)
		return
	}

	var todo *models.Todo

	err = h.store.Transact(ctx.Request.Context(), func(tx store.Tx) error {
		var err error
		todo, err = h.todos.Patch(ctx.Request.Context(), tx, currentUser, id, req.patch())
		return err
	})

	if err != nil {
		h.writeError(ctx, todoResource, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTodoResponse(todo))
}

func (h *Handler) DeleteTodo(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		writeDetail(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := utils.GetIDParam(ctx, "todo_id")

	if err != nil {
		writeDetail(ctx, http.StatusUnprocessableEntity, err.Error())
		return
	}

	err = h.store.Transact(ctx.Request.Context(), func(tx store.Tx) error {
		return h.todos.Delete(ctx.Request.Context(), tx, currentUser, id)
	})

	if err != nil {
		h.writeError(ctx, todoResource, err)
		return
	}

	ctx.JSON(http.StatusOK, types.Message{Message: "todo deleted"})
}
