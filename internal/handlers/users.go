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

const userResource = "user"

func (h *Handler) CreateUser(ctx *gin.Context) {
	var req UserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeBindError(ctx, err)
		return
	}

	var user *models.User

	err := h.store.Transact(ctx.Request.Context(), func(tx store.Tx) error {
		var err error
		user, err = h.users.Register(ctx.Request.Context(), tx, services.UserInput(req))
		return err
	})

	if err != nil {
		h.writeError(ctx, userResource, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewUserResponse(user))
}

func (h *Handler) ListUsers(ctx *gin.Context) {
	var query PageQuery

	if err := ctx.ShouldBindQuery(&query); err != nil {
		writeBindError(ctx, err)
		return
	}

	page, err := query.page(h.maxPageLimit)

	if err != nil {
		writeDetail(ctx, http.StatusUnprocessableEntity, err.Error())
		return
	}

	users, err := h.users.List(ctx.Request.Context(), h.store.Session(ctx.Request.Context()), page)

	if err != nil {
		h.writeError(ctx, userResource, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserList(users))
}

func (h *Handler) GetUser(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx, "user_id")

	if err != nil {
		writeDetail(ctx, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := h.users.Get(ctx.Request.Context(), h.store.Session(ctx.Request.Context()), id)

	if err != nil {
		h.writeError(ctx, userResource, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(user))
}

func (h *Handler) UpdateUser(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		writeDetail(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := utils.GetIDParam(ctx, "user_id")

	if err != nil {
		writeDetail(ctx, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var req UserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeBindError(ctx, err)
		return
	}

	var user *models.User

	err = h.store.Transact(ctx.Request.Context(), func(tx store.Tx) error {
		var err error
		user, err = h.users.Update(ctx.Request.Context(), tx, currentUser, id, services.UserInput(req))
		return err
	})

	if err != nil {
		h.writeError(ctx, userResource, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(user))
}

func (h *Handler) DeleteUser(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		writeDetail(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := utils.GetIDParam(ctx, "user_id")

	if err != nil {
		writeDetail(ctx, http.StatusUnprocessableEntity, err.Error())
		return
	}

	err = h.store.Transact(ctx.Request.Context(), func(tx store.Tx) error {
		return h.users.Delete(ctx.Request.Context(), tx, currentUser, id)
	})

	if err != nil {
		h.writeError(ctx, userResource, err)
		return
	}

	ctx.JSON(http.StatusOK, types.Message{Message: "user deleted"})
}
