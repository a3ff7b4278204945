package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/todozero/todozero/internal/models"
	"github.com/todozero/todozero/internal/types"
)

var (
	ErrNoCurrentUser = errors.New("user not authenticated")
	ErrInvalidID     = errors.New("invalid id")
)

func GetCurrentUser(ctx *gin.Context) (*models.User, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return nil, ErrNoCurrentUser
	}

	authenticatedUser, ok := user.(*models.User)

	if !ok || authenticatedUser == nil {
		return nil, errors.New("invalid user type in context")
	}

	return authenticatedUser, nil
}

// GetIDParam parses the named path parameter as an id.
func GetIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, ErrInvalidID
	}

	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)

	if err != nil {
		return 0, ErrInvalidID
	}

	return uint(id), nil
}

// GetRequestID returns the id assigned by the request id middleware, if any.
func GetRequestID(ctx *gin.Context) string {
	return ctx.GetString(types.ContextRequestIDKey)
}
