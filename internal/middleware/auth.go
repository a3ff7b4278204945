package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/todozero/todozero/internal/apperr"
	"github.com/todozero/todozero/internal/auth"
	"github.com/todozero/todozero/internal/store"
	"github.com/todozero/todozero/internal/types"
)

// AuthMiddleware resolves the bearer token into the current user and stores
// it under types.ContextUserKey. Requests without a valid token stop here
// with 401.
func AuthMiddleware(resolver *auth.Resolver, st *store.Store, logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, _ := auth.BearerToken(ctx.GetHeader("Authorization"))

		user, err := resolver.Resolve(ctx.Request.Context(), st.Session(ctx.Request.Context()).Users(), token)

		if err != nil {
			if !errors.Is(err, apperr.ErrUnauthenticated) {
				logger.Error("resolve current user", slog.String("error", err.Error()))
				abortWithDetail(ctx, http.StatusInternalServerError, "internal server error")
				return
			}

			detail := apperr.ErrUnauthenticated.Error()
			if errors.Is(err, auth.ErrNoToken) {
				detail = auth.ErrNoToken.Error()
			}

			logger.Debug("unauthenticated request",
				slog.String("path", ctx.Request.URL.Path),
				slog.String("reason", err.Error()),
			)

			ctx.Header("WWW-Authenticate", "Bearer")
			abortWithDetail(ctx, http.StatusUnauthorized, detail)
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

func abortWithDetail(ctx *gin.Context, status int, detail string) {
	ctx.AbortWithStatusJSON(status, types.ErrorResponse{Detail: detail})
}
