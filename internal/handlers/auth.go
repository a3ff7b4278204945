package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/todozero/todozero/internal/apperr"
	"github.com/todozero/todozero/internal/services"
	"github.com/todozero/todozero/internal/types"
	"github.com/todozero/todozero/internal/utils"
)

// Login implements the OAuth2 password grant: the form's username field is
// the account email.
func (h *Handler) Login(ctx *gin.Context) {
	var req TokenRequest

	if err := ctx.ShouldBindWith(&req, binding.Form); err != nil {
		writeBindError(ctx, err)
		return
	}

	token, err := h.auth.Login(ctx.Request.Context(), h.store.Session(ctx.Request.Context()), req.Username, req.Password)

	if err != nil {
		if errors.Is(err, apperr.ErrInvalidCredentials) {
			if h.metrics != nil {
				h.metrics.LoginFailuresTotal.Inc()
			}
			h.logger.Info("login failed",
				slog.String("request_id", utils.GetRequestID(ctx)),
				slog.String("client_ip", ctx.ClientIP()),
			)
		}
		h.writeError(ctx, userResource, err)
		return
	}

	ctx.JSON(http.StatusOK, types.Token{AccessToken: token, TokenType: services.TokenType})
}

func (h *Handler) RefreshToken(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		writeDetail(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	token, err := h.auth.Refresh(currentUser)

	if err != nil {
		h.writeError(ctx, userResource, err)
		return
	}

	ctx.JSON(http.StatusOK, types.Token{AccessToken: token, TokenType: services.TokenType})
}
