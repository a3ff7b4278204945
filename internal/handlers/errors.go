package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/todozero/todozero/internal/apperr"
	"github.com/todozero/todozero/internal/types"
	"github.com/todozero/todozero/internal/utils"
)

const internalErrorDetail = "internal server error"

func writeDetail(ctx *gin.Context, status int, detail string) {
	ctx.JSON(status, types.ErrorResponse{Detail: detail})
}

// writeError maps a service error onto its status code. resource names the
// entity in 404 answers.
func (h *Handler) writeError(ctx *gin.Context, resource string, err error) {
	var conflict *apperr.ConflictError

	switch {
	case errors.Is(err, apperr.ErrInvalidCredentials):
		writeDetail(ctx, http.StatusUnauthorized, apperr.ErrInvalidCredentials.Error())
	case errors.Is(err, apperr.ErrUnauthenticated):
		ctx.Header("WWW-Authenticate", "Bearer")
		writeDetail(ctx, http.StatusUnauthorized, apperr.ErrUnauthenticated.Error())
	case errors.Is(err, apperr.ErrForbidden):
		writeDetail(ctx, http.StatusForbidden, apperr.ErrForbidden.Error())
	case errors.Is(err, apperr.ErrNotFound):
		writeDetail(ctx, http.StatusNotFound, resource+" not found")
	case errors.As(err, &conflict):
		writeDetail(ctx, http.StatusConflict, conflict.Error())
	case errors.Is(err, apperr.ErrIntegrity):
		h.logger.Warn("integrity violation",
			slog.String("request_id", utils.GetRequestID(ctx)),
			slog.String("error", err.Error()),
		)
		writeDetail(ctx, http.StatusUnprocessableEntity, "request violates a data constraint")
	default:
		h.logger.Error("request failed",
			slog.String("request_id", utils.GetRequestID(ctx)),
			slog.String("resource", resource),
			slog.String("error", err.Error()),
		)
		writeDetail(ctx, http.StatusInternalServerError, internalErrorDetail)
	}
}

// writeBindError answers 422 for a request that failed binding or
// validation.
func writeBindError(ctx *gin.Context, err error) {
	writeDetail(ctx, http.StatusUnprocessableEntity, validationDetail(err))
}

func validationDetail(err error) string {
	var verrs validator.ValidationErrors

	if !errors.As(err, &verrs) {
		return "invalid request: " + err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, strings.ToLower(fe.Field())+": "+tagMessage(fe))
	}

	return strings.Join(msgs, "; ")
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
