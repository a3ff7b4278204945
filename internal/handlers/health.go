package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/todozero/todozero/internal/types"
)

const pingTimeout = 2 * time.Second

const helloPage = `<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>Hello</title>
</head>
<body>
	<h1>Hello World!!!</h1>
</body>
</html>
`

func Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, types.Message{Message: "Olá mundo!"})
}

func Hello(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(helloPage))
}

func (h *Handler) HealthCheck(ctx *gin.Context) {
	state := "ok"
	database := "ok"
	status := http.StatusOK

	if h.ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), pingTimeout)
		defer cancel()

		if err := h.ping(pingCtx); err != nil {
			h.logger.Error("health check: database unreachable", slog.String("error", err.Error()))
			state = "unavailable"
			database = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	ctx.JSON(status, gin.H{
		"status":    state,
		"database":  database,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
