package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/todozero/todozero/internal/metrics"
	"github.com/todozero/todozero/internal/ratelimit"
)

// LoginRateLimit throttles token requests per client address. When redis is
// unreachable the request is let through and the failure logged.
func LoginRateLimit(limiter *ratelimit.Limiter, m *metrics.Metrics, logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		allowed, wait, err := limiter.Allow(ctx.Request.Context(), "login:"+ctx.ClientIP())

		if err != nil {
			logger.Warn("login rate limit unavailable", slog.String("error", err.Error()))
			ctx.Next()
			return
		}

		if !allowed {
			if m != nil {
				m.LoginThrottledTotal.Inc()
			}

			seconds := int(math.Ceil(wait.Seconds()))
			if seconds < 1 {
				seconds = 1
			}

			ctx.Header("Retry-After", strconv.Itoa(seconds))
			abortWithDetail(ctx, http.StatusTooManyRequests, "too many login attempts, try again later")
			return
		}

		ctx.Next()
	}
}
