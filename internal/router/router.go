package router

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/todozero/todozero/internal/auth"
	"github.com/todozero/todozero/internal/handlers"
	"github.com/todozero/todozero/internal/metrics"
	"github.com/todozero/todozero/internal/middleware"
	"github.com/todozero/todozero/internal/ratelimit"
	"github.com/todozero/todozero/internal/store"
)

type Options struct {
	Handler        *handlers.Handler
	Resolver       *auth.Resolver
	Store          *store.Store
	AllowedOrigins []string
	Logger         *slog.Logger

	// TrustedProxies may set X-Forwarded-For. nil trusts no proxy, so the
	// login throttle keys on the peer address.
	TrustedProxies []string

	// Limiter throttles POST /auth/token; nil disables throttling.
	Limiter *ratelimit.Limiter

	// Metrics and Gatherer enable request metrics and GET /metrics.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

func NewRouter(opts Options) (*gin.Engine, error) {
	r := gin.New()

	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(opts.Logger))

	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	// cors rejects an empty origin list
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	h := opts.Handler
	requireAuth := middleware.AuthMiddleware(opts.Resolver, opts.Store, opts.Logger)

	r.GET("/", handlers.Root)
	r.GET("/hello", handlers.Hello)
	r.GET("/health", h.HealthCheck)

	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	users := r.Group("/users")
	{
		users.POST("/", h.CreateUser)
		users.GET("/", requireAuth, h.ListUsers)
		users.GET("/:user_id", h.GetUser)
		users.PUT("/:user_id", requireAuth, h.UpdateUser)
		users.DELETE("/:user_id", requireAuth, h.DeleteUser)
	}

	authGroup := r.Group("/auth")
	{
		token := []gin.HandlerFunc{h.Login}
		if opts.Limiter != nil {
			token = append([]gin.HandlerFunc{middleware.LoginRateLimit(opts.Limiter, opts.Metrics, opts.Logger)}, token...)
		}

		authGroup.POST("/token", token...)
		authGroup.POST("/refresh_token", requireAuth, h.RefreshToken)
	}

	todos := r.Group("/todos", requireAuth)
	{
		todos.POST("/", h.CreateTodo)
		todos.GET("/", h.ListTodos)
		todos.PATCH("/:todo_id", h.PatchTodo)
		todos.DELETE("/:todo_id", h.DeleteTodo)
	}

	return r, nil
}
