package handlers

import (
	"context"
	"log/slog"

	"github.com/todozero/todozero/internal/metrics"
	"github.com/todozero/todozero/internal/services"
	"github.com/todozero/todozero/internal/store"
)

// Handler serves every endpoint. It holds no per-request state.
type Handler struct {
	store        *store.Store
	users        *services.UserService
	auth         *services.AuthService
	todos        *services.TodoService
	ping         func(ctx context.Context) error
	metrics      *metrics.Metrics
	logger       *slog.Logger
	maxPageLimit int
}

type Deps struct {
	Store   *store.Store
	Users   *services.UserService
	Auth    *services.AuthService
	Todos   *services.TodoService
	Ping    func(ctx context.Context) error
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	// MaxPageLimit caps the limit query parameter; 0 means no cap.
	MaxPageLimit int
}

func New(d Deps) *Handler {
	return &Handler{
		store:        d.Store,
		users:        d.Users,
		auth:         d.Auth,
		todos:        d.Todos,
		ping:         d.Ping,
		metrics:      d.Metrics,
		logger:       d.Logger,
		maxPageLimit: d.MaxPageLimit,
	}
}
