package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/todozero/todozero/db"
	"github.com/todozero/todozero/internal/auth"
	"github.com/todozero/todozero/internal/config"
	"github.com/todozero/todozero/internal/handlers"
	"github.com/todozero/todozero/internal/logging"
	"github.com/todozero/todozero/internal/metrics"
	"github.com/todozero/todozero/internal/ratelimit"
	"github.com/todozero/todozero/internal/router"
	"github.com/todozero/todozero/internal/services"
	"github.com/todozero/todozero/internal/store"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.ConnectDatabase(cfg.Database, cfg.Log.Level)

	if err != nil {
		logger.Error("connect database failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Error("close database failed", slog.String("error", err.Error()))
		}
	}()

	if err := db.MigrateDatabase(gdb); err != nil {
		logger.Error("migrate database failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tokens, err := auth.NewTokenService(cfg.Security.SecretKey, cfg.Security.Algorithm, cfg.Security.AccessTokenTTL)

	if err != nil {
		logger.Error("init token service failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	hasher := auth.NewPasswordHasher(cfg.Security.BcryptCost)
	st := store.New(gdb)

	registry := metrics.NewRegistry()
	m := metrics.New(registry)

	var limiter *ratelimit.Limiter

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, login throttling fails open", slog.String("error", err.Error()))
		}

		limiter = ratelimit.New(rdb, ratelimit.DefaultPrefix, cfg.Redis.LoginRate, cfg.Redis.LoginBurst)
	}

	h := handlers.New(handlers.Deps{
		Store:        st,
		Users:        services.NewUserService(hasher),
		Auth:         services.NewAuthService(hasher, tokens),
		Todos:        services.NewTodoService(),
		Ping:         func(ctx context.Context) error { return db.Ping(ctx, gdb) },
		Metrics:      m,
		Logger:       logger,
		MaxPageLimit: cfg.MaxPageLimit,
	})

	r, err := router.NewRouter(router.Options{
		Handler:        h,
		Resolver:       auth.NewResolver(tokens),
		Store:          st,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		TrustedProxies: cfg.TrustedProxies,
		Logger:         logger,
		Limiter:        limiter,
		Metrics:        m,
		Gatherer:       registry,
	})

	if err != nil {
		logger.Error("build router failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("database ready", slog.String("driver", cfg.Database.Driver))

	if err := serve(ctx, logger, r, cfg.Port); err != nil {
		logger.Error("server run failed", slog.String("error", err.Error()))
	}
}

// serve runs the HTTP server until ctx is cancelled or listening fails, then
// drains in-flight requests.
func serve(ctx context.Context, logger *slog.Logger, handler http.Handler, port string) error {
	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("api server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down api server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	return nil
}
