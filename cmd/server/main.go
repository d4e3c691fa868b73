package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/brainbuzz/internal/config"
	"github.com/aliskhannn/brainbuzz/internal/delivery/web"
	"github.com/aliskhannn/brainbuzz/internal/infra/postgres"
	"github.com/aliskhannn/brainbuzz/internal/infra/postgres/repository"
	"github.com/aliskhannn/brainbuzz/internal/logger"
	"github.com/aliskhannn/brainbuzz/internal/service"
	"github.com/aliskhannn/brainbuzz/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("server stopped with error", zap.Error(err))
	}
	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        cfg.DB.MaxConnections,
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}
		lg.Info("database schema applied")
	}

	// Initialize repositories.
	transactor := postgres.NewTransactor(pool)
	userRepo := repository.NewUserRepository(pool)
	quizRepo := repository.NewQuizRepository(pool, transactor)
	resultRepo := repository.NewResultRepository(pool)

	var sessions service.SessionStore
	switch cfg.Session.Backend {
	case config.SessionBackendPostgres:
		sessions = repository.NewSessionRepository(pool, cfg.Session.TTL)
	default:
		sessions = storage.NewSessionStore(cfg.Session.TTL)
	}
	lg.Info("session store ready",
		zap.String("backend", cfg.Session.Backend),
		zap.Duration("ttl", cfg.Session.TTL),
	)

	// Initialize services.
	authService := service.NewAuthService(userRepo, sessions, service.SecurityPolicy{
		BcryptCost:        cfg.Security.BcryptCost,
		MaxFailedAttempts: cfg.Security.MaxFailedAttempts,
		LockoutDuration:   cfg.Security.LockoutDuration,
	}, lg)
	userService := service.NewUserService(userRepo, lg)
	quizService := service.NewQuizService(quizRepo, lg)
	resultService := service.NewResultService(resultRepo, lg)
	sweeper := service.NewSessionSweeper(sessions, cfg.Session.SweepSchedule, lg)

	if err := userService.EnsureAdmin(ctx, cfg.Admin.Username); err != nil {
		return err
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := web.NewHandler(lg, authService, userService, quizService, resultService, web.Options{
		DevMode:        cfg.IsDevelopment(),
		CookieSecure:   cfg.HTTP.CookieSecure,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lg.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return sweeper.Start(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		lg.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
