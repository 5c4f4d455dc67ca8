package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voyager-be/internal/auth"
	"voyager-be/internal/booking"
	"voyager-be/internal/config"
	"voyager-be/internal/dashboard"
	"voyager-be/internal/db"
	"voyager-be/internal/logger"
	"voyager-be/internal/menu"
	"voyager-be/internal/metrics"
	"voyager-be/internal/middleware"
	"voyager-be/internal/order"
	"voyager-be/internal/rest"
	"voyager-be/internal/user"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(srv *http.Server) error {
		return srv.ListenAndServe()
	}
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	limiter := middleware.NewLimiter(cfg.InternalSecretKey)
	defer limiter.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newServer(cfg, database, limiter),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServer wires repositories, services and the router. limiter may be nil.
func newServer(cfg *config.Config, database *sql.DB, limiter *middleware.Limiter) http.Handler {
	menuRepo := menu.NewRepository(database)

	svc := rest.Services{
		Users: user.NewService(user.NewRepository(database), user.Options{
			BcryptCost:           cfg.BcryptCost,
			OpenRoleRegistration: cfg.OpenRoleRegistration,
		}),
		Menu:      menu.NewService(menuRepo),
		Orders:    order.NewService(order.NewRepository(database), menuRepo),
		Bookings:  booking.NewService(booking.NewRepository(database)),
		Dashboard: dashboard.NewService(dashboard.NewRepository(database)),
	}

	opts := rest.Options{
		Sessions:             auth.NewJWTSessions(cfg.SessionSecret, cfg.SessionMaxAge, cfg.SessionUpdateAge),
		Cookie:               auth.Cookie{Name: cfg.CookieName, Secure: cfg.IsProduction()},
		CORSOrigin:           cfg.CORSOrigin,
		Metrics:              &metrics.HTTP{},
		DB:                   database,
		AdminForbiddenStatus: cfg.AdminForbiddenStatus,
		BookingTransitions:   cfg.BookingTransitions,
	}
	if limiter != nil {
		opts.RateLimiter = limiter
	}

	return rest.NewRouter(svc, opts)
}
