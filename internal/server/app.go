// Package server initializes and runs the main application server: it
// wires the credential store, the token authority, and the HTTP API, and
// handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/authgate/authgate/internal/logging"
	"github.com/authgate/authgate/internal/server/auth"
	"github.com/authgate/authgate/internal/server/config"
	"github.com/authgate/authgate/internal/server/httpapi"
	"github.com/authgate/authgate/internal/server/identity"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	identity  *identity.Service
	authority *auth.Authority
}

func NewApp(c *config.Config) (*App, error) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(c.LogLevel)})
	logger := logging.NewSlogLogger(slog.New(handler))

	authority := auth.NewAuthority([]byte(c.SecretKey), c.TokenValidityDuration)

	repo := identity.NewMemoryRepository()
	is, err := identity.NewService(repo, authority, c)
	if err != nil {
		return nil, fmt.Errorf("identity service init error: %w", err)
	}

	return &App{config: c, logger: logger, identity: is, authority: authority}, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.identity, app.authority)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
