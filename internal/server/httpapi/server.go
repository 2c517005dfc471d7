// Package httpapi exposes the credential store and token authority over
// HTTP: registration, login, and a token-gated profile endpoint.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/authgate/authgate/internal/logging"
	"github.com/authgate/authgate/internal/server/auth"
	"github.com/authgate/authgate/internal/server/identity"
	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address   string
	logger    logging.Logger
	identity  *identity.Service
	authority *auth.Authority
}

func NewServer(addr string, l logging.Logger, is *identity.Service, authority *auth.Authority) *Server {
	return &Server{
		address:   addr,
		logger:    l.With("module", "http_server"),
		identity:  is,
		authority: authority,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/profile", s.handleProfile)
		})
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
