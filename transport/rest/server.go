package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	router *chi.Mux
}

// New builds the router; socket, when non-nil, is mounted at /ws.
func New(logger *slog.Logger, games gameManager, socket http.Handler) *Server {
	s := &Server{
		logger: logger.With("component", "rest"),
		router: chi.NewRouter(),
	}

	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(chimw.Recoverer)

	s.router.Get("/ping", NewPingHandler().PingHandler)
	if socket != nil {
		s.router.Handle("/ws", socket)
	}

	h := NewHandlers(logger, games)
	s.router.Route("/sessions", func(r chi.Router) {
		r.Use(jsonContentType)

		r.Post("/", h.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Post("/moves", h.ApplyMove)
			r.Post("/ai", h.RequestAIMove)
			r.Post("/undo", h.Undo)
			r.Post("/redo", h.Redo)
			r.Post("/reset", h.Reset)
		})
	})

	return s
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start serves on port until ctx is cancelled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	that.logger.Info("HTTP server stopped")

	return nil
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
