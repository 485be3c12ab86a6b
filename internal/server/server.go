// Package server exposes the trainer over HTTP and a WebSocket drill.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/pokertrainer/internal/trainer"
)

// Server serves the JSON API and the drill socket.
type Server struct {
	trainer     *trainer.Service
	logger      *log.Logger
	defaultUser string
	upgrader    websocket.Upgrader
	mux         *http.ServeMux
}

// New creates a server. Requests without a user id act as defaultUser.
func New(svc *trainer.Service, logger *log.Logger, defaultUser string) *Server {
	s := &Server{
		trainer:     svc,
		logger:      logger.WithPrefix("server"),
		defaultUser: defaultUser,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// the API is unauthenticated and serves any local front end
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		mux: http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/hands/rankings", s.handleRankings)
	s.mux.HandleFunc("GET /api/hands/starting", s.handleStartingHands)
	s.mux.HandleFunc("GET /api/training/types", s.handleTypes)
	s.mux.HandleFunc("GET /api/training/question", s.handleQuestion)
	s.mux.HandleFunc("POST /api/training/answer", s.handleAnswer)
	s.mux.HandleFunc("GET /api/stats", s.handleStats)
	s.mux.HandleFunc("POST /api/stats/reset", s.handleReset)
	s.mux.HandleFunc("GET /ws/drill", s.handleDrill)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		// drill sockets watch the request context, so cancelling ctx ends them
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting trainer server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down trainer server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// userID returns the caller's id from the X-User-ID header or the user query
// parameter.
func (s *Server) userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	if id := r.URL.Query().Get("user"); id != "" {
		return id
	}
	return s.defaultUser
}
