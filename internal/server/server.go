// Package server exposes generator sessions over websockets. Each connection
// owns a generator; actions run on a shared worker and are answered with the
// flattened mesh.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jostly/terragen/internal/config"
	"github.com/jostly/terragen/internal/logger"
	"github.com/jostly/terragen/internal/pipeline"
)

// Server hosts websocket generator sessions.
type Server struct {
	cfg      config.ServerConfig
	opts     pipeline.Options
	worker   *pipeline.Worker
	upgrader websocket.Upgrader
	log      *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// New creates a server. Generation options supply the relax multiplier used
// by the relax action.
func New(cfg config.ServerConfig, opts pipeline.Options) *Server {
	return &Server{
		cfg:    cfg,
		opts:   opts,
		worker: pipeline.NewWorker(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log:      logger.Named("server"),
		sessions: make(map[string]*session),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// Close stops the worker. Open sessions receive errors for further actions.
func (s *Server) Close() {
	s.worker.Close()
}

// NumSessions returns the number of connected sessions.
func (s *Server) NumSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sess := newSession(uuid.NewString(), conn, s)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess.id)
		s.mu.Unlock()
	}()

	s.log.Info("session opened", zap.String("session", sess.id), zap.String("remote", r.RemoteAddr))
	sess.run()
	s.log.Info("session closed", zap.String("session", sess.id))
}
