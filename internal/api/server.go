package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reelsmith/internal/logging"
	"reelsmith/internal/mediastore"
	"reelsmith/internal/notifications"
	"reelsmith/internal/pipeline"
)

// HealthChecker reports whether an external dependency is usable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Server wires the pipeline orchestrator, media store, and notifier into an
// HTTP listener.
type Server struct {
	bind     string
	logger   *slog.Logger
	orch     *pipeline.Orchestrator
	store    *mediastore.Store
	notifier notifications.Service
	checkers map[string]HealthChecker

	mux      *http.ServeMux
	server   *http.Server
	listener net.Listener
}

// NewServer constructs the HTTP server. The store may be nil in brief mode;
// the notifier may be nil and defaults to a noop.
func NewServer(bind string, orch *pipeline.Orchestrator, store *mediastore.Store, notifier notifications.Service, checkers map[string]HealthChecker, logger *slog.Logger) (*Server, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, errors.New("api: bind address required")
	}
	if orch == nil {
		return nil, errors.New("api: orchestrator required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	s := &Server{
		bind:     bind,
		logger:   logging.NewComponentLogger(logger, "api"),
		orch:     orch,
		store:    store,
		notifier: notifier,
		checkers: checkers,
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/run_workflow", s.handleRunWorkflow)
	s.mux.HandleFunc("/run_workflow_stream", s.handleRunWorkflowStream)
	s.mux.HandleFunc("/videos/", s.handleVideo)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		// No WriteTimeout: the stream endpoint stays open for the full
		// duration of a run, including a multi-minute render.
	}
	return s, nil
}

// Handler exposes the route table (tests).
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start begins serving and shuts the listener down when ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down immediately.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr returns the bound listener address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	payload := HealthResponse{OK: true, Mode: string(s.orch.Mode())}
	for name, checker := range s.checkers {
		health := ComponentHealth{Name: name, Ready: true}
		if err := checker.HealthCheck(r.Context()); err != nil {
			health.Ready = false
			health.Detail = err.Error()
			payload.OK = false
		}
		payload.Components = append(payload.Components, health)
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
