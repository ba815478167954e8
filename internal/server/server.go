// Package server exposes a note store over HTTP.
//
// Routes:
//   - GET    /notes/{name}    - note text
//   - PUT    /notes/{name}    - replace the text of an existing note
//   - DELETE /notes/{name}    - remove a note
//   - GET    /notes           - every note as a JSON array (?match=<glob> filters)
//   - POST   /write           - create a note from a form (note_name, note)
//   - GET    /                - liveness greeting
//   - GET    /UploadForm.html - HTML form posting to /write
//   - GET    /metrics         - Prometheus metrics, when enabled
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	storesource "github.com/aretw0/notecache/pkg/adapters/lifecycle"
	"github.com/aretw0/notecache/pkg/core"
)

const (
	// DefaultMaxBodyBytes caps request bodies when Config leaves it unset.
	DefaultMaxBodyBytes int64 = 10 << 20
	// DefaultShutdownTimeout bounds graceful shutdown when Config leaves it unset.
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds the listener and request limits of the server.
type Config struct {
	Host            string
	Port            int
	StoreDir        string // Only used for the startup log line.
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
	Watch           bool // Follow out-of-band changes to the store.
}

func (c *Config) applyDefaults() {
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
}

// Server serves a core.Service over HTTP.
type Server struct {
	config   Config
	service  *core.Service
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *Metrics
	router   chi.Router

	shutdownOnce sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and lifecycle logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics registers the server metrics on reg and serves reg on /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// New creates a Server. Nothing listens until Run or Serve is called.
func New(config Config, service *core.Service, opts ...Option) *Server {
	config.applyDefaults()
	s := &Server{
		config:  config,
		service: service,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.registry != nil {
		s.metrics = NewMetrics(s.registry)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/UploadForm.html", s.handleUploadForm)

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", s.handleListNotes)
		r.Get("/{name}", s.handleGetNote)
		r.Put("/{name}", s.handleUpdateNote)
		r.Delete("/{name}", s.handleDeleteNote)
	})
	r.Post("/write", s.handleWrite)

	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr is the host:port the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout. Serve closes ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	if s.config.Watch {
		if err := s.watchStore(ctx); err != nil {
			_ = ln.Close()
			return err
		}
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	storeDir := s.config.StoreDir
	if abs, err := filepath.Abs(storeDir); err == nil {
		storeDir = abs
	}
	s.logger.Info("Server running", "url", fmt.Sprintf("http://%s/", ln.Addr()))
	s.logger.Info("Cache directory is set", "path", storeDir)

	select {
	case <-ctx.Done():
		s.logger.Info("Server shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.shutdown(shutdownCtx, srv)
	case err, ok := <-errChan:
		if !ok {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}

func (s *Server) shutdown(ctx context.Context, srv *http.Server) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if err := srv.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			s.logger.Error("Server shutdown error", "error", err)
			return
		}
		s.logger.Info("Server stopped gracefully")
	})
	return shutdownErr
}

// watchStore logs and counts changes made to the store by other processes.
func (s *Server) watchStore(ctx context.Context) error {
	events, err := s.service.Watch(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to watch store: %w", err)
	}

	src := storesource.NewSource(events)
	if err := src.Start(ctx); err != nil {
		return fmt.Errorf("failed to start store watcher: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for e := range src.Events() {
			event, ok := e.(core.Event)
			if !ok {
				continue
			}
			s.logger.Info("Store changed", "event", event.Type, "name", event.Name)
			if s.metrics != nil {
				s.metrics.StoreEvents.WithLabelValues(string(event.Type)).Inc()
			}
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("Store watcher failed", "error", err)
	}))
	return nil
}
