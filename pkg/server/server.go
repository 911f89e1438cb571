package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/routerstore/pkg/archive"
	"github.com/vango-dev/routerstore/pkg/devtools"
	"github.com/vango-dev/routerstore/pkg/instrument"
	"github.com/vango-dev/routerstore/pkg/routerstore"
)

// DefaultMaxBodyBytes limits the size of posted snapshots.
const DefaultMaxBodyBytes = 1 << 20

// Options configures a Server.
type Options struct {
	// Serializer is used when a request does not name one.
	Serializer routerstore.Kind

	// Hub receives every serialized state. Required.
	Hub *devtools.Hub

	// Archive persists states on request. Nil disables archiving.
	Archive *archive.Archive

	// Metrics records serializer metrics. Nil disables them.
	Metrics *instrument.Metrics

	// Gatherer backs /metrics (default: prometheus.DefaultGatherer).
	Gatherer prometheus.Gatherer

	// TracerProvider is used for serializer spans (default: global).
	TracerProvider trace.TracerProvider

	// MaxBodyBytes limits request bodies (default: DefaultMaxBodyBytes).
	MaxBodyBytes int64

	// ShutdownTimeout bounds graceful shutdown (default: 10s).
	ShutdownTimeout time.Duration

	Logger *slog.Logger
}

// Server serves the routerstore HTTP API.
type Server struct {
	router      chi.Router
	kind        routerstore.Kind
	serializers map[routerstore.Kind]*instrument.Serializer[any]
	hub         *devtools.Hub
	archive     *archive.Archive
	maxBody     int64
	shutdown    time.Duration
	logger      *slog.Logger
}

// New creates a Server.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Hub == nil {
		opts.Hub = devtools.NewHub(0, opts.Logger)
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if opts.Serializer == "" {
		opts.Serializer = routerstore.KindMinimal
	}
	if _, err := routerstore.ForKind(opts.Serializer); err != nil {
		return nil, err
	}

	instrumentOpts := []instrument.Option{
		instrument.WithMetrics(opts.Metrics),
		instrument.WithLogger(opts.Logger),
	}
	if opts.TracerProvider != nil {
		instrumentOpts = append(instrumentOpts, instrument.WithTracerProvider(opts.TracerProvider))
	}

	s := &Server{
		kind:        opts.Serializer,
		serializers: make(map[routerstore.Kind]*instrument.Serializer[any]),
		hub:         opts.Hub,
		archive:     opts.Archive,
		maxBody:     opts.MaxBodyBytes,
		shutdown:    opts.ShutdownTimeout,
		logger:      opts.Logger,
	}
	for _, kind := range []routerstore.Kind{routerstore.KindFull, routerstore.KindMinimal} {
		ser, err := instrument.ForKind(kind, instrumentOpts...)
		if err != nil {
			return nil, err
		}
		s.serializers[kind] = ser
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/serialize", s.handleSerialize)
		r.Get("/devtools", s.hub.HandleWebSocket)
		r.Get("/devtools/history", s.handleHistory)
		r.Get("/archive", s.handleArchiveList)
		r.Get("/archive/{id}", s.handleArchiveGet)
	})
	r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	s.router = r
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("routerstore server listening", "addr", addr, "serializer", s.kind)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down routerstore server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	s.hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// logRequests logs each request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
