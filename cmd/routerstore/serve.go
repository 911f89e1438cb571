package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/routerstore/internal/config"
	"github.com/vango-dev/routerstore/internal/errors"
	"github.com/vango-dev/routerstore/pkg/archive"
	"github.com/vango-dev/routerstore/pkg/devtools"
	"github.com/vango-dev/routerstore/pkg/instrument"
	"github.com/vango-dev/routerstore/pkg/server"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the routerstore HTTP server",
		Long: `Run the HTTP server. Routers post snapshots to /v1/serialize; devtools
connect to /v1/devtools to follow serialized states.

Archiving is enabled when archive.bucket is configured. Serializer spans are
exported to Zipkin when tracing.zipkin (or ROUTERSTORE_TRACING_ZIPKIN) is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(opts.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			tp, shutdownTracing, err := newTracerProvider(cfg)
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdownTracing(ctx); err != nil {
					logger.Warn("tracing shutdown failed", "error", err)
				}
			}()

			srv, err := newServer(cfg, logger, tp, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx, cfg.Address())
		},
	}

	cmd.Flags().StringVar(&host, "host", config.DefaultHost, "Host to bind to")
	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "Port to listen on")

	return cmd
}

// newTracerProvider returns the Zipkin-backed provider when tracing is
// configured. A nil provider leaves spans to the global provider.
func newTracerProvider(cfg *config.Config) (trace.TracerProvider, func(context.Context) error, error) {
	if !cfg.TracingEnabled() {
		return nil, func(context.Context) error { return nil }, nil
	}
	tp, err := instrument.NewZipkinProvider(cfg.Tracing.Zipkin, cfg.Tracing.SampleRatio)
	if err != nil {
		return nil, nil, errors.New("R042").
			WithDetail("tracing.zipkin: " + err.Error()).
			Wrap(err)
	}
	return tp, tp.Shutdown, nil
}

// newServer wires the HTTP server from configuration.
func newServer(cfg *config.Config, logger *slog.Logger, tp trace.TracerProvider, reg prometheus.Registerer, gatherer prometheus.Gatherer) (*server.Server, error) {
	opts := server.Options{
		Serializer: cfg.SerializerKind(),
		Hub:        devtools.NewHub(cfg.Devtools.History, logger),
		Metrics: instrument.NewMetrics(
			instrument.WithNamespace(cfg.Metrics.Namespace),
			instrument.WithRegistry(reg),
		),
		Gatherer:       gatherer,
		TracerProvider: tp,
		Logger:         logger,
	}
	if cfg.ArchiveEnabled() {
		opts.Archive = archive.New(archive.NewClient(cfg.Archive), cfg.Archive.Bucket, cfg.Archive.Prefix, logger)
		logger.Info("archive enabled", "bucket", cfg.Archive.Bucket, "prefix", cfg.Archive.Prefix)
	}
	return server.New(opts)
}

// newLogger builds the logger described by the log section.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler).With("service", "routerstore"), nil
}
