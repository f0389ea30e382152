package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/server"
	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  `Start an HTTP server exposing POST /analyze, GET /taxonomy, GET /health and GET /metrics.`,
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().Int("port", 8080, "Port to listen on")
	cmd.Flags().Bool("rate-limit", true, "Enable per-client rate limiting")
	cmd.Flags().Int64("max-upload-bytes", 16<<20, "Maximum request body size in bytes")
	cmd.Flags().String("taxonomy", "", "Path to a taxonomy JSON file (default: built-in)")
	cmd.Flags().Int("keyword-limit", 5, "Maximum number of missing keywords to report")
	cmd.Flags().Int("preview-length", 1000, "Characters kept in each document preview (0 disables)")
	cmd.Flags().Bool("no-stemming", false, "Disable stemming during normalization")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.logger.Sync() //nolint:errcheck

	analyzer, err := rt.newAnalyzer()
	if err != nil {
		return err
	}

	srv := server.New(serverConfig(rt.cfg, analyzer, rt.logger))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}

// serverConfig maps process configuration onto the HTTP server.
func serverConfig(cfg *config.Config, analyzer *analysis.Analyzer, logger *zap.Logger) server.Config {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return server.Config{
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		Analyzer:       analyzer,
		Logger:         logger,
		Registry:       registry,
		RateLimit:      ratelimit.NewConfig(cfg.RateLimit.Enabled, cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst),
	}
}
