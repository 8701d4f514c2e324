package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/statgraph/pkg/algorithms"
	"github.com/dd0wney/statgraph/pkg/config"
	"github.com/dd0wney/statgraph/pkg/graph"
	"github.com/dd0wney/statgraph/pkg/metrics"
	"github.com/dd0wney/statgraph/pkg/pipeline"
	"github.com/dd0wney/statgraph/pkg/report"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to yaml config file")
		input       = flag.String("input", "", "Path to the statistics CSV file")
		policy      = flag.String("policy", "", "Accumulation policy: self-weight or temporal-decay")
		clusters    = flag.Int("k", 0, "Number of k-means clusters")
		seed        = flag.Int64("seed", 0, "Seed for k-means++ centroid selection")
		decayScale  = flag.Float64("decay-scale", 0, "Scale constant for the temporal-decay policy")
		metricsAddr = flag.String("metrics-addr", "", "Serve prometheus metrics on this address (e.g. :9090)")
		logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error")
	)
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags override the file.
	if *input != "" {
		cfg.InputPath = *input
	}
	if *policy != "" {
		cfg.Policy = *policy
	}
	if *clusters != 0 {
		cfg.Clusters = *clusters
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *decayScale != 0 {
		cfg.DecayScale = *decayScale
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if cfg.InputPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: statgraph --input data.csv [--k 3] [--policy self-weight] [--config statgraph.yaml]")
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))

	accPolicy, err := graph.ParsePolicy(cfg.Policy)
	if err != nil {
		logger.Error("invalid policy", "error", err)
		os.Exit(1)
	}

	registry := metrics.DefaultRegistry()
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, registry, logger)
	}

	result, err := pipeline.RunFile(cfg.InputPath, pipeline.Options{
		Policy:        accPolicy,
		DecayScale:    cfg.DecayScale,
		Clusters:      cfg.Clusters,
		MaxIterations: cfg.MaxIterations,
		Seed:          cfg.Seed,
		Logger:        logger,
		Metrics:       registry,
	})
	if err != nil {
		if errors.Is(err, algorithms.ErrInvalidClusterCount) {
			logger.Error("cluster count out of range", "k", cfg.Clusters, "error", err)
			os.Exit(2)
		}
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	fmt.Println(report.Render(result))
}

func parseLevel(level string) slog.Level {
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

func serveMetrics(addr string, registry *metrics.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", "error", err)
	}
}
