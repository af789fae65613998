package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/jessevdk/go-flags"

	"gadgetinfo/internal/app"
	"gadgetinfo/internal/config"
	"gadgetinfo/internal/logger"
	"gadgetinfo/internal/metrics"
)

type options struct {
	APIKey string `long:"api-key" env:"GEMINI_API_KEY" description:"Gemini API key; empty disables AI enrichment"`
	Output string `long:"output" env:"OUTPUT_DIR" description:"directory for the generated gadgets.json"`
	Feeds  string `long:"feeds" env:"FEEDS_CONFIG_PATH" description:"path to the feed sources YAML"`
	Dbg    bool   `long:"dbg" env:"DEBUG" description:"debug mode"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	if opts.APIKey != "" {
		cfg.GeminiAPIKey = opts.APIKey
	}
	if opts.Output != "" {
		cfg.OutputDir = opts.Output
	}
	if opts.Feeds != "" {
		cfg.FeedsConfigPath = opts.Feeds
	}
	if opts.Dbg {
		cfg.Debug = true
	}

	logger.Init(cfg.Debug)

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	ctx := context.Background()

	a, err := app.Build(ctx, cfg)
	if err != nil {
		logger.Error("pipeline assembly failed", "err", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		logger.Error("pipeline run failed", "err", err)
		os.Exit(1)
	}
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("starting monitoring server", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Error("monitoring server error", "err", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
