package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/evgenii/bitbar-trademan/internal/cache"
	"github.com/evgenii/bitbar-trademan/internal/config"
	"github.com/evgenii/bitbar-trademan/internal/exmo"
	"github.com/evgenii/bitbar-trademan/internal/observe"
	"github.com/evgenii/bitbar-trademan/internal/poller"
	"github.com/evgenii/bitbar-trademan/internal/render"
	"github.com/evgenii/bitbar-trademan/internal/store"
	"github.com/evgenii/bitbar-trademan/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/trademan.yaml", "path to config file")
	once := flag.Bool("once", false, "poll once, print plugin output, exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// Plugin output goes to stdout, so logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	evaluator, closers, err := buildEvaluator(cfg, logger)
	if err != nil {
		logger.Error("failed to build evaluator", "error", err)
		os.Exit(1)
	}
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	if *once {
		runOnce(cfg, evaluator, logger)
		return
	}

	runDaemon(cfg, evaluator, logger)
}

// buildEvaluator wires the feed chain: exmo client, optional redis
// fallback, then the evaluator over the configured watchlist.
func buildEvaluator(cfg *config.Config, logger *slog.Logger) (*observe.Evaluator, []func(), error) {
	var closers []func()

	client := exmo.NewClient(
		cfg.API.BaseURL,
		nil, // public ticker endpoint needs no credentials
		exmo.WithTimeout(cfg.API.Timeout),
		exmo.WithLogger(logger),
	)

	var source observe.TickerSource = client
	if cfg.Cache.Enabled {
		snapCache, err := cache.New(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB, cfg.Cache.TTL)
		if err != nil {
			return nil, closers, fmt.Errorf("connect cache: %w", err)
		}
		closers = append(closers, func() { snapCache.Close() })
		source = cache.NewFallbackSource(client, snapCache, logger)
		logger.Info("snapshot cache enabled", "addr", cfg.Cache.Addr, "ttl", cfg.Cache.TTL)
	}

	watch, err := cfg.Watchlist()
	if err != nil {
		return nil, closers, fmt.Errorf("build watchlist: %w", err)
	}

	step, err := cfg.StepValue()
	if err != nil {
		return nil, closers, fmt.Errorf("parse step: %w", err)
	}

	policy, err := cfg.AggregationPolicy()
	if err != nil {
		return nil, closers, fmt.Errorf("parse aggregation: %w", err)
	}

	return observe.NewEvaluator(source, watch, step, policy, logger), closers, nil
}

// runOnce performs a single evaluation and prints the plugin output.
// BitBar invokes the binary this way on every menu refresh.
func runOnce(cfg *config.Config, evaluator *observe.Evaluator, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	defer cancel()

	batch, err := evaluator.Evaluate(ctx)
	if err != nil {
		logger.Error("evaluation failed", "error", err)
		os.Exit(1)
	}

	fmt.Print(render.Render(batch))
}

// runDaemon polls on an interval, printing plugin output each cycle and
// recording alerts when the store is enabled.
func runDaemon(cfg *config.Config, evaluator *observe.Evaluator, logger *slog.Logger) {
	logger.Info("starting trademan",
		"version", version.Version,
		"commit", version.Commit,
		"interval", cfg.Poll.Interval,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	var alerts *store.AlertStore
	if cfg.Store.Enabled {
		pool, err := store.Connect(ctx, cfg.Store.DB)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		alerts = store.New(pool, logger)
		defer alerts.Close()

		if err := alerts.InitSchema(ctx); err != nil {
			logger.Error("failed to init alert schema", "error", err)
			os.Exit(1)
		}
		logger.Info("alert store connected", "host", cfg.Store.DB.Host, "database", cfg.Store.DB.Name)
	}

	var lastPoll atomic.Int64

	handler := poller.BatchHandlerFunc(func(batch observe.Batch) error {
		lastPoll.Store(time.Now().Unix())
		fmt.Print(render.Render(batch))

		if alerts != nil && !batch.ConnectionLost {
			recordCtx, recordCancel := context.WithTimeout(ctx, 5*time.Second)
			defer recordCancel()
			if err := alerts.RecordBatch(recordCtx, batch); err != nil {
				return err
			}
		}
		return nil
	})

	p := poller.New(
		poller.Config{Interval: cfg.Poll.Interval, Timeout: cfg.API.Timeout},
		evaluator,
		handler,
		logger,
	)

	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Health.Port),
		Handler: createHealthHandler(cfg, alerts, &lastPoll),
	}

	go func() {
		logger.Info("starting health server", "port", cfg.Health.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()

	if err := p.Start(ctx); err != nil {
		logger.Error("failed to start poller", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	healthServer.Shutdown(shutdownCtx)
	p.Stop(shutdownCtx)

	logger.Info("trademan stopped")
}

// createHealthHandler creates the HTTP handler for health checks.
func createHealthHandler(cfg *config.Config, alerts *store.AlertStore, lastPoll *atomic.Int64) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		health := struct {
			Status     string         `json:"status"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]any),
		}

		last := lastPoll.Load()
		if last == 0 {
			health.Status = "starting"
			health.Components["poller"] = "no cycles yet"
		} else {
			age := time.Since(time.Unix(last, 0))
			health.Components["poller"] = map[string]any{
				"last_poll_age": age.String(),
			}
			// Two missed intervals means the loop is stuck.
			if age > 2*cfg.Poll.Interval {
				health.Status = "degraded"
			}
		}

		health.Components["alert_store"] = cfg.Store.Enabled
		health.Components["snapshot_cache"] = cfg.Cache.Enabled

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "degraded" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	return mux
}
