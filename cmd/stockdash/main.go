package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"StockDash/internal/catalog"
	"StockDash/internal/collector"
	"StockDash/internal/config"
	"StockDash/internal/insights"
	"StockDash/internal/recorder"
	"StockDash/internal/scheduler"
	"StockDash/internal/series"
	"StockDash/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockDash starting...")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetchers
	mock := collector.NewMockFetcher(nil)
	var primary collector.Fetcher
	switch cfg.ResolvedProvider() {
	case config.ProviderRapidAPI:
		primary = collector.NewRapidAPIFetcher(cfg.DataSource.BaseURL, cfg.DataSource.Host, cfg.DataSource.APIKey, cfg.Proxy)
	case config.ProviderYahoo:
		primary = collector.NewYahooFetcher(cfg.Proxy)
	default:
		primary = mock
	}
	log.Printf("[INFO] data source: %s (fallback: %s)", primary.Name(), mock.Name())
	col := collector.NewCollector(primary, mock)

	// Init generator
	var genOpts []series.Option
	if cfg.Generator.Seed != 0 {
		genOpts = append(genOpts, series.WithRand(series.NewSeededRand(cfg.Generator.Seed)))
		log.Printf("[INFO] chart generator seeded with %d", cfg.Generator.Seed)
	}
	gen := series.NewGenerator(cfg.Generator.Params, genOpts...)

	// Init research panels, sharing the seed so demo runs are reproducible
	var insOpts []insights.Option
	if cfg.Generator.Seed != 0 {
		insOpts = append(insOpts, insights.WithRand(series.NewSeededRand(cfg.Generator.Seed+1)))
	}
	ins := insights.NewProvider(insOpts...)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, rec, cfg.Schedule.Watchlist)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	// Runs before rec.Close, so an in-flight refresh finishes recording first.
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing watchlist now")
		sched.RunInBackground()
	}

	// Init HTTP server
	handlers := &server.Handlers{
		Quotes:   col,
		Charts:   gen,
		Insights: ins,
		Catalog:  catalog.Default(),
		Recorder: rec,
	}
	srv := server.New(cfg.Server.Addr, handlers.Routes(), cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	log.Println("[INFO] StockDash is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal or server failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case err := <-errCh:
		if err != nil {
			log.Printf("[ERROR] HTTP server: %v", err)
		}
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] HTTP shutdown: %v", err)
	}
	log.Println("[INFO] StockDash stopped")
}
