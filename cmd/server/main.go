package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"TrendBot/internal/cache"
	"TrendBot/internal/config"
	"TrendBot/internal/market"
	"TrendBot/internal/predictor"
	"TrendBot/internal/scheduler"
	"TrendBot/internal/server"
	"TrendBot/internal/store"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	setupLogging(cfg)
	log.Info().Str("addr", cfg.Server.Addr).Msg("TrendBot starting")

	// Request layer
	client := market.NewClient(market.Config{
		BaseURL:      cfg.Market.BaseURL,
		FearGreedURL: cfg.Market.FearGreedURL,
		Timeout:      cfg.Market.Timeout.Std(),
		MaxRetries:   cfg.Market.MaxRetries,
		BaseDelay:    cfg.Market.RetryDelay.Std(),
	}, cache.New(cfg.Cache.Capacity, cfg.Cache.TTL.Std()))

	// Prediction engine with its calc worker
	worker := predictor.NewCalcWorker()
	worker.Start()
	defer worker.Stop()
	engine := predictor.NewEngine(worker)

	// Store
	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer st.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background tasks
	sched := scheduler.New(ctx, client, st)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.AlertCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()
	go sched.RunRefreshNow()

	// HTTP API
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(client, st, engine).Routes(),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()
	log.Info().Msg("TrendBot is running, press Ctrl+C to stop")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	cancel()
	log.Info().Msg("TrendBot stopped")
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
