// Command pricetool runs the product price aggregation service: an HTTP API
// that searches shopping listings for a query, extracts structured prices
// with a generative model, and returns ranked, validated products.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharad-mishra/universal-price-tool/internal/cache"
	"github.com/sharad-mishra/universal-price-tool/internal/config"
	"github.com/sharad-mishra/universal-price-tool/internal/extract"
	"github.com/sharad-mishra/universal-price-tool/internal/llm"
	"github.com/sharad-mishra/universal-price-tool/internal/metrics"
	"github.com/sharad-mishra/universal-price-tool/internal/pricing"
	"github.com/sharad-mishra/universal-price-tool/internal/search"
	"github.com/sharad-mishra/universal-price-tool/internal/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	port := flag.Int("port", 0, "override the configured HTTP port")
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if !cfg.IsProduction() {
		log = log.Level(zerolog.DebugLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cacheBackend, err := cache.NewFromConfig(ctx, cfg.Cache.Type, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Str("type", cfg.Cache.Type).Msg("failed to init cache")
	}

	gemini, err := llm.NewGemini(ctx, cfg.AI.APIKey, cfg.AI.Model, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init generative model client")
	}
	defer gemini.Close()

	m := metrics.New()

	searcher := search.NewClient(search.Options{
		APIKey:     cfg.Search.APIKey,
		APIBase:    cfg.Search.APIBase,
		MaxResults: cfg.Search.MaxResults,
		Timeout:    time.Duration(cfg.Search.TimeoutSeconds) * time.Second,
		Metrics:    m,
		Log:        log,
	})

	extractor := extract.NewEngine(extract.Options{
		Generator: gemini,
		Cache:     cacheBackend,
		TTL:       time.Duration(cfg.Cache.ExtractTTLSeconds) * time.Second,
		Metrics:   m,
		Log:       log,
	})

	svc := pricing.NewService(pricing.Options{
		Searcher:  searcher,
		Extractor: extractor,
		Cache:     cacheBackend,
		TTL:       time.Duration(cfg.Cache.ResultTTLSeconds) * time.Second,
		Metrics:   m,
		Log:       log,
	})

	srv := server.New(server.Options{
		Pricing:    svc,
		Cache:      cacheBackend,
		Metrics:    m,
		Log:        log,
		Production: cfg.IsProduction(),
	})

	if cfg.Metrics.Port != nil && *cfg.Metrics.Port > 0 {
		go metrics.ListenAndServe(ctx, *cfg.Metrics.Port, log)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info().Msg("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
		cancel()
	}()

	log.Info().Str("addr", addr).Str("environment", cfg.Environment).Msg("pricetool listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}
