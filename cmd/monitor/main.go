// Command monitor periodically re-analyzes the configured farm AOIs and
// publishes each crop health insight to the Kafka sink topic. It exposes
// /healthz, /readyz, and /metrics for operations.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/adapter/cdse"
	httpadapter "github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/adapter/http"
	kafkaadapter "github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/adapter/kafka"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/config"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/domain"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/engine"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/observability"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	aois, err := loadAOIs(cfg.AOIFile)
	if err != nil {
		logger.Error("failed to load AOI file", "path", cfg.AOIFile, "error", err)
		os.Exit(1)
	}

	// Live catalog search is feature-flagged; with it disabled the fetcher
	// serves deterministic sample scenes only.
	var catalog cdse.Catalog
	if cfg.CDSEEnabled {
		catalog = cdse.NewClient(cfg.CDSEBaseURL, cfg.CDSETimeout, metrics, logger)
		logger.Info("cdse catalog enabled", "timeout", cfg.CDSETimeout, "cache_size", cfg.CDSECacheSize)
	} else {
		logger.Info("cdse catalog disabled, serving fallback samples")
	}
	fetcher := cdse.NewCachedFetcher(cdse.NewFetcher(catalog, logger), cfg.CDSECacheSize, metrics)

	var publisher engine.InsightPublisher
	var kafkaPub *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPub = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPub
		logger.Info("kafka insight sink enabled", "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka insight sink disabled")
	}

	analyzer := engine.NewAnalyzer(fetcher, logger, metrics)
	monitor := engine.NewMonitor(analyzer, publisher, aois, cfg.ScanInterval, cfg.AllowFallback, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, monitor, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := monitor.Run(ctx); err != nil {
			logger.Error("monitor error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// loadAOIs reads the monitored farm boundaries from a JSON file.
func loadAOIs(path string) ([]domain.AreaOfInterest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aoi file: %w", err)
	}
	var aois []domain.AreaOfInterest
	if err := json.Unmarshal(data, &aois); err != nil {
		return nil, fmt.Errorf("parse aoi file: %w", err)
	}
	if len(aois) == 0 {
		return nil, errors.New("aoi file contains no areas of interest")
	}
	return aois, nil
}
