package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Monitor sweep settings.
	ScanInterval  time.Duration
	AllowFallback bool
	AOIFile       string

	// CDSE catalog configuration.
	CDSEEnabled   bool
	CDSEBaseURL   string
	CDSETimeout   time.Duration
	CDSECacheSize int

	// Kafka insight sink configuration.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	scanInterval, err := parseDuration("SCAN_INTERVAL", "6h")
	if err != nil {
		return nil, err
	}
	cdseTimeout, err := parseDuration("CDSE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cdseCacheSize, err := parsePositiveInt("CDSE_CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ScanInterval:  scanInterval,
		AllowFallback: envBool("ALLOW_FALLBACK", true),
		AOIFile:       envOrDefault("AOI_FILE", "data/aois.json"),

		CDSEEnabled:   envBool("CDSE_ENABLED", true),
		CDSEBaseURL:   envOrDefault("CDSE_BASE_URL", ""),
		CDSETimeout:   cdseTimeout,
		CDSECacheSize: cdseCacheSize,

		KafkaEnabled:   envBool("KAFKA_ENABLED", false),
		KafkaBrokers:   splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "crop-health-insights"),
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is empty")
		}
	}
	if !cfg.CDSEEnabled && !cfg.AllowFallback {
		return nil, errors.New("CDSE_ENABLED is false and ALLOW_FALLBACK is false: no scene source available")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return def
	}
}

func parseDuration(key, def string) (time.Duration, error) {
	raw := envOrDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
