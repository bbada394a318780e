package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	GitHubToken     string
	GitHubAPIURL    string
	GitHubUserAgent string
	RequestTimeout  time.Duration

	DBDriver string
	DBURL    string
	DBKey    string

	AMQPURL    string
	ServerPort string
	AdminToken string

	// * AdminAllowOpen serves the admin routes without a token when none is set
	AdminAllowOpen bool

	ProbeInterval time.Duration

	LogFormat       string
	Debug           bool
	OTELEnabled     bool
	OTELSampleRatio float64
}

// * LoadConfiguration reads the .env file (if any) and the process environment.
// * A missing GITHUB_TOKEN is not an error: the GitHub panel reports it as unconfigured.
func LoadConfiguration() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		GitHubToken:     os.Getenv("GITHUB_TOKEN"),
		GitHubAPIURL:    envOr("GITHUB_API_URL", "https://api.github.com/"),
		GitHubUserAgent: envOr("GITHUB_USER_AGENT", "Portfolio-App"),
		DBDriver:        strings.ToLower(envOr("DATABASE_DRIVER", DriverPostgres)),
		DBURL:           os.Getenv("DATABASE_URL"),
		DBKey:           firstNonEmpty(os.Getenv("DATABASE_SERVICE_KEY"), os.Getenv("DATABASE_ANON_KEY")),
		AMQPURL:         os.Getenv("AMQP_URL"),
		ServerPort:      envOr("SERVER_PORT", ":8081"),
		AdminToken:      os.Getenv("ADMIN_TOKEN"),
		AdminAllowOpen:  os.Getenv("ADMIN_ALLOW_OPEN") == "true",
		LogFormat:       strings.ToLower(envOr("LOG_FORMAT", "text")),
		Debug:           os.Getenv("DEBUG") == "true",
		OTELEnabled:     os.Getenv("OTEL_ENABLED") == "true",
	}

	var err error
	if cfg.RequestTimeout, err = parseDuration("GITHUB_REQUEST_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout <= 0 {
		return nil, errors.New("GITHUB_REQUEST_TIMEOUT must be positive")
	}

	if cfg.ProbeInterval, err = parseDuration("CREDENTIAL_PROBE_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	if cfg.OTELSampleRatio, err = strconv.ParseFloat(envOr("OTEL_TRACE_SAMPLE_RATIO", "0.1"), 64); err != nil {
		return nil, fmt.Errorf("OTEL_TRACE_SAMPLE_RATIO must be a number: %w", err)
	}

	if cfg.DBURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverSQLite {
		return nil, fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, cfg.DBDriver)
	}

	if !strings.HasSuffix(cfg.GitHubAPIURL, "/") {
		cfg.GitHubAPIURL += "/"
	}

	if !cfg.GitHubConfigured() {
		logger.Warn("GITHUB_TOKEN is not set; the GitHub panel will report it as not configured")
	}

	logger.Info("✅ env content loaded successfully 🎉")
	return cfg, nil
}

// * GitHubConfigured reports whether a non-blank credential is present
func (c *Config) GitHubConfigured() bool {
	return strings.TrimSpace(c.GitHubToken) != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := envOr(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like %q: %w", key, fallback, err)
	}
	return d, nil
}
