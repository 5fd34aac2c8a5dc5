package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Upstream source
	Fundamentus FundamentusConfig

	// Table cache
	Cache CacheConfig

	// Pipeline thresholds
	Score      ScoreConfig
	Similarity SimilarityConfig
	Validation ValidationConfig

	// Scheduler
	Scheduler SchedulerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// FundamentusConfig holds connection settings for the Fundamentus site.
type FundamentusConfig struct {
	URL        string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	RatePerSec float64 // requests per second against the upstream
}

// CacheConfig holds table cache settings.
type CacheConfig struct {
	TTL   time.Duration
	Scope string // cache key for the current dataset
}

// ScoreConfig holds the five quality predicate thresholds.
// Yields and vacancy are fractions (0.08 = 8%), amounts are BRL.
type ScoreConfig struct {
	MinDividendYield float64
	MaxPVP           float64
	MinLiquidity     float64
	MaxVacancy       float64
	MinMarketValue   float64
}

// SimilarityConfig holds defaults for similarity queries.
type SimilarityConfig struct {
	ToleranceFraction    float64 // auto tolerance as fraction of the target metric
	LiquidityFraction    float64 // auto min liquidity as fraction of target liquidity
	FallbackDYTolerance  float64 // used when the target DY is missing
	FallbackPVPTolerance float64
	FallbackMinLiquidity float64
}

// ValidationConfig holds data quality thresholds for fetched tables.
type ValidationConfig struct {
	MinRows               int
	MaxMissingRowFraction float64
}

// SchedulerConfig holds the periodic refresh schedule.
type SchedulerConfig struct {
	RefreshSpec string // cron expression (with seconds)
	Enabled     bool
}

// Fundamentus serves a degraded page to the default Go user agent.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Fundamentus: FundamentusConfig{
			URL:        getEnv("FUNDAMENTUS_URL", "https://www.fundamentus.com.br/fii_resultado.php"),
			UserAgent:  getEnv("FUNDAMENTUS_USER_AGENT", defaultUserAgent),
			Timeout:    getEnvAsDuration("FETCH_TIMEOUT", "30s"),
			MaxRetries: getEnvAsInt("FETCH_MAX_RETRIES", 3),
			RetryDelay: getEnvAsDuration("FETCH_RETRY_DELAY", "1s"),
			RatePerSec: getEnvAsFloat("FETCH_RATE_PER_SEC", 1.0),
		},

		Cache: CacheConfig{
			TTL:   getEnvAsDuration("CACHE_TTL", "1h"),
			Scope: getEnv("CACHE_SCOPE", "fii_resultado"),
		},

		Score: ScoreConfig{
			MinDividendYield: getEnvAsFloat("SCORE_MIN_DY", 0.08),
			MaxPVP:           getEnvAsFloat("SCORE_MAX_PVP", 1.20),
			MinLiquidity:     getEnvAsFloat("SCORE_MIN_LIQUIDITY", 20_000),
			MaxVacancy:       getEnvAsFloat("SCORE_MAX_VACANCY", 0.15),
			MinMarketValue:   getEnvAsFloat("SCORE_MIN_MARKET_VALUE", 100_000_000),
		},

		Similarity: SimilarityConfig{
			ToleranceFraction:    getEnvAsFloat("SIMILARITY_TOLERANCE_FRACTION", 0.20),
			LiquidityFraction:    getEnvAsFloat("SIMILARITY_LIQUIDITY_FRACTION", 0.25),
			FallbackDYTolerance:  getEnvAsFloat("SIMILARITY_FALLBACK_DY_TOL", 0.04),
			FallbackPVPTolerance: getEnvAsFloat("SIMILARITY_FALLBACK_PVP_TOL", 0.20),
			FallbackMinLiquidity: getEnvAsFloat("SIMILARITY_FALLBACK_MIN_LIQ", 30_000),
		},

		Validation: ValidationConfig{
			MinRows:               getEnvAsInt("VALIDATION_MIN_ROWS", 10),
			MaxMissingRowFraction: getEnvAsFloat("VALIDATION_MAX_MISSING_FRACTION", 0.5),
		},

		Scheduler: SchedulerConfig{
			RefreshSpec: getEnv("SCHEDULER_REFRESH_SPEC", "0 0 * * * *"), // hourly
			Enabled:     getEnvAsBool("SCHEDULER_ENABLED", true),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are sane
func (c *Config) validate() error {
	if c.Fundamentus.URL == "" {
		return fmt.Errorf("FUNDAMENTUS_URL is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Fundamentus.MaxRetries < 1 {
		return fmt.Errorf("FETCH_MAX_RETRIES must be at least 1")
	}

	if c.Validation.MaxMissingRowFraction < 0 || c.Validation.MaxMissingRowFraction > 1 {
		return fmt.Errorf("VALIDATION_MAX_MISSING_FRACTION must be within [0,1]")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
