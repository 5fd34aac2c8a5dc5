package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8090" {
		t.Errorf("Expected Port to be 8090, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Fundamentus.MaxRetries != 3 {
		t.Errorf("Expected MaxRetries to be 3, got %d", cfg.Fundamentus.MaxRetries)
	}

	if cfg.Cache.TTL != time.Hour {
		t.Errorf("Expected cache TTL to be 1h, got %v", cfg.Cache.TTL)
	}

	if cfg.Score.MinDividendYield != 0.08 {
		t.Errorf("Expected MinDividendYield to be 0.08, got %f", cfg.Score.MinDividendYield)
	}

	if cfg.Validation.MinRows != 10 {
		t.Errorf("Expected MinRows to be 10, got %d", cfg.Validation.MinRows)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("FETCH_MAX_RETRIES", "5")
	os.Setenv("CACHE_TTL", "30m")
	os.Setenv("SCORE_MAX_PVP", "1.5")
	os.Setenv("LOG_LEVEL", "warn")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("FETCH_MAX_RETRIES")
		os.Unsetenv("CACHE_TTL")
		os.Unsetenv("SCORE_MAX_PVP")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Fundamentus.MaxRetries != 5 {
		t.Errorf("Expected MaxRetries to be 5, got %d", cfg.Fundamentus.MaxRetries)
	}

	if cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("Expected cache TTL to be 30m, got %v", cfg.Cache.TTL)
	}

	if cfg.Score.MaxPVP != 1.5 {
		t.Errorf("Expected MaxPVP to be 1.5, got %f", cfg.Score.MaxPVP)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("Expected LogLevel to be warn, got %s", cfg.LogLevel)
	}
}

func TestValidateBadEnv(t *testing.T) {
	os.Setenv("ENV", "testing")
	defer os.Unsetenv("ENV")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for unknown ENV, got nil")
	}
}

func TestValidateBadMissingFraction(t *testing.T) {
	os.Setenv("VALIDATION_MAX_MISSING_FRACTION", "1.5")
	defer os.Unsetenv("VALIDATION_MAX_MISSING_FRACTION")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for out-of-range missing fraction, got nil")
	}
}

func TestGetEnvAsFloatFallback(t *testing.T) {
	os.Setenv("SOME_FLOAT", "not-a-number")
	defer os.Unsetenv("SOME_FLOAT")

	if got := getEnvAsFloat("SOME_FLOAT", 0.25); got != 0.25 {
		t.Errorf("Expected fallback 0.25, got %f", got)
	}
}
