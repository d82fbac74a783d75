package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATASTORE_TYPE", "STORES_PATH", "PROMOTIONS_PATH", "PROVINCES_PATH", "RATE_LIMIT", "GEOCODER_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("expected default port 3000, got %s", cfg.Port)
	}
	if cfg.DatastoreType != "csv" {
		t.Errorf("expected default datastore csv, got %s", cfg.DatastoreType)
	}
	if cfg.StoresPath != "./data/stores.csv" {
		t.Errorf("unexpected default stores path %s", cfg.StoresPath)
	}
	if cfg.PromotionsPath != "./data/promotions.csv" {
		t.Errorf("unexpected default promotions path %s", cfg.PromotionsPath)
	}
	if cfg.ProvincesPath != "" {
		t.Errorf("expected embedded provinces by default, got %s", cfg.ProvincesPath)
	}
	if cfg.GeocoderTimeout != 10*time.Second {
		t.Errorf("expected 10s geocoder timeout, got %v", cfg.GeocoderTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATASTORE_TYPE", "redis")
	t.Setenv("RATE_LIMIT", "20")
	t.Setenv("RATE_LIMIT_WINDOW", "4")
	t.Setenv("GEOCODER_ENABLED", "false")
	t.Setenv("GEOCODER_TIMEOUT", "1500ms")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.DatastoreType != "redis" {
		t.Errorf("expected redis, got %s", cfg.DatastoreType)
	}
	if rps, err := cfg.RequestsPerSecond(); err != nil || rps != 5 {
		t.Errorf("expected 5 req/s, got %f (err %v)", rps, err)
	}
	if cfg.GeocoderEnabled {
		t.Error("expected geocoder disabled")
	}
	if cfg.GeocoderTimeout != 1500*time.Millisecond {
		t.Errorf("expected 1.5s, got %v", cfg.GeocoderTimeout)
	}
}

func TestGetEnvAsInt_Invalid(t *testing.T) {
	t.Setenv("TEST_INT", "abc")

	if got := getEnvAsInt("TEST_INT", 7); got != 7 {
		t.Errorf("expected default 7, got %d", got)
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"bare seconds", "3", 3 * time.Second},
		{"go duration", "250ms", 250 * time.Millisecond},
		{"invalid", "soon", time.Minute},
		{"empty", "", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := getEnvAsDuration("TEST_DURATION", time.Minute); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRequestsPerSecond_ZeroWindow(t *testing.T) {
	cfg := &Config{RateLimit: 3, RateLimitWindow: 0}

	if rps, err := cfg.RequestsPerSecond(); err != nil || rps != 3 {
		t.Errorf("expected zero window treated as 1s, got %f (err %v)", rps, err)
	}
}

func TestRequestsPerSecond_NonPositiveLimit(t *testing.T) {
	for _, limit := range []int{0, -5} {
		cfg := &Config{RateLimit: limit, RateLimitWindow: 1}

		if _, err := cfg.RequestsPerSecond(); err == nil {
			t.Errorf("expected error for RATE_LIMIT=%d", limit)
		}
	}
}

func TestRequestsPerSecond_Fractional(t *testing.T) {
	cfg := &Config{RateLimit: 3, RateLimitWindow: 10}

	if rps, err := cfg.RequestsPerSecond(); err != nil || rps != 0.3 {
		t.Errorf("expected 0.3 req/s, got %f (err %v)", rps, err)
	}
}
