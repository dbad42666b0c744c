package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.InitialDelay != 200*time.Millisecond {
		t.Errorf("InitialDelay = %v, want 200ms", cfg.InitialDelay)
	}
	if cfg.CallTimeout != 10*time.Second {
		t.Errorf("CallTimeout = %v, want 10s", cfg.CallTimeout)
	}
	if cfg.CacheCapacity != 512 {
		t.Errorf("CacheCapacity = %d, want 512", cfg.CacheCapacity)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ALLY_PLATFORM_BASE_URL", "https://api.example.com")
	t.Setenv("ALLY_RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("ALLY_VALIDATION_CACHE_TTL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.MaxAttempts)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
}

func TestLoad_SecretExpansion(t *testing.T) {
	t.Setenv("VAULT_TOKEN", "tok-9")
	t.Setenv("ALLY_PLATFORM_TOKEN", "${VAULT_TOKEN}")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Token != "tok-9" {
		t.Errorf("Token = %q, want tok-9", cfg.Token)
	}
}

func TestLoad_MissingSecretFails(t *testing.T) {
	t.Setenv("ALLY_PLATFORM_TOKEN", "${ALLY_DEFINITELY_MISSING_VAR}")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() error = nil, want missing-variable failure")
	}
	if !strings.Contains(err.Error(), "ALLY_DEFINITELY_MISSING_VAR") {
		t.Errorf("error %v does not name the missing variable", err)
	}
}

func TestConfig_RetryConfig(t *testing.T) {
	t.Setenv("ALLY_RETRY_MAX_ATTEMPTS", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	rc := cfg.RetryConfig()
	if rc.MaxAttempts != 7 {
		t.Errorf("MaxAttempts = %d, want 7", rc.MaxAttempts)
	}
	if !rc.Jitter {
		t.Error("Jitter disabled")
	}
}

func TestConfig_ObserveConfig(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	oc := cfg.ObserveConfig("agent", "1.0.0")
	if oc.ServiceName != "agent" {
		t.Errorf("ServiceName = %q", oc.ServiceName)
	}
	if oc.Tracing.Enabled {
		t.Error("tracing enabled with exporter none")
	}
	if !oc.Logging.Enabled {
		t.Error("logging disabled")
	}
	if err := oc.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
