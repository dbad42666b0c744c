// Package config loads the agent's configuration from the environment.
//
// Values follow the ALLY_ prefix convention. String values may reference
// other environment variables with ${VAR} syntax; references are expanded
// strictly at load time (see the secret package), so a deployment with a
// dangling reference fails fast.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/keepnetlabs/agentic-ally-agent-sub012/observe"
	"github.com/keepnetlabs/agentic-ally-agent-sub012/resilience"
	"github.com/keepnetlabs/agentic-ally-agent-sub012/secret"
	"github.com/keepnetlabs/agentic-ally-agent-sub012/validation"
)

// Config is the process-wide configuration.
type Config struct {
	// Platform endpoint and credential.
	BaseURL string `env:"ALLY_PLATFORM_BASE_URL"`
	Token   string `env:"ALLY_PLATFORM_TOKEN"`

	// Retry policy.
	MaxAttempts  int           `env:"ALLY_RETRY_MAX_ATTEMPTS"  envDefault:"3"`
	InitialDelay time.Duration `env:"ALLY_RETRY_INITIAL_DELAY" envDefault:"200ms"`
	MaxDelay     time.Duration `env:"ALLY_RETRY_MAX_DELAY"     envDefault:"30s"`

	// Per-attempt call budget.
	CallTimeout time.Duration `env:"ALLY_CALL_TIMEOUT" envDefault:"10s"`

	// Validation cache bounds.
	CacheCapacity int           `env:"ALLY_VALIDATION_CACHE_CAPACITY" envDefault:"512"`
	CacheTTL      time.Duration `env:"ALLY_VALIDATION_CACHE_TTL"      envDefault:"5m"`
	CacheMaxTTL   time.Duration `env:"ALLY_VALIDATION_CACHE_MAX_TTL"  envDefault:"1h"`

	// Telemetry.
	LogLevel        string  `env:"ALLY_LOG_LEVEL"         envDefault:"info"`
	TracingExporter string  `env:"ALLY_TRACING_EXPORTER"  envDefault:"none"`
	MetricsExporter string  `env:"ALLY_METRICS_EXPORTER"  envDefault:"none"`
	TraceSamplePct  float64 `env:"ALLY_TRACE_SAMPLE_PCT"  envDefault:"1.0"`
}

// Load parses the environment into a Config and expands secret references
// in string fields.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}

	var err error
	if cfg.BaseURL, err = secret.ExpandEnvStrict(cfg.BaseURL); err != nil {
		return Config{}, fmt.Errorf("config: base URL: %w", err)
	}
	if cfg.Token, err = secret.ExpandEnvStrict(cfg.Token); err != nil {
		return Config{}, fmt.Errorf("config: token: %w", err)
	}

	return cfg, nil
}

// RetryConfig returns the retry policy portion of the config.
func (c Config) RetryConfig() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts:  c.MaxAttempts,
		InitialDelay: c.InitialDelay,
		MaxDelay:     c.MaxDelay,
		Jitter:       true,
	}
}

// CachePolicy returns the validation-cache bounds.
func (c Config) CachePolicy() validation.Policy {
	return validation.Policy{
		Capacity:   c.CacheCapacity,
		DefaultTTL: c.CacheTTL,
		MaxTTL:     c.CacheMaxTTL,
	}
}

// ObserveConfig returns the telemetry configuration for the given service.
func (c Config) ObserveConfig(serviceName, version string) observe.Config {
	return observe.Config{
		ServiceName: serviceName,
		Version:     version,
		Tracing: observe.TracingConfig{
			Enabled:   c.TracingExporter != "none",
			Exporter:  c.TracingExporter,
			SamplePct: c.TraceSamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.MetricsExporter != "none",
			Exporter: c.MetricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   c.LogLevel,
		},
	}
}
