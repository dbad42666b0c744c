package health

import (
	"context"
	"errors"
	"time"

	"github.com/keepnetlabs/agentic-ally-agent-sub012/transport"
)

// DefaultProbeTimeout bounds a single platform probe.
const DefaultProbeTimeout = 5 * time.Second

// PlatformCheck probes the training platform through the same router the
// handlers use, so a passing probe exercises the real delivery path.
type PlatformCheck struct {
	router  *transport.Router
	baseURL string
	token   string
	timeout time.Duration
}

// PlatformCheckConfig configures a platform probe.
type PlatformCheckConfig struct {
	// Router delivers the probe. Required.
	Router *transport.Router

	// BaseURL is the platform endpoint to probe. Required.
	BaseURL string

	// Token authenticates the probe. Optional.
	Token string

	// Timeout bounds the probe. Defaults to DefaultProbeTimeout.
	Timeout time.Duration
}

// NewPlatformCheck creates a platform probe.
func NewPlatformCheck(config PlatformCheckConfig) (*PlatformCheck, error) {
	if config.Router == nil {
		return nil, errors.New("health: router is required")
	}
	if config.BaseURL == "" {
		return nil, errors.New("health: base URL is required")
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &PlatformCheck{
		router:  config.Router,
		baseURL: config.BaseURL,
		token:   config.Token,
		timeout: timeout,
	}, nil
}

// Name identifies the dependency being probed.
func (p *PlatformCheck) Name() string { return "platform" }

// Check posts to the platform's health endpoint. A reachable platform that
// answers non-2xx is degraded rather than unhealthy; a transport failure is
// unhealthy.
func (p *PlatformCheck) Check(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	_, err := p.router.Call(ctx, transport.Target{
		FallbackURL: p.baseURL,
		Endpoint:    "/health",
		Payload:     struct{}{},
		Token:       p.token,
	})
	if err == nil {
		return Healthy("platform reachable")
	}

	var callErr *transport.CallError
	if errors.As(err, &callErr) && callErr.Status != 0 {
		return Degraded("platform answered with an error", err)
	}
	if errors.Is(err, transport.ErrInvalidResponse) {
		return Degraded("platform answered with a malformed body", err)
	}
	return Unhealthy("platform unreachable", err)
}
