package ratelimit

import (
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// NewConfig builds a limiter configuration from the per-minute request budget.
// POST /analyze gets the configured budget; everything else is read-only and gets
// four times as much.
func NewConfig(enabled bool, requestsPerMinute, burst int) *Config {
	return &Config{
		Enabled:         enabled,
		DefaultLimit:    requestsPerMinute * 4,
		DefaultWindow:   time.Minute,
		DefaultBurst:    burst * 4,
		CleanupInterval: DefaultCleanupInterval,
		IdleTTL:         DefaultIdleTTL,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: []EndpointConfig{
			{Path: "/analyze", Method: "POST", Limit: requestsPerMinute, Window: time.Minute, Burst: burst},
		},
	}
}
