package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/config"
)

func TestServerConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = 9090
	cfg.RateLimit.RequestsPerMinute = 30
	cfg.RateLimit.Burst = 3

	sc := serverConfig(cfg, analysis.New(nil), zap.NewNop())
	assert.Equal(t, 9090, sc.Port)
	assert.Equal(t, cfg.Server.MaxUploadBytes, sc.MaxUploadBytes)
	require.NotNil(t, sc.Registry)
	require.NotNil(t, sc.RateLimit)
	assert.True(t, sc.RateLimit.Enabled)
	require.Len(t, sc.RateLimit.EndpointConfigs, 1)
	assert.Equal(t, 30, sc.RateLimit.EndpointConfigs[0].Limit)
	assert.Equal(t, 3, sc.RateLimit.EndpointConfigs[0].Burst)

	families, err := sc.Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families, "runtime collectors are registered")
}

func TestServeCommand_InvalidConfig(t *testing.T) {
	_, err := execute(t, "serve", "--port", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error")
}
