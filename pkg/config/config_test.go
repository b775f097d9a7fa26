package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	yaml := "gateway:\n  url: https://gateway.local:8444\n  token: s3cret\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))

	require.NoError(t, Load(dir))
	cfg := GetConfig()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 3, cfg.Gateway.RetryAttempts)
	assert.True(t, cfg.Gateway.InsecureSkipVerify)
	assert.Equal(t, 30*time.Second, cfg.Redis.GamesTTL)
	assert.Equal(t, "./static", cfg.Frontend.Dir)
	assert.Equal(t, "index.html", cfg.Frontend.Index)

	assert.True(t, cfg.Gateway.Enabled())
	assert.False(t, cfg.Redis.Enabled())
}

func TestGatewayConfig_Enabled(t *testing.T) {
	tests := []struct {
		name    string
		cfg     GatewayConfig
		enabled bool
	}{
		{"both set", GatewayConfig{URL: "https://gw", Token: "tok"}, true},
		{"missing token", GatewayConfig{URL: "https://gw"}, false},
		{"missing url", GatewayConfig{Token: "tok"}, false},
		{"both empty", GatewayConfig{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.enabled, tt.cfg.Enabled())
		})
	}
}
