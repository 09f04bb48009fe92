package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("MAP_REGION_PLACE_LIMIT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Map.RegionPlaceLimit)
	assert.Equal(t, 14.0, cfg.Map.DetailZoom)
	assert.Equal(t, 12*time.Second, cfg.Geolocation.Timeout)
	assert.Equal(t, "http://localhost:9090", cfg.MapAPI.BaseURL)
	assert.Equal(t, "map-cache-invalidation", cfg.Worker.ConsumerGroup)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("MAP_REGION_PLACE_LIMIT", "25")
	t.Setenv("GEOLOCATION_TIMEOUT", "15")
	t.Setenv("MAP_CACHE_TTL", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Map.RegionPlaceLimit)
	assert.Equal(t, 15*time.Second, cfg.Geolocation.Timeout)
	assert.Equal(t, time.Minute, cfg.Cache.MapCacheTTL)
}

func TestConfig_Addresses(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Redis:  RedisConfig{Host: "redis", Port: 6379},
	}

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	assert.Equal(t, "redis:6379", cfg.GetRedisAddr())
}
