package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CANCELLATION_WINDOW_HOURS", "")
	t.Setenv("SLOT_LOCK_TTL", "")
	t.Setenv("REQUEST_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.CancellationWindow())
	assert.Equal(t, 10*time.Second, cfg.SlotLockTTL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SLOT_LOCK_TTL", "2s")
	t.Setenv("REQUEST_TIMEOUT", "1s")
	t.Setenv("CANCELLATION_WINDOW_HOURS", "48")
	t.Setenv("METRICS_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 2*time.Second, cfg.SlotLockTTL)
	assert.Equal(t, 48*time.Hour, cfg.CancellationWindow())
	assert.False(t, cfg.MetricsEnabled)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "x")
	t.Setenv("SLOT_LOCK_TTL", "-1s")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("CANCELLATION_WINDOW_HOURS", "0")

	cfg := Load()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 10*time.Second, cfg.SlotLockTTL)
	assert.Equal(t, 24*time.Hour, cfg.CancellationWindow())
}

func TestSlotLockOutlivesRequestTimeout(t *testing.T) {
	tests := []struct {
		name    string
		ttl     string
		timeout string
		want    time.Duration
	}{
		{"ttl below timeout", "5s", "10s", 20 * time.Second},
		{"ttl equal to timeout", "10s", "10s", 20 * time.Second},
		{"ttl above timeout", "30s", "10s", 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SLOT_LOCK_TTL", tt.ttl)
			t.Setenv("REQUEST_TIMEOUT", tt.timeout)

			cfg := Load()

			assert.Equal(t, tt.want, cfg.SlotLockTTL)
			assert.Greater(t, cfg.SlotLockTTL, cfg.RequestTimeout)
		})
	}
}

func TestCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.test, ,https://b.test")

	cfg := Load()

	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins)
}
