package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("DUIT_DATA_DIR replaces data dir", func(t *testing.T) {
		t.Setenv("DUIT_DATA_DIR", "/tmp/duit-env")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/tmp/duit-env", cfg.DataDir)
	})

	t.Run("DUIT_STORAGE is lowercased", func(t *testing.T) {
		t.Setenv("DUIT_STORAGE", "Redis")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	})

	t.Run("DUIT_REDIS_ADDR sets address", func(t *testing.T) {
		t.Setenv("DUIT_REDIS_ADDR", "cache:6379")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "cache:6379", cfg.Storage.Redis.Addr)
	})

	t.Run("DUIT_DARK_MODE parses booleans", func(t *testing.T) {
		t.Setenv("DUIT_DARK_MODE", "false")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		require.NotNil(t, cfg.UI.DarkMode)
		assert.False(t, *cfg.UI.DarkMode)
	})

	t.Run("invalid DUIT_DARK_MODE is ignored", func(t *testing.T) {
		t.Setenv("DUIT_DARK_MODE", "sometimes")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Nil(t, cfg.UI.DarkMode)
	})
}
