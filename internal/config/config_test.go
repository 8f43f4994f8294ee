package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizcomply/bizcomply/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(logger.NewNoop())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 3600*time.Second, cfg.Cache.TTL)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, "bizcomply.compliance.events", cfg.Audit.Topic)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: "postgres", Host: "localhost", Database: "bizcomply"},
			Cache:    CacheConfig{Backend: "memory"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = "oracle"
		assert.Error(t, cfg.Validate())
	})

	t.Run("sqlite requires path", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = "sqlite"
		assert.Error(t, cfg.Validate())

		cfg.Database.Path = ":memory:"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("redis backend requires addr", func(t *testing.T) {
		cfg := base()
		cfg.Cache.Backend = "redis"
		assert.Error(t, cfg.Validate())

		cfg.Cache.Redis.Addr = "localhost:6379"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("audit requires brokers", func(t *testing.T) {
		cfg := base()
		cfg.Audit.Enabled = true
		assert.Error(t, cfg.Validate())

		cfg.Audit.Brokers = []string{"localhost:9092"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("dsn", func(t *testing.T) {
		cfg := base()
		cfg.Database.Port = 5432
		cfg.Database.User = "app"
		cfg.Database.SSLMode = "disable"
		assert.Contains(t, cfg.Database.DSN(), "host=localhost")
		assert.Contains(t, cfg.Database.DSN(), "dbname=bizcomply")
	})
}
