package config

import (
	"testing"
	"time"

	"github.com/flexprice/aggbot/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_LegacyEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("DB_ADDRESS", "mongo.internal")
	t.Setenv("DB_PORT", "27018")
	t.Setenv("DB_NAME", "metrics")
	t.Setenv("COLLECTION_NAME", "readings")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Bot.Token)
	assert.Equal(t, "mongo.internal", cfg.Mongo.Address)
	assert.Equal(t, 27018, cfg.Mongo.Port)
	assert.Equal(t, "metrics", cfg.Mongo.Database)
	assert.Equal(t, "readings", cfg.Mongo.Collection)
	assert.Equal(t, "mongodb://mongo.internal:27018", cfg.Mongo.URI())
	assert.Equal(t, 30*time.Second, cfg.Bot.RequestTimeout)
}

func TestNewConfig_PrefixedEnvWins(t *testing.T) {
	t.Setenv("BOT_TOKEN", "legacy")
	t.Setenv("AGGBOT_BOT_TOKEN", "prefixed")
	t.Setenv("AGGBOT_STORE_BACKEND", "clickhouse")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "prefixed", cfg.Bot.Token)
	assert.Equal(t, types.StoreBackendClickHouse, cfg.Store.Backend)
}

func TestConfiguration_Validate(t *testing.T) {
	t.Run("bot mode requires token", func(t *testing.T) {
		cfg := GetDefaultConfig()
		cfg.Deployment.Mode = types.ModeBot
		assert.Error(t, cfg.Validate())

		cfg.Bot.Token = "token"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("api mode without token", func(t *testing.T) {
		cfg := GetDefaultConfig()
		cfg.Deployment.Mode = types.ModeAPI
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := GetDefaultConfig()
		cfg.Deployment.Mode = types.ModeAPI
		cfg.Store.Backend = "redis"
		assert.Error(t, cfg.Validate())
	})

	t.Run("clickhouse needs address", func(t *testing.T) {
		cfg := GetDefaultConfig()
		cfg.Deployment.Mode = types.ModeAPI
		cfg.Store.Backend = types.StoreBackendClickHouse
		assert.Error(t, cfg.Validate())

		cfg.ClickHouse.Address = "localhost:9000"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("pyroscope needs server address", func(t *testing.T) {
		cfg := GetDefaultConfig()
		cfg.Deployment.Mode = types.ModeAPI
		cfg.Pyroscope.Enabled = true
		assert.Error(t, cfg.Validate())

		cfg.Pyroscope.ServerAddress = "http://localhost:4040"
		assert.NoError(t, cfg.Validate())
	})
}

func TestMongoConfig_URI(t *testing.T) {
	assert.Equal(t, "mongodb://localhost:27017", MongoConfig{Address: "localhost", Port: 27017}.URI())
	assert.Equal(t, "mongodb://db", MongoConfig{Address: "db"}.URI())
	assert.Equal(t, "mongodb+srv://cluster.example.net", MongoConfig{Address: "mongodb+srv://cluster.example.net", Port: 27017}.URI())
}
