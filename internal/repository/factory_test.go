package repository

import (
	"testing"

	"github.com/flexprice/aggbot/internal/config"
	"github.com/flexprice/aggbot/internal/logger"
	"github.com/flexprice/aggbot/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNewReadingRepository_MissingClient(t *testing.T) {
	for _, backend := range []types.StoreBackend{types.StoreBackendMongo, types.StoreBackendClickHouse, "sqlite"} {
		t.Run(string(backend), func(t *testing.T) {
			cfg := config.GetDefaultConfig()
			cfg.Store.Backend = backend

			repo, err := NewReadingRepository(ReadingRepositoryParams{
				Config: cfg,
				Logger: logger.NewNopLogger(),
			})
			assert.Error(t, err)
			assert.Nil(t, repo)
		})
	}
}
