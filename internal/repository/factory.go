package repository

import (
	"fmt"

	"github.com/flexprice/aggbot/internal/clickhouse"
	"github.com/flexprice/aggbot/internal/config"
	"github.com/flexprice/aggbot/internal/domain/reading"
	"github.com/flexprice/aggbot/internal/logger"
	"github.com/flexprice/aggbot/internal/mongo"
	clickhouseRepo "github.com/flexprice/aggbot/internal/repository/clickhouse"
	mongoRepo "github.com/flexprice/aggbot/internal/repository/mongo"
	"github.com/flexprice/aggbot/internal/sentry"
	"github.com/flexprice/aggbot/internal/types"
	"go.uber.org/fx"
)

// ReadingRepositoryParams carries whichever store client the configured
// backend provided. The other one is nil.
type ReadingRepositoryParams struct {
	fx.In

	Config     *config.Configuration
	Logger     *logger.Logger
	Sentry     *sentry.Service
	Mongo      *mongo.Client               `optional:"true"`
	ClickHouse *clickhouse.ClickHouseStore `optional:"true"`
}

func NewReadingRepository(p ReadingRepositoryParams) (reading.Repository, error) {
	switch p.Config.Store.Backend {
	case types.StoreBackendMongo:
		if p.Mongo == nil {
			return nil, fmt.Errorf("mongo backend selected but no mongo client provided")
		}
		return mongoRepo.NewReadingRepository(p.Mongo, p.Sentry, p.Logger), nil
	case types.StoreBackendClickHouse:
		if p.ClickHouse == nil {
			return nil, fmt.Errorf("clickhouse backend selected but no clickhouse store provided")
		}
		return clickhouseRepo.NewReadingRepository(p.ClickHouse, p.Logger), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", p.Config.Store.Backend)
	}
}

// StoreProvider returns the fx constructor of the client the backend needs
func StoreProvider(backend types.StoreBackend) fx.Option {
	switch backend {
	case types.StoreBackendClickHouse:
		return fx.Provide(clickhouse.NewClickHouseStore)
	default:
		return fx.Provide(mongo.NewClient)
	}
}
