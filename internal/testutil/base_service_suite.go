package testutil

import (
	"context"
	"time"

	"github.com/flexprice/aggbot/internal/config"
	"github.com/flexprice/aggbot/internal/domain/reading"
	"github.com/flexprice/aggbot/internal/logger"
	"github.com/flexprice/aggbot/internal/metrics"
	"github.com/flexprice/aggbot/internal/types"
	"github.com/flexprice/aggbot/internal/validator"
	"github.com/stretchr/testify/suite"
)

// BaseServiceTestSuite provides the readings store, logger and metrics every
// aggregation test suite needs
type BaseServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *InMemoryReadingStore
	metrics *metrics.Metrics
	logger  *logger.Logger
	config  *config.Configuration
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.store = NewInMemoryReadingStore()
	s.metrics = metrics.NewMetrics(nil)
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.store.Clear()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetStore() *InMemoryReadingStore {
	return s.store
}

func (s *BaseServiceTestSuite) GetMetrics() *metrics.Metrics {
	return s.metrics
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// InsertReadings stores one reading per timestamp, all with the same value
func (s *BaseServiceTestSuite) InsertReadings(value float64, timestamps ...time.Time) {
	for _, ts := range timestamps {
		s.store.Insert(reading.NewReading(ts, value))
	}
}
