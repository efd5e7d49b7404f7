package types

type RunMode string

const (
	// ModeLocal runs both the HTTP API and the bot in one process
	ModeLocal RunMode = "local"
	// ModeAPI runs just the HTTP API
	ModeAPI RunMode = "api"
	// ModeBot runs just the bot poller
	ModeBot RunMode = "bot"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)

// StoreBackend selects the readings repository implementation
type StoreBackend string

const (
	StoreBackendMongo      StoreBackend = "mongo"
	StoreBackendClickHouse StoreBackend = "clickhouse"
)
