package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/flexprice/aggbot/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Store      StoreConfig      `validate:"required"`
	Mongo      MongoConfig
	ClickHouse ClickHouseConfig
	Bot        BotConfig
	Sentry     SentryConfig
	Pyroscope  PyroscopeConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required,oneof=local api bot"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type StoreConfig struct {
	Backend types.StoreBackend `validate:"required,oneof=mongo clickhouse"`
}

type MongoConfig struct {
	Address        string        `mapstructure:"address"`
	Port           int           `mapstructure:"port"`
	Database       string        `mapstructure:"database"`
	Collection     string        `mapstructure:"collection"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type ClickHouseConfig struct {
	Address  string
	TLS      bool
	Username string
	Password string
	Database string
	Table    string
}

type BotConfig struct {
	Token          string        `mapstructure:"token"`
	PollTimeout    int           `mapstructure:"poll_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Debug          bool          `mapstructure:"debug"`
	// RetryMax bounds retries of a single Telegram API call
	RetryMax int `mapstructure:"retry_max"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type PyroscopeConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	ServerAddress   string   `mapstructure:"server_address"`
	ApplicationName string   `mapstructure:"application_name"`
	BasicAuthUser   string   `mapstructure:"basic_auth_user"`
	BasicAuthPass   string   `mapstructure:"basic_auth_pass"`
	ProfileTypes    []string `mapstructure:"profile_types"`
}

// legacyEnv maps the bare variable names of the legacy bot deployment
// onto config keys so existing .env files keep working.
var legacyEnv = map[string]string{
	"mongo.address":    "DB_ADDRESS",
	"mongo.port":       "DB_PORT",
	"mongo.database":   "DB_NAME",
	"mongo.collection": "COLLECTION_NAME",
	"bot.token":        "BOT_TOKEN",
}

func NewConfig() (*Configuration, error) {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/aggbot")

	setDefaults(v)

	v.SetEnvPrefix("AGGBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	for key, env := range legacyEnv {
		if err := v.BindEnv(key, "AGGBOT_"+envKey(key), env); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("deployment.mode", d.Deployment.Mode)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("mongo.address", d.Mongo.Address)
	v.SetDefault("mongo.port", d.Mongo.Port)
	v.SetDefault("mongo.database", d.Mongo.Database)
	v.SetDefault("mongo.collection", d.Mongo.Collection)
	v.SetDefault("mongo.connect_timeout", d.Mongo.ConnectTimeout)
	v.SetDefault("clickhouse.table", d.ClickHouse.Table)
	v.SetDefault("bot.poll_timeout", d.Bot.PollTimeout)
	v.SetDefault("bot.request_timeout", d.Bot.RequestTimeout)
	v.SetDefault("bot.retry_max", d.Bot.RetryMax)
	v.SetDefault("sentry.sample_rate", d.Sentry.SampleRate)
	v.SetDefault("pyroscope.application_name", d.Pyroscope.ApplicationName)
}

func envKey(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Validate checks the struct tags and the cross field requirements of the
// selected run mode and store backend.
func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Deployment.Mode != types.ModeAPI && c.Bot.Token == "" {
		return fmt.Errorf("bot token is required in %s mode", c.Deployment.Mode)
	}

	switch c.Store.Backend {
	case types.StoreBackendMongo:
		if c.Mongo.Address == "" || c.Mongo.Database == "" || c.Mongo.Collection == "" {
			return errors.New("mongo address, database and collection are required")
		}
	case types.StoreBackendClickHouse:
		if c.ClickHouse.Address == "" || c.ClickHouse.Table == "" {
			return errors.New("clickhouse address and table are required")
		}
	}

	if c.Pyroscope.Enabled && c.Pyroscope.ServerAddress == "" {
		return errors.New("pyroscope server address is required when profiling is enabled")
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Store:      StoreConfig{Backend: types.StoreBackendMongo},
		Mongo: MongoConfig{
			Address:        "localhost",
			Port:           27017,
			Database:       "sampleDB",
			Collection:     "sample_collection",
			ConnectTimeout: 10 * time.Second,
		},
		ClickHouse: ClickHouseConfig{Table: "readings"},
		Bot: BotConfig{
			PollTimeout:    60,
			RequestTimeout: 30 * time.Second,
			RetryMax:       3,
		},
		Sentry:    SentryConfig{SampleRate: 1.0},
		Pyroscope: PyroscopeConfig{ApplicationName: "aggbot"},
	}
}

// URI builds a connection string from address and port. An address that is
// already a mongodb:// or mongodb+srv:// URI is used as is.
func (c MongoConfig) URI() string {
	if strings.HasPrefix(c.Address, "mongodb://") || strings.HasPrefix(c.Address, "mongodb+srv://") {
		return c.Address
	}
	host := c.Address
	if c.Port != 0 {
		host = net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
	}
	return "mongodb://" + host
}

func (c ClickHouseConfig) GetClientOptions() *clickhouse.Options {
	options := &clickhouse.Options{
		Addr: []string{c.Address},
		Auth: clickhouse.Auth{
			Database: c.Database,
			Username: c.Username,
			Password: c.Password,
		},
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
	}
	if c.TLS {
		options.TLS = &tls.Config{}
	}
	return options
}
