package clickhouse

import (
	"context"
	"fmt"

	clickhouse_go "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/flexprice/aggbot/internal/config"
	"github.com/flexprice/aggbot/internal/sentry"
	"go.uber.org/fx"
)

// Conn is the part of the driver connection the readings repository uses
type Conn interface {
	Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
	Ping(ctx context.Context) error
}

type ClickHouseStore struct {
	conn   driver.Conn
	table  string
	sentry *sentry.Service
}

func NewClickHouseStore(lc fx.Lifecycle, config *config.Configuration, sentryService *sentry.Service) (*ClickHouseStore, error) {
	options := config.ClickHouse.GetClientOptions()
	conn, err := clickhouse_go.Open(options)
	if err != nil {
		return nil, fmt.Errorf("init clickhouse client: %w", err)
	}

	store := &ClickHouseStore{
		conn:   conn,
		table:  config.ClickHouse.Table,
		sentry: sentryService,
	}

	if lc != nil {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return store.GetConn().Ping(ctx)
			},
			OnStop: func(ctx context.Context) error {
				return store.Close()
			},
		})
	}

	return store, nil
}

// GetConn returns a connection that traces every query
func (s *ClickHouseStore) GetConn() Conn {
	return &tracedConn{
		conn:   s.conn,
		sentry: s.sentry,
	}
}

// Table is the readings table name
func (s *ClickHouseStore) Table() string {
	return s.table
}

func (s *ClickHouseStore) Close() error {
	return s.conn.Close()
}

type tracedConn struct {
	conn   driver.Conn
	sentry *sentry.Service
}

func (tc *tracedConn) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	span, ctx := tc.sentry.StartDBSpan(ctx, "db.clickhouse", "clickhouse.query", map[string]interface{}{
		"query":      truncateQuery(query),
		"args_count": len(args),
	})

	rows, err := tc.conn.Query(ctx, query, args...)
	sentry.FinishSpan(span, err)
	return rows, err
}

func (tc *tracedConn) Ping(ctx context.Context) error {
	span, ctx := tc.sentry.StartDBSpan(ctx, "db.clickhouse", "clickhouse.ping", nil)
	err := tc.conn.Ping(ctx)
	sentry.FinishSpan(span, err)
	return err
}

// Truncate query to avoid sending too much data to Sentry
func truncateQuery(query string) string {
	const maxQueryLength = 1000
	if len(query) > maxQueryLength {
		return query[:maxQueryLength] + "..."
	}
	return query
}
