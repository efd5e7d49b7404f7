package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/flexprice/aggbot/internal/config"
	"github.com/flexprice/aggbot/internal/logger"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/fx"
)

// Client owns the pooled driver client and the readings collection handle
type Client struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewClient connects to the configured server and waits for it to answer a
// ping. Only bootstrap is retried, queries are not.
func NewClient(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) (*Client, error) {
	timeout := cfg.Mongo.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.Mongo.URI()).
		SetConnectTimeout(timeout).
		SetAppName("aggbot"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	c := &Client{
		client:     client,
		collection: client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection),
		logger:     log,
	}

	if lc != nil {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return c.waitReady(ctx, timeout)
			},
			OnStop: func(ctx context.Context) error {
				log.Info("Disconnecting from MongoDB...")
				return c.Close(ctx)
			},
		})
	}

	return c, nil
}

func (c *Client) waitReady(ctx context.Context, timeout time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 3 * timeout

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := c.client.Ping(pingCtx, readpref.Primary()); err != nil {
			c.logger.Warnw("MongoDB not ready", "attempt", attempt, "error", err)
			return err
		}
		c.logger.Infow("Connected to MongoDB",
			"database", c.collection.Database().Name(),
			"collection", c.collection.Name(),
		)
		return nil
	}, backoff.WithContext(b, ctx))
}

// Collection returns the readings collection
func (c *Client) Collection() *mongo.Collection {
	return c.collection
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
