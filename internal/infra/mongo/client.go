// Package mongo wraps the official driver's connection lifecycle behind a
// small Client type the rest of the codebase depends on instead of the
// driver directly.
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Client struct {
	raw      *mongo.Client
	Database *mongo.Database
}

// NewClient dials MongoDB at uri and pins Database to dbName, pinging to
// fail fast on a bad connection string rather than on first use.
func NewClient(ctx context.Context, uri, dbName string) (*Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	raw, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := raw.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info().Str("database", dbName).Msg("Connected to MongoDB")

	return &Client{raw: raw, Database: raw.Database(dbName)}, nil
}

func (c *Client) Close(ctx context.Context) error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Disconnect(ctx)
}
