// Package mongodb connects to the document store.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"
)

// DefaultDatabase is used when neither the config nor the URI names a database.
const DefaultDatabase = "movie-streaming"

// Config holds the document store connection settings.
type Config struct {
	URI            string
	Database       string // overrides the database in URI
	ConnectTimeout time.Duration
	RetryInterval  time.Duration
}

// IndexEnsurer is implemented by repositories that own collection indexes.
type IndexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

// DatabaseName resolves the database to use: cfg.Database, then the URI path, then DefaultDatabase.
func DatabaseName(cfg Config) string {
	if cfg.Database != "" {
		return cfg.Database
	}
	if cs, err := connstring.ParseAndValidate(cfg.URI); err == nil && cs.Database != "" {
		return cs.Database
	}
	return DefaultDatabase
}

// Connect creates a client and pings the primary until it answers or
// cfg.ConnectTimeout elapses.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongodb: URI is required")
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 3 * time.Second
	}
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongodb: invalid client options: %w", err)
	}

	deadline := time.Now().Add(cfg.ConnectTimeout)
	for {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = client.Ping(pingCtx, readpref.Primary())
		cancel()
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("mongodb connect failed after %s: %w", cfg.ConnectTimeout, err)
		}
		slog.Warn("mongodb ping failed, retrying", "error", err)
		select {
		case <-ctx.Done():
			_ = client.Disconnect(context.Background())
			return nil, ctx.Err()
		case <-time.After(cfg.RetryInterval):
		}
	}
	slog.Info("connected to mongodb", "database", DatabaseName(cfg))
	return client, nil
}

// EnsureIndexes runs every ensurer in order and stops at the first failure.
func EnsureIndexes(ctx context.Context, ensurers ...IndexEnsurer) error {
	for _, e := range ensurers {
		if err := e.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
