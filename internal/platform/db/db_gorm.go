// Package db opens the relational store used when STORE_DRIVER is postgres or sqlite.
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrUnsupportedDriver is returned by Open for any driver other than postgres or sqlite.
var ErrUnsupportedDriver = errors.New("unsupported sql driver")

// Config holds the connection settings for the relational store.
type Config struct {
	Driver         string
	DSN            string        // postgres connection string
	SQLitePath     string        // file path or ":memory:"
	ConnectTimeout time.Duration // total time allowed for connection retries
	RetryInterval  time.Duration
	Debug          bool // log every statement
}

// Dialector returns the gorm dialector for cfg.
func Dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, errors.New("postgres driver requires DATABASE_DSN")
		}
		return postgres.Open(cfg.DSN), nil
	case DriverSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = "file::memory:?cache=shared"
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Open connects to the configured store, retrying until cfg.ConnectTimeout elapses
// or ctx is cancelled. TranslateError is enabled so unique violations surface as
// gorm.ErrDuplicatedKey on every driver.
func Open(ctx context.Context, cfg Config, migrations ...func(*gorm.DB) error) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 3 * time.Second
	}
	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	}

	var db *gorm.DB
	deadline := time.Now().Add(cfg.ConnectTimeout)
	for {
		db, err = gorm.Open(dialector, gcfg)
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", cfg.ConnectTimeout, err)
		}
		slog.Warn("db connect failed, retrying", "driver", cfg.Driver, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryInterval):
		}
	}

	if cfg.Driver == DriverSQLite {
		// one connection keeps ":memory:" databases shared and avoids SQLITE_BUSY on writes
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	for _, migrate := range migrations {
		if err := migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	slog.Info("connected to sql store", "driver", cfg.Driver)
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
