// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"

	"movie_backend/internal/config"
	authadapters "movie_backend/internal/feature/auth/adapters"
	authusecase "movie_backend/internal/feature/auth/usecase"
	catalogadapters "movie_backend/internal/feature/catalog/adapters"
	catalogusecase "movie_backend/internal/feature/catalog/usecase"
	"movie_backend/internal/platform/db"
	"movie_backend/internal/platform/mongodb"
)

// Store bundles the repositories of one backend and how to release it.
type Store struct {
	Movies catalogusecase.MovieRepository
	Seeder catalogusecase.MovieSeeder
	Users  authusecase.UserRepository
	Close  func(ctx context.Context) error
}

// NewStore connects to the backend named by cfg.StoreDriver and prepares its
// schema: unique indexes on mongo, AutoMigrate on the SQL drivers.
func NewStore(ctx context.Context, cfg *config.StoreConfig) (*Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		return newMongoStore(ctx, cfg)
	case config.StorePostgres, config.StoreSQLite:
		return newGormStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func newMongoStore(ctx context.Context, cfg *config.StoreConfig) (*Store, error) {
	mcfg := mongodb.Config{
		URI:            cfg.MongoURI,
		Database:       cfg.MongoDatabase,
		ConnectTimeout: cfg.StoreConnectTimeout,
	}
	client, err := mongodb.Connect(ctx, mcfg)
	if err != nil {
		return nil, err
	}
	database := client.Database(mongodb.DatabaseName(mcfg))
	return NewMongoStore(ctx, client, database)
}

// NewMongoStore builds the repositories on an already connected database.
func NewMongoStore(ctx context.Context, client *mongo.Client, database *mongo.Database) (*Store, error) {
	movies := catalogadapters.NewMovieMongoRepository(database)
	users := authadapters.NewUserMongoRepository(database)
	if err := mongodb.EnsureIndexes(ctx, movies, users); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return &Store{
		Movies: movies,
		Seeder: movies,
		Users:  users,
		Close:  client.Disconnect,
	}, nil
}

func newGormStore(ctx context.Context, cfg *config.StoreConfig) (*Store, error) {
	driver := db.DriverPostgres
	if cfg.StoreDriver == config.StoreSQLite {
		driver = db.DriverSQLite
	}
	gdb, err := db.Open(ctx, db.Config{
		Driver:         driver,
		DSN:            cfg.DatabaseDSN,
		SQLitePath:     cfg.SQLitePath,
		ConnectTimeout: cfg.StoreConnectTimeout,
		Debug:          cfg.StoreDebug,
	}, catalogadapters.MigrateMovies, authadapters.MigrateUsers)
	if err != nil {
		return nil, err
	}
	return NewGormStore(gdb), nil
}

// NewGormStore builds the repositories on an open, migrated gorm handle.
func NewGormStore(gdb *gorm.DB) *Store {
	movies := catalogadapters.NewMovieGormRepository(gdb)
	return &Store{
		Movies: movies,
		Seeder: movies,
		Users:  authadapters.NewUserGormRepository(gdb),
		Close: func(context.Context) error {
			if err := db.Close(gdb); err != nil {
				slog.Error("failed to close database", "error", err)
				return err
			}
			return nil
		},
	}
}
