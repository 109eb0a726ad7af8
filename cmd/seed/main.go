// Command seed replaces the movie catalog with the contents of a dataset file.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"movie_backend/internal/app/di"
	"movie_backend/internal/config"
	"movie_backend/internal/feature/catalog/usecase"
	"movie_backend/internal/platform/dataset"
	"movie_backend/internal/platform/logger"
)

func main() {
	path := flag.String("file", "data/movies.json", "dataset JSON file")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline")
	flag.Parse()

	slog.SetDefault(logger.New(os.Getenv("LOG_LEVEL"), "text"))

	cfg, err := config.LoadStore()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	movies, err := dataset.Load(*path)
	if err != nil {
		slog.Error("failed to load dataset", "file", *path, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, err := di.NewStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close(context.Background())
	}()

	n, err := usecase.NewSeedUsecase(store.Seeder).Reseed(ctx, movies)
	if err != nil {
		slog.Error("seed failed", "error", err)
		_ = store.Close(context.Background())
		os.Exit(1)
	}
	slog.Info("seed ok", "movies", n)
}
