// Command posters refreshes posterUrl in a dataset file from TMDB search results.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v6"

	"movie_backend/internal/app/di"
	"movie_backend/internal/config"
	"movie_backend/internal/platform/dataset"
	"movie_backend/internal/platform/externalapi/tmdb"
	"movie_backend/internal/platform/logger"
)

func main() {
	in := flag.String("file", "data/movies.json", "dataset JSON file")
	out := flag.String("out", "", "output file (default: overwrite -file)")
	flag.Parse()
	if *out == "" {
		*out = *in
	}

	slog.SetDefault(logger.New(os.Getenv("LOG_LEVEL"), "text"))

	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	var cfg tmdb.Config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("failed to load TMDB config", "error", err)
		os.Exit(1)
	}

	movies, err := dataset.Load(*in)
	if err != nil {
		slog.Error("failed to load dataset", "file", *in, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	updated := di.NewPosterUsecase(cfg).RefreshPosters(ctx, movies)

	// 中断された場合もそれまでの結果は書き戻す
	if err := dataset.Save(*out, movies); err != nil {
		slog.Error("failed to write dataset", "file", *out, "error", err)
		os.Exit(1)
	}
	slog.Info("poster refresh done", "updated", updated, "total", len(movies), "file", *out)
}
