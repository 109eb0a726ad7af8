package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"movie_backend/internal/feature/catalog/domain/entity"
)

// MovieSeeder is the bulk-write side of a movie store.
type MovieSeeder interface {
	DeleteAll(ctx context.Context) (int64, error)
	CreateMany(ctx context.Context, movies []entity.Movie) (int, error)
}

// SeedUsecase replaces the whole catalog with a dataset.
type SeedUsecase struct {
	store     MovieSeeder
	validator *movieValidator
	now       func() time.Time
}

// NewSeedUsecase creates a SeedUsecase.
func NewSeedUsecase(store MovieSeeder) *SeedUsecase {
	return &SeedUsecase{store: store, validator: newMovieValidator(), now: time.Now}
}

// Reseed validates every movie first, then clears the catalog and inserts the dataset.
// Nothing is deleted when any record is invalid.
func (u *SeedUsecase) Reseed(ctx context.Context, movies []entity.Movie) (int, error) {
	base := u.now().UTC()
	prepared := make([]entity.Movie, len(movies))
	for i, m := range movies {
		m.ID = ""
		m.Title = strings.TrimSpace(m.Title)
		if err := u.validator.Validate(&m); err != nil {
			return 0, fmt.Errorf("dataset record %d (%q): %w", i, m.Title, err)
		}
		if m.CreatedAt.IsZero() {
			// keep dataset order stable under the default newest-first sort
			m.CreatedAt = base.Add(-time.Duration(i) * time.Millisecond)
		}
		prepared[i] = m
	}

	removed, err := u.store.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear movies: %w", err)
	}
	slog.Info("cleared existing movies", "count", removed)

	n, err := u.store.CreateMany(ctx, prepared)
	if err != nil {
		return n, fmt.Errorf("insert movies: %w", err)
	}
	slog.Info("inserted movies", "count", n)
	return n, nil
}
