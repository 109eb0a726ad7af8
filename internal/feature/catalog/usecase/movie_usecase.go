package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"movie_backend/internal/feature/catalog/domain/entity"
)

// MovieRepository abstracts the persistence layer for movies.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MovieRepository interface {
	// List returns every movie matching q, ordered by q.Sort.
	List(ctx context.Context, q entity.MovieQuery) ([]entity.Movie, error)

	// FindByID returns ErrMovieNotFound for unknown or malformed ids.
	FindByID(ctx context.Context, id string) (*entity.Movie, error)

	// DistinctGenres returns every genre tag in use, in no particular order.
	DistinctGenres(ctx context.Context) ([]string, error)

	// Create persists m and assigns m.ID.
	Create(ctx context.Context, m *entity.Movie) error

	// Update replaces the stored movie with the same ID.
	Update(ctx context.Context, m *entity.Movie) error

	// Delete removes the movie with the given id.
	Delete(ctx context.Context, id string) error
}

// MovieInput carries the fields of a create or update request.
// A nil field means "not provided".
type MovieInput struct {
	Title       *string
	Description *string
	ReleaseYear *int
	Genre       []string
	Rating      *float64
	PosterURL   *string
	Director    *string
	Cast        []string
	Duration    *int
	StreamURL   *string
}

// applyTo copies every provided field onto m.
func (in MovieInput) applyTo(m *entity.Movie) {
	if in.Title != nil {
		m.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.ReleaseYear != nil {
		m.ReleaseYear = *in.ReleaseYear
	}
	if in.Genre != nil {
		m.Genre = append([]string(nil), in.Genre...)
	}
	if in.Rating != nil {
		m.Rating = *in.Rating
	}
	if in.PosterURL != nil {
		m.PosterURL = *in.PosterURL
	}
	if in.Director != nil {
		m.Director = *in.Director
	}
	if in.Cast != nil {
		m.Cast = append([]string(nil), in.Cast...)
	}
	if in.Duration != nil {
		m.Duration = *in.Duration
	}
	if in.StreamURL != nil {
		m.StreamURL = *in.StreamURL
	}
}

// MovieUsecase implements the catalog query contract and the protected writes.
type MovieUsecase struct {
	repo      MovieRepository
	validator *movieValidator
	now       func() time.Time
}

// NewMovieUsecase creates a MovieUsecase backed by repo.
func NewMovieUsecase(repo MovieRepository) *MovieUsecase {
	return &MovieUsecase{
		repo:      repo,
		validator: newMovieValidator(),
		now:       time.Now,
	}
}

// List returns the movies matching q. Every call goes to the store.
func (u *MovieUsecase) List(ctx context.Context, q entity.MovieQuery) ([]entity.Movie, error) {
	q.Sort = entity.ParseSortOrder(string(q.Sort))
	if q.Limit < 0 {
		q.Limit = 0
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	movies, err := u.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	if movies == nil {
		movies = []entity.Movie{}
	}
	return movies, nil
}

// Get returns a single movie or ErrMovieNotFound.
func (u *MovieUsecase) Get(ctx context.Context, id string) (*entity.Movie, error) {
	return u.repo.FindByID(ctx, id)
}

// Genres returns the deduplicated genre tags sorted ascending.
func (u *MovieUsecase) Genres(ctx context.Context) ([]string, error) {
	tags, err := u.repo.DistinctGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

// Create validates the input and persists a new movie.
func (u *MovieUsecase) Create(ctx context.Context, in MovieInput) (*entity.Movie, error) {
	m := &entity.Movie{}
	in.applyTo(m)
	if err := u.validator.Validate(m); err != nil {
		return nil, err
	}
	m.CreatedAt = u.now().UTC()
	if err := u.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}
	return m, nil
}

// Update merges in onto the stored movie, revalidates and saves the result.
// The id and creation time never change.
func (u *MovieUsecase) Update(ctx context.Context, id string, in MovieInput) (*entity.Movie, error) {
	m, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.applyTo(m)
	if err := u.validator.Validate(m); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a movie or returns ErrMovieNotFound.
func (u *MovieUsecase) Delete(ctx context.Context, id string) error {
	return u.repo.Delete(ctx, id)
}
