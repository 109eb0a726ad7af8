package metrics

import (
	"context"
	"time"

	"movie_backend/internal/feature/catalog/domain/entity"
	"movie_backend/internal/feature/catalog/usecase"
)

const movieRepo = "movies"

// InstrumentedMovieRepository decorates a MovieRepository with store metrics.
// 元のリポジトリには手を加えず、呼び出しの前後で計測だけを行います。
type InstrumentedMovieRepository struct {
	inner usecase.MovieRepository
	m     *Metrics
}

var _ usecase.MovieRepository = (*InstrumentedMovieRepository)(nil)

// NewInstrumentedMovieRepository wraps inner. A nil m returns inner unchanged.
func NewInstrumentedMovieRepository(m *Metrics, inner usecase.MovieRepository) usecase.MovieRepository {
	if m == nil {
		return inner
	}
	return &InstrumentedMovieRepository{inner: inner, m: m}
}

func (r *InstrumentedMovieRepository) List(ctx context.Context, q entity.MovieQuery) ([]entity.Movie, error) {
	start := time.Now()
	out, err := r.inner.List(ctx, q)
	r.m.observe(movieRepo, "list", start, err)
	return out, err
}

func (r *InstrumentedMovieRepository) FindByID(ctx context.Context, id string) (*entity.Movie, error) {
	start := time.Now()
	out, err := r.inner.FindByID(ctx, id)
	r.m.observe(movieRepo, "find_by_id", start, err, usecase.ErrMovieNotFound)
	return out, err
}

func (r *InstrumentedMovieRepository) DistinctGenres(ctx context.Context) ([]string, error) {
	start := time.Now()
	out, err := r.inner.DistinctGenres(ctx)
	r.m.observe(movieRepo, "distinct_genres", start, err)
	return out, err
}

func (r *InstrumentedMovieRepository) Create(ctx context.Context, mv *entity.Movie) error {
	start := time.Now()
	err := r.inner.Create(ctx, mv)
	r.m.observe(movieRepo, "create", start, err)
	return err
}

func (r *InstrumentedMovieRepository) Update(ctx context.Context, mv *entity.Movie) error {
	start := time.Now()
	err := r.inner.Update(ctx, mv)
	r.m.observe(movieRepo, "update", start, err, usecase.ErrMovieNotFound)
	return err
}

func (r *InstrumentedMovieRepository) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := r.inner.Delete(ctx, id)
	r.m.observe(movieRepo, "delete", start, err, usecase.ErrMovieNotFound)
	return err
}
