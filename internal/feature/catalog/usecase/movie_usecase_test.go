package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie_backend/internal/feature/catalog/domain/entity"
	"movie_backend/internal/feature/catalog/usecase"
)

// mockMovieRepository is a func-field implementation of usecase.MovieRepository.
type mockMovieRepository struct {
	ListFunc           func(ctx context.Context, q entity.MovieQuery) ([]entity.Movie, error)
	FindByIDFunc       func(ctx context.Context, id string) (*entity.Movie, error)
	DistinctGenresFunc func(ctx context.Context) ([]string, error)
	CreateFunc         func(ctx context.Context, m *entity.Movie) error
	UpdateFunc         func(ctx context.Context, m *entity.Movie) error
	DeleteFunc         func(ctx context.Context, id string) error
}

func (m *mockMovieRepository) List(ctx context.Context, q entity.MovieQuery) ([]entity.Movie, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	return nil, nil
}

func (m *mockMovieRepository) FindByID(ctx context.Context, id string) (*entity.Movie, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, usecase.ErrMovieNotFound
}

func (m *mockMovieRepository) DistinctGenres(ctx context.Context) ([]string, error) {
	if m.DistinctGenresFunc != nil {
		return m.DistinctGenresFunc(ctx)
	}
	return nil, nil
}

func (m *mockMovieRepository) Create(ctx context.Context, mv *entity.Movie) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, mv)
	}
	mv.ID = "generated-id"
	return nil
}

func (m *mockMovieRepository) Update(ctx context.Context, mv *entity.Movie) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, mv)
	}
	return nil
}

func (m *mockMovieRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func validInput() usecase.MovieInput {
	return usecase.MovieInput{
		Title:       ptr("  The Matrix "),
		Description: ptr("A hacker learns the truth."),
		ReleaseYear: ptr(1999),
		Genre:       []string{"Sci-Fi", "Action"},
		Rating:      ptr(8.7),
		PosterURL:   ptr("https://img.example/matrix.jpg"),
		Director:    ptr("Wachowski"),
		Cast:        []string{"Keanu Reeves"},
		Duration:    ptr(136),
	}
}

func storedMatrix() *entity.Movie {
	return &entity.Movie{
		ID:          "m1",
		Title:       "The Matrix",
		Description: "A hacker learns the truth.",
		ReleaseYear: 1999,
		Genre:       []string{"Sci-Fi", "Action"},
		Rating:      8.7,
		PosterURL:   "https://img.example/matrix.jpg",
		Director:    "Wachowski",
		Cast:        []string{"Keanu Reeves"},
		Duration:    136,
	}
}

func TestMovieUsecase_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     entity.MovieQuery
		repoErr   error
		wantQuery entity.MovieQuery
		wantErr   bool
	}{
		{
			name:      "unknown sort falls back to newest",
			query:     entity.MovieQuery{Search: "matrix", Sort: "popularity"},
			wantQuery: entity.MovieQuery{Search: "matrix", Sort: entity.SortNewest},
		},
		{
			name:      "recognized sort passes through",
			query:     entity.MovieQuery{Genre: "Drama", Sort: entity.SortYearAsc},
			wantQuery: entity.MovieQuery{Genre: "Drama", Sort: entity.SortYearAsc},
		},
		{
			name:      "negative paging is treated as unbounded",
			query:     entity.MovieQuery{Limit: -5, Offset: -1},
			wantQuery: entity.MovieQuery{Sort: entity.SortNewest},
		},
		{
			name:    "repository error is wrapped",
			repoErr: errors.New("connection reset"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got entity.MovieQuery
			repo := &mockMovieRepository{
				ListFunc: func(ctx context.Context, q entity.MovieQuery) ([]entity.Movie, error) {
					got = q
					return nil, tt.repoErr
				},
			}
			uc := usecase.NewMovieUsecase(repo)

			movies, err := uc.List(context.Background(), tt.query)
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.repoErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, movies, "nil results must become an empty slice")
			assert.Equal(t, tt.wantQuery, got)
		})
	}
}

func TestMovieUsecase_Genres_SortedAndDeduplicated(t *testing.T) {
	t.Parallel()

	repo := &mockMovieRepository{
		DistinctGenresFunc: func(ctx context.Context) ([]string, error) {
			return []string{"Drama", "Action", "Sci-Fi", "Action", "Comedy"}, nil
		},
	}
	uc := usecase.NewMovieUsecase(repo)

	genres, err := uc.Genres(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Comedy", "Drama", "Sci-Fi"}, genres)
}

func TestMovieUsecase_Create(t *testing.T) {
	t.Parallel()

	t.Run("valid input is trimmed, stamped and persisted", func(t *testing.T) {
		t.Parallel()

		var persisted *entity.Movie
		repo := &mockMovieRepository{
			CreateFunc: func(ctx context.Context, m *entity.Movie) error {
				persisted = m
				m.ID = "abc"
				return nil
			},
		}
		uc := usecase.NewMovieUsecase(repo)

		m, err := uc.Create(context.Background(), validInput())

		require.NoError(t, err)
		assert.Equal(t, "abc", m.ID)
		assert.Equal(t, "The Matrix", m.Title)
		assert.False(t, m.CreatedAt.IsZero())
		assert.Same(t, persisted, m)
	})

	t.Run("rating defaults to zero", func(t *testing.T) {
		t.Parallel()

		in := validInput()
		in.Rating = nil
		uc := usecase.NewMovieUsecase(&mockMovieRepository{})

		m, err := uc.Create(context.Background(), in)

		require.NoError(t, err)
		assert.Zero(t, m.Rating)
	})

	invalid := []struct {
		name    string
		mutate  func(in *usecase.MovieInput)
		problem string
	}{
		{"missing title", func(in *usecase.MovieInput) { in.Title = nil }, "title is required"},
		{"blank title", func(in *usecase.MovieInput) { in.Title = ptr("   ") }, "title is required"},
		{"missing genre", func(in *usecase.MovieInput) { in.Genre = nil }, "genre is required"},
		{"empty genre", func(in *usecase.MovieInput) { in.Genre = []string{} }, "genre must contain at least one tag"},
		{"rating above range", func(in *usecase.MovieInput) { in.Rating = ptr(10.5) }, "rating must be between 0 and 10"},
		{"rating below range", func(in *usecase.MovieInput) { in.Rating = ptr(-1.0) }, "rating must be between 0 and 10"},
		{"missing duration", func(in *usecase.MovieInput) { in.Duration = nil }, "duration is required"},
		{"missing poster", func(in *usecase.MovieInput) { in.PosterURL = nil }, "posterUrl is required"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			repo := &mockMovieRepository{
				CreateFunc: func(ctx context.Context, m *entity.Movie) error {
					called = true
					return nil
				},
			}
			uc := usecase.NewMovieUsecase(repo)
			in := validInput()
			tt.mutate(&in)

			_, err := uc.Create(context.Background(), in)

			require.ErrorIs(t, err, usecase.ErrInvalidMovie)
			var verr *usecase.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Problems, tt.problem)
			assert.False(t, called, "store must not be touched on invalid input")
		})
	}
}

func TestMovieUsecase_Update(t *testing.T) {
	t.Parallel()

	t.Run("partial update keeps unspecified fields", func(t *testing.T) {
		t.Parallel()

		original := storedMatrix()
		createdAt := original.CreatedAt
		var saved *entity.Movie
		repo := &mockMovieRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Movie, error) {
				assert.Equal(t, "m1", id)
				return original, nil
			},
			UpdateFunc: func(ctx context.Context, m *entity.Movie) error {
				saved = m
				return nil
			},
		}
		uc := usecase.NewMovieUsecase(repo)

		m, err := uc.Update(context.Background(), "m1", usecase.MovieInput{Rating: ptr(9.1)})

		require.NoError(t, err)
		assert.Equal(t, 9.1, m.Rating)
		assert.Equal(t, "The Matrix", m.Title)
		assert.Equal(t, []string{"Sci-Fi", "Action"}, m.Genre)
		assert.Equal(t, "m1", saved.ID)
		assert.Equal(t, createdAt, saved.CreatedAt)
	})

	t.Run("merged record is revalidated", func(t *testing.T) {
		t.Parallel()

		repo := &mockMovieRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Movie, error) {
				return storedMatrix(), nil
			},
			UpdateFunc: func(ctx context.Context, m *entity.Movie) error {
				t.Fatal("update must not be called")
				return nil
			},
		}
		uc := usecase.NewMovieUsecase(repo)

		_, err := uc.Update(context.Background(), "m1", usecase.MovieInput{Rating: ptr(11.0)})

		assert.ErrorIs(t, err, usecase.ErrInvalidMovie)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		uc := usecase.NewMovieUsecase(&mockMovieRepository{})

		_, err := uc.Update(context.Background(), "missing", usecase.MovieInput{Rating: ptr(5.0)})

		assert.ErrorIs(t, err, usecase.ErrMovieNotFound)
	})
}

func TestMovieUsecase_Delete_PropagatesNotFound(t *testing.T) {
	t.Parallel()

	repo := &mockMovieRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			return usecase.ErrMovieNotFound
		},
	}
	uc := usecase.NewMovieUsecase(repo)

	err := uc.Delete(context.Background(), "nope")

	assert.ErrorIs(t, err, usecase.ErrMovieNotFound)
}
