// Package dto defines data transfer objects for the catalog feature's HTTP transport layer.
package dto

import (
	"time"

	"movie_backend/internal/feature/catalog/domain/entity"
	"movie_backend/internal/feature/catalog/usecase"
)

// MovieReq is the body of POST /movies and PUT /movies/:id.
// Absent fields stay nil so that updates only touch what the client sent.
type MovieReq struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	ReleaseYear *int     `json:"releaseYear"`
	Genre       []string `json:"genre"`
	Rating      *float64 `json:"rating"`
	PosterURL   *string  `json:"posterUrl"`
	Director    *string  `json:"director"`
	Cast        []string `json:"cast"`
	Duration    *int     `json:"duration"`
	StreamURL   *string  `json:"streamUrl"`
}

// ToInput converts the request into a usecase input.
func (r MovieReq) ToInput() usecase.MovieInput {
	return usecase.MovieInput{
		Title:       r.Title,
		Description: r.Description,
		ReleaseYear: r.ReleaseYear,
		Genre:       r.Genre,
		Rating:      r.Rating,
		PosterURL:   r.PosterURL,
		Director:    r.Director,
		Cast:        r.Cast,
		Duration:    r.Duration,
		StreamURL:   r.StreamURL,
	}
}

// MovieRes is the public projection of a movie.
type MovieRes struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReleaseYear int       `json:"releaseYear"`
	Genre       []string  `json:"genre"`
	Rating      float64   `json:"rating"`
	PosterURL   string    `json:"posterUrl"`
	Director    string    `json:"director"`
	Cast        []string  `json:"cast"`
	Duration    int       `json:"duration"`
	StreamURL   string    `json:"streamUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewMovieRes projects m. Slices are never encoded as null.
func NewMovieRes(m *entity.Movie) MovieRes {
	genre := m.Genre
	if genre == nil {
		genre = []string{}
	}
	cast := m.Cast
	if cast == nil {
		cast = []string{}
	}
	return MovieRes{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		Genre:       genre,
		Rating:      m.Rating,
		PosterURL:   m.PosterURL,
		Director:    m.Director,
		Cast:        cast,
		Duration:    m.Duration,
		StreamURL:   m.StreamURL,
		CreatedAt:   m.CreatedAt,
	}
}

// MovieListRes is the body of GET /movies. Count is the number of items in Data.
type MovieListRes struct {
	Success bool       `json:"success"`
	Count   int        `json:"count"`
	Data    []MovieRes `json:"data"`
}

// MovieDataRes wraps a single movie.
type MovieDataRes struct {
	Success bool     `json:"success"`
	Data    MovieRes `json:"data"`
}

// GenreListRes is the body of GET /movies/genres/list.
type GenreListRes struct {
	Success bool     `json:"success"`
	Data    []string `json:"data"`
}

// SuccessMessageRes acknowledges a write that returns no data.
type SuccessMessageRes struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorRes is the body of every error response.
type ErrorRes struct {
	Message string `json:"message"`
}
