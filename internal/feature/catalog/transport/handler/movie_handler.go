// Package handler provides the HTTP handlers for the catalog feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"movie_backend/internal/feature/catalog/domain/entity"
	"movie_backend/internal/feature/catalog/transport/http/dto"
	"movie_backend/internal/feature/catalog/usecase"
)

// MovieUsecase defines the catalog operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type MovieUsecase interface {
	List(ctx context.Context, q entity.MovieQuery) ([]entity.Movie, error)
	Get(ctx context.Context, id string) (*entity.Movie, error)
	Genres(ctx context.Context) ([]string, error)
	Create(ctx context.Context, in usecase.MovieInput) (*entity.Movie, error)
	Update(ctx context.Context, id string, in usecase.MovieInput) (*entity.Movie, error)
	Delete(ctx context.Context, id string) error
}

const (
	msgMovieNotFound = "Movie not found"
	msgInternal      = "Internal server error"
	msgInvalidBody   = "Invalid request body"
)

// MovieHandler serves the /movies endpoints.
type MovieHandler struct {
	movies MovieUsecase
}

// NewMovieHandler creates a MovieHandler.
func NewMovieHandler(movies MovieUsecase) *MovieHandler {
	return &MovieHandler{movies: movies}
}

// List handles GET /movies?search=&genre=&sortBy=&limit=&offset=.
// limit and offset are optional; values that are not non-negative integers are ignored.
func (h *MovieHandler) List(c *gin.Context) {
	q := entity.MovieQuery{
		Search: c.Query("search"),
		Genre:  c.Query("genre"),
		Sort:   entity.ParseSortOrder(c.Query("sortBy")),
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	}
	movies, err := h.movies.List(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err, "list movies")
		return
	}
	res := dto.MovieListRes{Success: true, Count: len(movies), Data: make([]dto.MovieRes, 0, len(movies))}
	for i := range movies {
		res.Data = append(res.Data, dto.NewMovieRes(&movies[i]))
	}
	c.JSON(http.StatusOK, res)
}

// Get handles GET /movies/:id.
func (h *MovieHandler) Get(c *gin.Context) {
	m, err := h.movies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "get movie")
		return
	}
	c.JSON(http.StatusOK, dto.MovieDataRes{Success: true, Data: dto.NewMovieRes(m)})
}

// Genres handles GET /movies/genres/list.
func (h *MovieHandler) Genres(c *gin.Context) {
	genres, err := h.movies.Genres(c.Request.Context())
	if err != nil {
		h.fail(c, err, "list genres")
		return
	}
	c.JSON(http.StatusOK, dto.GenreListRes{Success: true, Data: genres})
}

// Create handles POST /movies.
func (h *MovieHandler) Create(c *gin.Context) {
	var req dto.MovieReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create movie: bad body", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Message: msgInvalidBody})
		return
	}
	m, err := h.movies.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.fail(c, err, "create movie")
		return
	}
	slog.Info("movie created", "movie_id", m.ID, "user_id", c.GetString("userID"))
	c.JSON(http.StatusCreated, dto.MovieDataRes{Success: true, Data: dto.NewMovieRes(m)})
}

// Update handles PUT /movies/:id. Only the fields present in the body change.
func (h *MovieHandler) Update(c *gin.Context) {
	var req dto.MovieReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update movie: bad body", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Message: msgInvalidBody})
		return
	}
	m, err := h.movies.Update(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		h.fail(c, err, "update movie")
		return
	}
	slog.Info("movie updated", "movie_id", m.ID, "user_id", c.GetString("userID"))
	c.JSON(http.StatusOK, dto.MovieDataRes{Success: true, Data: dto.NewMovieRes(m)})
}

// Delete handles DELETE /movies/:id.
func (h *MovieHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.movies.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "delete movie")
		return
	}
	slog.Info("movie deleted", "movie_id", id, "user_id", c.GetString("userID"))
	c.JSON(http.StatusOK, dto.SuccessMessageRes{Success: true, Message: "Movie deleted successfully"})
}

// fail maps usecase errors onto the HTTP error taxonomy.
func (h *MovieHandler) fail(c *gin.Context, err error, op string) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		slog.Warn(op+" rejected", "problems", verr.Problems, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Message: strings.Join(verr.Problems, ", ")})
	case errors.Is(err, usecase.ErrMovieNotFound):
		slog.Warn(op+": not found", "movie_id", c.Param("id"), "remote_addr", c.ClientIP())
		c.JSON(http.StatusNotFound, dto.ErrorRes{Message: msgMovieNotFound})
	default:
		slog.Error(op+" failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Message: msgInternal})
	}
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
