package di

import (
	"time"

	"movie_backend/internal/feature/catalog/usecase"
	"movie_backend/internal/platform/externalapi/tmdb"
	infrahttp "movie_backend/internal/platform/http"
	"movie_backend/internal/shared/ratelimiter"
)

// NewPosterUsecase creates a PosterUsecase backed by the TMDB client,
// throttled to cfg.RequestsPerSecond.
func NewPosterUsecase(cfg tmdb.Config) *usecase.PosterUsecase {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	client := tmdb.NewClient(cfg, httpClient)

	var limiter ratelimiter.RateLimiterInterface = ratelimiter.Unlimited{}
	if cfg.RequestsPerSecond > 0 {
		limiter = ratelimiter.NewRateLimiter(cfg.RequestsPerSecond, time.Second)
	}
	return usecase.NewPosterUsecase(client, limiter, cfg.ImageBase)
}
