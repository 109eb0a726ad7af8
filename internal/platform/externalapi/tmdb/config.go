// Package tmdb provides a client for The Movie Database search API.
package tmdb

import "time"

// Config holds configuration for the TMDB API client.
type Config struct {
	APIKey    string        `env:"TMDB_KEY,required"`
	BaseURL   string        `env:"TMDB_BASE_URL" envDefault:"https://api.themoviedb.org/3"`
	ImageBase string        `env:"TMDB_IMAGE_BASE" envDefault:"https://image.tmdb.org/t/p/w500"`
	Timeout   time.Duration `env:"TMDB_TIMEOUT" envDefault:"10s"`
	// RequestsPerSecond throttles outbound calls; the free tier tolerates a few per second.
	RequestsPerSecond int `env:"TMDB_REQUESTS_PER_SECOND" envDefault:"3"`
}
