// Package usecase implements the business logic for the catalog feature.
package usecase

import (
	"errors"
	"strings"
)

var (
	// ErrMovieNotFound is returned when no movie has the given id, including ids
	// that are not well-formed for the underlying store.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrInvalidMovie is the sentinel wrapped by every ValidationError.
	ErrInvalidMovie = errors.New("invalid movie")
)

// ValidationError lists the problems found on a movie write.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "movie validation failed: " + strings.Join(e.Problems, ", ")
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidMovie).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidMovie
}
