// Package entity defines the domain models for the catalog feature.
package entity

import "time"

// Movie is a single catalog entry.
// Genre order is display-relevant and must be preserved by every store.
type Movie struct {
	ID          string    // Store-assigned identifier (ObjectID hex or UUID)
	Title       string    `validate:"required"`
	Description string    `validate:"required"`
	ReleaseYear int       `validate:"required"`
	Genre       []string  `validate:"required,min=1,dive,required"`
	Rating      float64   `validate:"min=0,max=10"`
	PosterURL   string    `validate:"required"`
	Director    string    `validate:"required"`
	Cast        []string  `validate:"dive,required"`
	Duration    int       `validate:"required"` // minutes
	StreamURL   string    // optional
	CreatedAt   time.Time // set once at insertion
}

// HasGenre reports whether tag is one of the movie's genres (exact, case-sensitive).
func (m *Movie) HasGenre(tag string) bool {
	for _, g := range m.Genre {
		if g == tag {
			return true
		}
	}
	return false
}
