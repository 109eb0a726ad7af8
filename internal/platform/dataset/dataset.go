// Package dataset reads and writes the movie dataset file used by the seed and poster tools.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"movie_backend/internal/feature/catalog/domain/entity"
)

// record is one dataset entry. Field names match the API's movie projection.
type record struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ReleaseYear int        `json:"releaseYear"`
	Genre       []string   `json:"genre"`
	Rating      float64    `json:"rating"`
	PosterURL   string     `json:"posterUrl"`
	Director    string     `json:"director"`
	Cast        []string   `json:"cast"`
	Duration    int        `json:"duration"`
	StreamURL   string     `json:"streamUrl,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// Load reads the dataset at path.
func Load(path string) ([]entity.Movie, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Decode(raw)
}

// Decode parses a dataset document: a JSON array of movies.
func Decode(raw []byte) ([]entity.Movie, error) {
	var records []record
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	movies := make([]entity.Movie, 0, len(records))
	for _, r := range records {
		m := entity.Movie{
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
		if r.CreatedAt != nil {
			m.CreatedAt = *r.CreatedAt
		}
		movies = append(movies, m)
	}
	return movies, nil
}

// Save writes movies to path as indented JSON, replacing the file atomically.
func Save(path string, movies []entity.Movie) error {
	records := make([]record, 0, len(movies))
	for _, m := range movies {
		r := record{
			Title:       m.Title,
			Description: m.Description,
			ReleaseYear: m.ReleaseYear,
			Genre:       m.Genre,
			Rating:      m.Rating,
			PosterURL:   m.PosterURL,
			Director:    m.Director,
			Cast:        m.Cast,
			Duration:    m.Duration,
			StreamURL:   m.StreamURL,
		}
		if r.Cast == nil {
			r.Cast = []string{}
		}
		if !m.CreatedAt.IsZero() {
			t := m.CreatedAt
			r.CreatedAt = &t
		}
		records = append(records, r)
	}
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".movies-*.json")
	if err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}
