// Package dto holds the TMDB wire types.
package dto

// SearchResponse is the body of /search/movie and /search/multi.
type SearchResponse struct {
	Page    int            `json:"page"`
	Results []SearchResult `json:"results"`
	// set on error responses
	StatusMessage string `json:"status_message"`
}

// SearchResult is one hit. Movies carry title/release_date, TV results name/first_air_date.
type SearchResult struct {
	ID           int    `json:"id"`
	MediaType    string `json:"media_type"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	ReleaseDate  string `json:"release_date"`
	FirstAirDate string `json:"first_air_date"`
	PosterPath   string `json:"poster_path"`
}
