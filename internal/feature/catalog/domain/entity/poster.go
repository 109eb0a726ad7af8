package entity

// PosterCandidate is one search hit from an external movie database.
type PosterCandidate struct {
	Title       string // title or name, whichever the source provides
	ReleaseDate string // "YYYY-MM-DD" or empty
	PosterPath  string // path relative to the image CDN, empty when the source has none
}

// Year returns the four-digit year of ReleaseDate, or "".
func (c PosterCandidate) Year() string {
	if len(c.ReleaseDate) < 4 {
		return ""
	}
	return c.ReleaseDate[:4]
}
