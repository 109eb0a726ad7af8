package entity

// SortOrder selects the ordering of a movie listing.
type SortOrder string

const (
	SortNewest     SortOrder = "newest" // createdAt descending; also the fallback
	SortRatingDesc SortOrder = "rating-desc"
	SortRatingAsc  SortOrder = "rating-asc"
	SortYearDesc   SortOrder = "year-desc"
	SortYearAsc    SortOrder = "year-asc"
	SortTitle      SortOrder = "title"
)

// ParseSortOrder maps a sortBy query value to a SortOrder.
// Unknown or empty values fall back to SortNewest.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortRatingDesc, SortRatingAsc, SortYearDesc, SortYearAsc, SortTitle:
		return SortOrder(s)
	default:
		return SortNewest
	}
}

// MovieQuery describes a catalog listing request.
//
// Search matches a case-insensitive substring of title, director or description.
// Genre matches exact membership in the genre list. Both are ANDed when set.
// Limit <= 0 means unbounded. Ties within the chosen sort key come back in
// whatever order the store yields; callers must not rely on it.
type MovieQuery struct {
	Search string
	Genre  string
	Sort   SortOrder
	Limit  int
	Offset int
}
