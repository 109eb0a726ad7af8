package usecase

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"movie_backend/internal/feature/catalog/domain/entity"
	"movie_backend/internal/shared/ratelimiter"
)

// Search kinds understood by a PosterSearcher.
const (
	SearchMovie = "movie"
	SearchMulti = "multi"
)

// PosterSearcher queries an external movie database.
type PosterSearcher interface {
	Search(ctx context.Context, kind, query string) ([]entity.PosterCandidate, error)
}

// PosterUsecase refreshes dataset poster URLs from an external movie database.
type PosterUsecase struct {
	search      PosterSearcher
	rateLimiter ratelimiter.RateLimiterInterface
	imageBase   string
	imageOrigin string // scheme://host of imageBase
}

// NewPosterUsecase creates a PosterUsecase. imageBase is prefixed to every poster path.
func NewPosterUsecase(search PosterSearcher, rateLimiter ratelimiter.RateLimiterInterface, imageBase string) *PosterUsecase {
	u := &PosterUsecase{search: search, rateLimiter: rateLimiter, imageBase: strings.TrimRight(imageBase, "/")}
	if parsed, err := url.Parse(u.imageBase); err == nil && parsed.Host != "" {
		u.imageOrigin = parsed.Scheme + "://" + parsed.Host
	}
	return u
}

// RefreshPosters updates PosterURL in place for every movie a poster was found for.
// Movies already pointing at the image CDN are skipped without a lookup, and
// movies without a hit keep their existing poster. It returns the number updated.
func (u *PosterUsecase) RefreshPosters(ctx context.Context, movies []entity.Movie) int {
	updated := 0
	for i := range movies {
		if ctx.Err() != nil {
			break
		}
		m := &movies[i]
		if u.imageOrigin != "" && strings.HasPrefix(m.PosterURL, u.imageOrigin+"/") {
			slog.Info("already has a CDN poster", "title", m.Title)
			continue
		}
		poster, ok := u.FindPoster(ctx, m)
		if !ok {
			slog.Info("no poster found, keeping existing", "title", m.Title)
			continue
		}
		m.PosterURL = poster
		updated++
		slog.Info("updated poster", "title", m.Title)
	}
	return updated
}

// FindPoster tries the movie search strategies in order, then a multi search on the title.
func (u *PosterUsecase) FindPoster(ctx context.Context, m *entity.Movie) (string, bool) {
	year := ""
	if m.ReleaseYear > 0 {
		year = strconv.Itoa(m.ReleaseYear)
	}
	for _, q := range searchQueries(m, year) {
		if poster, ok := u.try(ctx, SearchMovie, q, m.Title, year); ok {
			return poster, true
		}
	}
	return u.try(ctx, SearchMulti, m.Title, m.Title, year)
}

func (u *PosterUsecase) try(ctx context.Context, kind, query, title, year string) (string, bool) {
	u.rateLimiter.WaitIfNeeded()
	results, err := u.search.Search(ctx, kind, query)
	if err != nil {
		slog.Warn("poster search failed", "kind", kind, "query", query, "error", err)
		return "", false
	}
	best, ok := chooseBest(results, title, year)
	if !ok || best.PosterPath == "" {
		return "", false
	}
	return u.imageBase + best.PosterPath, true
}

func searchQueries(m *entity.Movie, year string) []string {
	qs := []string{
		strings.TrimSpace(m.Title + " " + year),
		m.Title,
	}
	if fields := strings.Fields(m.Director); len(fields) > 0 {
		qs = append(qs, m.Title+" "+fields[len(fields)-1])
	}
	out := qs[:0]
	for _, q := range qs {
		if strings.TrimSpace(q) != "" {
			out = append(out, q)
		}
	}
	return out
}

// chooseBest prefers an exact normalized title with matching year, then an exact title,
// then a substring match either way, then the first result.
func chooseBest(results []entity.PosterCandidate, title, year string) (entity.PosterCandidate, bool) {
	if len(results) == 0 {
		return entity.PosterCandidate{}, false
	}
	want := normalizeTitle(title)
	var exact *entity.PosterCandidate
	for i := range results {
		r := &results[i]
		name := normalizeTitle(r.Title)
		if name == want && year != "" && r.Year() == year {
			return *r, true
		}
		if name == want && exact == nil {
			exact = r
		}
	}
	if exact != nil {
		return *exact, true
	}
	for _, r := range results {
		name := normalizeTitle(r.Title)
		if name != "" && (strings.Contains(name, want) || strings.Contains(want, name)) {
			return r, true
		}
	}
	return results[0], true
}

// normalizeTitle lower-cases s and drops everything but ASCII letters and digits.
func normalizeTitle(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
