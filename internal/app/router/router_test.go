package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie_backend/internal/app/di"
	"movie_backend/internal/app/router"
	authadapters "movie_backend/internal/feature/auth/adapters"
	authhandler "movie_backend/internal/feature/auth/transport/handler"
	authusecase "movie_backend/internal/feature/auth/usecase"
	catalogadapters "movie_backend/internal/feature/catalog/adapters"
	"movie_backend/internal/feature/catalog/domain/entity"
	cataloghandler "movie_backend/internal/feature/catalog/transport/handler"
	catalogusecase "movie_backend/internal/feature/catalog/usecase"
	"movie_backend/internal/platform/db"
	jwtmw "movie_backend/internal/platform/jwt"
	"movie_backend/internal/platform/metrics"
)

const testSecret = "router-test-secret"

type testServer struct {
	engine *gin.Engine
	store  *di.Store
}

// newTestServer はインメモリSQLite上に全ルートを組み立てます。
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.Open(context.Background(), db.Config{
		Driver:     db.DriverSQLite,
		SQLitePath: ":memory:",
	}, catalogadapters.MigrateMovies, authadapters.MigrateUsers)
	require.NoError(t, err)
	store := di.NewGormStore(gdb)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	m := metrics.New()
	movies := catalogusecase.NewMovieUsecase(metrics.NewInstrumentedMovieRepository(m, store.Movies))
	auth := authusecase.NewAuthUsecase(
		metrics.NewInstrumentedUserRepository(m, store.Users),
		jwtmw.NewGenerator(testSecret, time.Hour),
	)

	engine := router.NewRouter(router.Deps{
		BasePath:       "/api",
		Auth:           authhandler.NewAuthHandler(auth),
		Movies:         cataloghandler.NewMovieHandler(movies),
		Verifier:       jwtmw.NewVerifier(testSecret),
		AllowedOrigins: []string{"http://localhost:3000"},
		Metrics:        m,
	})
	return &testServer{engine: engine, store: store}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// seed inserts movies directly through the repository; the i-th movie is created i minutes after base.
func (s *testServer) seed(t *testing.T, movies ...entity.Movie) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range movies {
		mv := movies[i]
		mv.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.store.Movies.Create(context.Background(), &mv))
	}
}

func movie(title, director, description string, year int, rating float64, genres ...string) entity.Movie {
	return entity.Movie{
		Title:       title,
		Description: description,
		ReleaseYear: year,
		Genre:       genres,
		Rating:      rating,
		PosterURL:   "https://image.tmdb.org/t/p/w500/" + strings.ReplaceAll(title, " ", ""),
		Director:    director,
		Duration:    120,
	}
}

func catalog() []entity.Movie {
	return []entity.Movie{
		movie("The Matrix", "Wachowski", "A hacker learns the truth.", 1999, 8.7, "Sci-Fi", "Action"),
		movie("Heat", "Michael Mann", "A heist in Los Angeles.", 1995, 8.3, "Crime", "Action"),
		movie("Amelie", "Jean-Pierre Jeunet", "A shy waitress in Paris.", 2001, 8.3, "Romance", "Comedy"),
		movie("Inception", "Christopher Nolan", "Dreams within dreams.", 2010, 8.8, "Sci-Fi", "Thriller"),
	}
}

type listBody struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    []struct {
		ID          string   `json:"_id"`
		Title       string   `json:"title"`
		ReleaseYear int      `json:"releaseYear"`
		Rating      float64  `json:"rating"`
		Genre       []string `json:"genre"`
		CreatedAt   string   `json:"createdAt"`
	} `json:"data"`
}

type movieBody struct {
	Data struct {
		ID        string    `json:"_id"`
		Title     string    `json:"title"`
		Rating    float64   `json:"rating"`
		CreatedAt time.Time `json:"createdAt"`
	} `json:"data"`
}

func (s *testServer) list(t *testing.T, query string) listBody {
	t.Helper()
	w := s.do(t, http.MethodGet, "/api/movies"+query, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body listBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, len(body.Data), body.Count)
	return body
}

func titles(b listBody) []string {
	out := make([]string, 0, len(b.Data))
	for _, d := range b.Data {
		out = append(out, d.Title)
	}
	return out
}

func (s *testServer) signup(t *testing.T, username, email string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username, "email": email, "password": "pa55word",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Server is running"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestListMovies_Filters(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, catalog()...)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"search matches director case-insensitively", "?search=wachowski", []string{"The Matrix"}},
		{"search matches description", "?search=PARIS", []string{"Amelie"}},
		{"search is literal, not a pattern", "?search=.*", []string{}},
		{"genre is exact", "?genre=Sci-Fi&sortBy=title", []string{"Inception", "The Matrix"}},
		{"genre is case-sensitive", "?genre=sci-fi", []string{}},
		{"genre with no members", "?genre=Drama", []string{}},
		{"search and genre combine", "?search=the&genre=Action", []string{"The Matrix"}},
		{"whitespace-only search still filters", "?search=%20%20", []string{}},
		{"leading space is part of the substring", "?search=%20Heat", []string{}},
		{"trailing space is part of the substring", "?search=Matrix%20", []string{}},
		{"inner space matches literally", "?search=the%20truth", []string{"The Matrix"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(s.list(t, tt.query))
			if len(tt.want) > 1 {
				assert.Equal(t, tt.want, got)
			} else {
				assert.ElementsMatch(t, tt.want, got)
			}
		})
	}
}

func TestListMovies_Sorting(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, catalog()...)

	t.Run("rating-desc is non-increasing", func(t *testing.T) {
		b := s.list(t, "?sortBy=rating-desc")
		require.Len(t, b.Data, 4)
		for i := 1; i < len(b.Data); i++ {
			assert.GreaterOrEqual(t, b.Data[i-1].Rating, b.Data[i].Rating)
		}
	})

	t.Run("year-asc is non-decreasing", func(t *testing.T) {
		assert.Equal(t, []string{"Heat", "The Matrix", "Amelie", "Inception"}, titles(s.list(t, "?sortBy=year-asc")))
	})

	t.Run("default is newest first", func(t *testing.T) {
		assert.Equal(t, []string{"Inception", "Amelie", "Heat", "The Matrix"}, titles(s.list(t, "")))
	})

	t.Run("unknown sort falls back to newest first", func(t *testing.T) {
		assert.Equal(t, "Inception", s.list(t, "?sortBy=bogus").Data[0].Title)
	})

	t.Run("pagination is opt-in", func(t *testing.T) {
		b := s.list(t, "?sortBy=year-asc&limit=2&offset=1")
		assert.Equal(t, []string{"The Matrix", "Amelie"}, titles(b))
		assert.Equal(t, 2, b.Count)
	})
}

func TestGenres_SortedUnion(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, catalog()...)

	w := s.do(t, http.MethodGet, "/api/movies/genres/list", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool     `json:"success"`
		Data    []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	want := []string{"Action", "Comedy", "Crime", "Romance", "Sci-Fi", "Thriller"}
	assert.True(t, body.Success)
	assert.Equal(t, want, body.Data)
	assert.True(t, sort.StringsAreSorted(body.Data))
}

func TestGetMovie_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, catalog()[0])

	for _, id := range []string{"0b0c9a37-1d51-4a38-9cf2-ffffffffffff", "not-a-valid-id", "507f1f77bcf86cd799439011"} {
		w := s.do(t, http.MethodGet, "/api/movies/"+id, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, id)
		assert.JSONEq(t, `{"message":"Movie not found"}`, w.Body.String())
	}

	id := s.list(t, "").Data[0].ID
	w := s.do(t, http.MethodGet, "/api/movies/"+id, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"The Matrix"`)
}

func TestSignup_DuplicateEmailCreatesNothing(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "neo", "neo@example.com")

	w := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "thomas", "email": "NEO@example.com ", "password": "x",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"User already exists"}`, w.Body.String())
	exists, err := s.store.Users.ExistsByEmailOrUsername(context.Background(), "nobody@example.com", "thomas")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSignup_PlanField(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		plan       any
		wantStatus int
		wantPlan   string
		wantMsg    string
	}{
		{name: "absent plan defaults to free", plan: nil, wantStatus: http.StatusCreated, wantPlan: "free"},
		{name: "paid plan is stored", plan: "premium", wantStatus: http.StatusCreated, wantPlan: "premium"},
		{name: "unknown plan", plan: "gold", wantStatus: http.StatusBadRequest, wantMsg: "Invalid subscription plan"},
		{name: "explicit free is rejected", plan: "free", wantStatus: http.StatusBadRequest, wantMsg: "Invalid subscription plan"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := map[string]any{
				"username": fmt.Sprintf("user%d", i),
				"email":    fmt.Sprintf("user%d@example.com", i),
				"password": "pa55word",
			}
			if tt.plan != nil {
				body["plan"] = tt.plan
			}

			w := s.do(t, http.MethodPost, "/api/auth/signup", "", body)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantMsg != "" {
				assert.JSONEq(t, `{"message":"`+tt.wantMsg+`"}`, w.Body.String())
				exists, err := s.store.Users.ExistsByEmailOrUsername(context.Background(), body["email"].(string), body["username"].(string))
				require.NoError(t, err)
				assert.False(t, exists, "rejected signup creates no account")
				return
			}
			var res struct {
				User struct {
					SubscriptionPlan string `json:"subscriptionPlan"`
				} `json:"user"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, tt.wantPlan, res.User.SubscriptionPlan)
		})
	}
}

func TestSignup_LongPasswordIsBadRequest(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "oracle", "email": "oracle@example.com", "password": strings.Repeat("p", 80),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Password must be at most 72 bytes"}`, w.Body.String())
}

func TestLogin_NoEnumerationLeak(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "trinity", "trinity@example.com")

	wrongPassword := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "trinity@example.com", "password": "nope",
	})
	unknownEmail := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ghost@example.com", "password": "nope",
	})
	ok := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "Trinity@Example.com", "password": "pa55word",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.NotContains(t, ok.Body.String(), "password")
}

func TestProtectedWrites(t *testing.T) {
	s := newTestServer(t)
	newMovie := map[string]any{
		"title":       "Blade Runner",
		"description": "Replicants on the run.",
		"releaseYear": 1982,
		"genre":       []string{"Sci-Fi"},
		"rating":      8.1,
		"posterUrl":   "https://image.tmdb.org/t/p/w500/br.jpg",
		"director":    "Ridley Scott",
		"cast":        []string{"Harrison Ford"},
		"duration":    117,
	}

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtmw.Claims{
		UserID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/movies", "", newMovie)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"No token provided"}`, w.Body.String())
	})
	for name, token := range map[string]string{"garbage token": "not.a.jwt", "expired token": expired} {
		t.Run(name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/movies", token, newMovie)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"message":"Invalid token"}`, w.Body.String())
		})
	}
	assert.Equal(t, 0, s.list(t, "").Count, "rejected writes create nothing")

	token := s.signup(t, "morpheus", "morpheus@example.com")

	w := s.do(t, http.MethodPost, "/api/movies", token, newMovie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created movieBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.ID
	require.NotEmpty(t, id)

	w = s.do(t, http.MethodPut, "/api/movies/"+id, token, map[string]any{"rating": 9.0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated movieBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, id, updated.Data.ID)
	assert.Equal(t, 9.0, updated.Data.Rating)
	assert.Equal(t, "Blade Runner", updated.Data.Title)
	assert.True(t, created.Data.CreatedAt.Equal(updated.Data.CreatedAt), "createdAt is immutable")

	w = s.do(t, http.MethodPut, "/api/movies/"+id, token, map[string]any{"rating": 11})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, "/api/movies/"+id, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Movie deleted successfully"}`, w.Body.String())

	w = s.do(t, http.MethodDelete, "/api/movies/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodPut, "/api/movies/"+id, token, map[string]any{"rating": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.list(t, "")

	w := s.do(t, http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/api/movies",status="200"} 1`)
	assert.Contains(t, w.Body.String(), `store_operations_total{operation="list",outcome="ok",repository="movies"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Route not found"}`, w.Body.String())
}
