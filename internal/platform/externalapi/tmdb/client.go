package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"movie_backend/internal/feature/catalog/domain/entity"
	"movie_backend/internal/feature/catalog/usecase"
	"movie_backend/internal/platform/externalapi/tmdb/dto"
)

// Client はTMDB検索APIを呼び出すPosterSearcher実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがPosterSearcherを実装していることをコンパイル時に検証します。
var _ usecase.PosterSearcher = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, client: client}
}

// Search runs /search/{kind} and returns the hits in API order.
// kind is usecase.SearchMovie or usecase.SearchMulti.
func (c *Client) Search(ctx context.Context, kind, query string) ([]entity.PosterCandidate, error) {
	if kind != usecase.SearchMovie && kind != usecase.SearchMulti {
		return nil, fmt.Errorf("tmdb: unsupported search kind %q", kind)
	}
	q := url.Values{}
	q.Set("api_key", c.cfg.APIKey)
	q.Set("query", query)
	q.Set("include_adult", "false")

	u := fmt.Sprintf("%s/search/%s?%s", c.cfg.BaseURL, kind, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		// drop the query string so the api key never reaches the logs
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = c.cfg.BaseURL + "/search/" + kind
		}
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	var body dto.SearchResponse
	if res.StatusCode >= 400 {
		// error bodies carry status_message; the key is never echoed
		_ = json.NewDecoder(res.Body).Decode(&body)
		return nil, fmt.Errorf("tmdb http %d: %s", res.StatusCode, body.StatusMessage)
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("tmdb: decode response: %w", err)
	}

	out := make([]entity.PosterCandidate, 0, len(body.Results))
	for _, r := range body.Results {
		if r.MediaType == "person" {
			continue
		}
		title, date := r.Title, r.ReleaseDate
		if title == "" {
			title = r.Name
		}
		if date == "" {
			date = r.FirstAirDate
		}
		out = append(out, entity.PosterCandidate{Title: title, ReleaseDate: date, PosterPath: r.PosterPath})
	}
	return out, nil
}
