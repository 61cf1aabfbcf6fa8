// Package tmdb implements catalog.Provider against The Movie Database
// v3 HTTP API.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"cinefav/catalog"
	"cinefav/errs"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// Client is a TMDB v3 API client. It performs one round-trip per call
// and does not retry; upstream failures propagate immediately.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLanguage sets the language sent on every request.
func WithLanguage(language string) Option {
	return func(c *Client) {
		c.language = language
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "tmdb")
	}
}

// New creates a TMDB client authenticated with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		language: "pt-BR",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchMovies searches movies by title. No matches is an empty slice.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]catalog.Movie, error) {
	start := time.Now()

	resp, err := c.get(ctx, "/search/movie", url.Values{"query": []string{query}})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, upstreamStatus(resp)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("tmdb: decode search response: %w", err)
	}

	movies := make([]catalog.Movie, 0, len(payload.Results))
	for _, item := range payload.Results {
		movies = append(movies, catalog.Movie{
			ID:            item.ID,
			Title:         item.Title,
			OriginalTitle: item.OriginalTitle,
			Overview:      item.Overview,
			PosterPath:    item.PosterPath,
			ReleaseDate:   item.ReleaseDate,
			GenreIDs:      item.GenreIDs,
		})
	}

	if c.log != nil {
		c.log.Debug("search completed", "query", query, "results", len(movies), "duration_ms", time.Since(start).Milliseconds())
	}

	return movies, nil
}

// GetGenres lists the movie genres the catalog currently provides.
func (c *Client) GetGenres(ctx context.Context) ([]catalog.Genre, error) {
	resp, err := c.get(ctx, "/genre/movie/list", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, upstreamStatus(resp)
	}

	var payload genreListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("tmdb: decode genre response: %w", err)
	}

	genres := make([]catalog.Genre, 0, len(payload.Genres))
	for _, g := range payload.Genres {
		genres = append(genres, catalog.Genre{ID: g.ID, Name: g.Name})
	}
	return genres, nil
}

// GetMovieDetails fetches one movie. An id the catalog does not know
// yields catalog.ErrMovieNotFound.
func (c *Client) GetMovieDetails(ctx context.Context, movieID int) (catalog.MovieDetails, error) {
	resp, err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), nil)
	if err != nil {
		return catalog.MovieDetails{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		if c.log != nil {
			c.log.Debug("movie not found", "movie_id", movieID)
		}
		return catalog.MovieDetails{}, catalog.ErrMovieNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return catalog.MovieDetails{}, upstreamStatus(resp)
	}

	var payload movieResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return catalog.MovieDetails{}, fmt.Errorf("tmdb: decode movie response: %w", err)
	}

	details := catalog.MovieDetails{
		ID:            payload.ID,
		Title:         payload.Title,
		OriginalTitle: payload.OriginalTitle,
		Overview:      payload.Overview,
		PosterPath:    payload.PosterPath,
		ReleaseDate:   payload.ReleaseDate,
		GenreIDs:      payload.GenreIDs,
	}
	for _, g := range payload.Genres {
		details.Genres = append(details.Genres, catalog.Genre{ID: g.ID, Name: g.Name})
	}
	return details, nil
}

// get performs an authenticated GET against endpoint.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("tmdb: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Errorf(errs.EUNAVAILABLE, "tmdb: request failed: %v", err)
	}
	return resp, nil
}

func upstreamStatus(resp *http.Response) error {
	return errs.Errorf(errs.EUNAVAILABLE, "tmdb: unexpected status %d", resp.StatusCode)
}
