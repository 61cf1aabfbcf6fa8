package catalog

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"cinefav/cache"
)

// TTLs per operation. Genre and detail payloads change rarely upstream;
// search results churn with new releases.
const (
	searchTTL  = time.Hour
	genresTTL  = 24 * time.Hour
	detailsTTL = 24 * time.Hour
)

// Service is the caller-facing contract of the catalog access layer.
type Service interface {
	Search(ctx context.Context, query string) ([]Movie, error)
	Genres(ctx context.Context) ([]Genre, error)
	Details(ctx context.Context, movieID int) (MovieDetails, error)
}

// Provider abstracts the external catalog. A call may perform one network
// round-trip; there are no retries at this layer. An empty search result
// is a valid empty slice, never an error.
type Provider interface {
	SearchMovies(ctx context.Context, query string) ([]Movie, error)
	GetGenres(ctx context.Context) ([]Genre, error)
	GetMovieDetails(ctx context.Context, movieID int) (MovieDetails, error)
}

// Usecase wraps Provider calls through the response cache. Only
// successful responses are cached; provider failures, including
// ErrMovieNotFound, always propagate and leave the cache untouched.
type Usecase struct {
	p Provider
	c *cache.Cache
}

func NewUsecase(p Provider, c *cache.Cache) *Usecase {
	return &Usecase{p: p, c: c}
}

// Search looks up movies by title. An empty query short-circuits to an
// empty result without touching the provider or the cache.
func (uc *Usecase) Search(ctx context.Context, query string) ([]Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Movie{}, nil
	}

	var movies []Movie
	err := uc.cached(ctx, cache.Key("search", query), searchTTL, &movies, func() (interface{}, error) {
		return uc.p.SearchMovies(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []Movie{}
	}
	return movies, nil
}

// Genres lists the catalog's genres.
func (uc *Usecase) Genres(ctx context.Context) ([]Genre, error) {
	var genres []Genre
	err := uc.cached(ctx, cache.Key("genres"), genresTTL, &genres, func() (interface{}, error) {
		return uc.p.GetGenres(ctx)
	})
	if err != nil {
		return nil, err
	}
	if genres == nil {
		genres = []Genre{}
	}
	return genres, nil
}

// Details fetches the full payload for one movie.
func (uc *Usecase) Details(ctx context.Context, movieID int) (MovieDetails, error) {
	var details MovieDetails
	err := uc.cached(ctx, cache.Key("details", strconv.Itoa(movieID)), detailsTTL, &details, func() (interface{}, error) {
		return uc.p.GetMovieDetails(ctx, movieID)
	})
	if err != nil {
		return MovieDetails{}, err
	}
	return details, nil
}

// cached round-trips value through the cache as JSON so that repeated
// identical requests decode bit-identical payloads.
func (uc *Usecase) cached(ctx context.Context, key string, ttl time.Duration, value interface{}, fetch func() (interface{}, error)) error {
	data, err := uc.c.GetOrCompute(ctx, key, ttl, func() ([]byte, error) {
		result, err := fetch()
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(data, value)
}
