package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinefav/catalog"
	"cinefav/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTMDB creates a test server that simulates the TMDB API.
func mockTMDB(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_SearchMovies(t *testing.T) {
	t.Run("returns mapped results and sends api key", func(t *testing.T) {
		var gotQuery, gotKey string
		server := mockTMDB(t, map[string]http.HandlerFunc{
			"/search/movie": func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query().Get("query")
				gotKey = r.URL.Query().Get("api_key")
				writeJSON(t, w, searchResponse{
					Page: 1,
					Results: []movieResponse{
						{ID: 27205, Title: "Inception", OriginalTitle: "Inception", ReleaseDate: "2010-07-16", GenreIDs: []int{28, 878, 53}},
						{ID: 12345, Title: "Inception: The Dream", ReleaseDate: "2020-01-01"},
					},
				})
			},
		})
		defer server.Close()

		client := New("test-key", WithBaseURL(server.URL))
		movies, err := client.SearchMovies(context.Background(), "Inception")

		require.NoError(t, err)
		assert.Equal(t, "Inception", gotQuery)
		assert.Equal(t, "test-key", gotKey)
		require.Len(t, movies, 2)
		assert.Equal(t, 27205, movies[0].ID)
		assert.Equal(t, []int{28, 878, 53}, movies[0].GenreIDs)
	})

	t.Run("empty result set is not an error", func(t *testing.T) {
		server := mockTMDB(t, map[string]http.HandlerFunc{
			"/search/movie": func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, searchResponse{Page: 1, Results: []movieResponse{}})
			},
		})
		defer server.Close()

		client := New("test-key", WithBaseURL(server.URL))
		movies, err := client.SearchMovies(context.Background(), "NonExistentMovie123")

		require.NoError(t, err)
		assert.NotNil(t, movies)
		assert.Empty(t, movies)
	})

	t.Run("non-2xx status surfaces as unavailable", func(t *testing.T) {
		server := mockTMDB(t, map[string]http.HandlerFunc{
			"/search/movie": func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		})
		defer server.Close()

		client := New("test-key", WithBaseURL(server.URL))
		_, err := client.SearchMovies(context.Background(), "Inception")

		assert.Equal(t, errs.EUNAVAILABLE, errs.ErrorCode(err))
	})

	t.Run("transport error surfaces as unavailable", func(t *testing.T) {
		server := mockTMDB(t, nil)
		server.Close()

		client := New("test-key", WithBaseURL(server.URL))
		_, err := client.SearchMovies(context.Background(), "Inception")

		assert.Equal(t, errs.EUNAVAILABLE, errs.ErrorCode(err))
	})
}

func TestClient_GetGenres(t *testing.T) {
	t.Run("returns genre list", func(t *testing.T) {
		server := mockTMDB(t, map[string]http.HandlerFunc{
			"/genre/movie/list": func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, genreListResponse{Genres: []genreResponse{
					{ID: 18, Name: "Drama"},
					{ID: 28, Name: "Action"},
				}})
			},
		})
		defer server.Close()

		client := New("test-key", WithBaseURL(server.URL))
		genres, err := client.GetGenres(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []catalog.Genre{{ID: 18, Name: "Drama"}, {ID: 28, Name: "Action"}}, genres)
	})

	t.Run("empty list is valid", func(t *testing.T) {
		server := mockTMDB(t, map[string]http.HandlerFunc{
			"/genre/movie/list": func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, genreListResponse{})
			},
		})
		defer server.Close()

		client := New("test-key", WithBaseURL(server.URL))
		genres, err := client.GetGenres(context.Background())

		require.NoError(t, err)
		assert.Empty(t, genres)
	})
}

func TestClient_GetMovieDetails(t *testing.T) {
	t.Run("returns mapped details", func(t *testing.T) {
		server := mockTMDB(t, map[string]http.HandlerFunc{
			"/movie/550": func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, movieResponse{
					ID:            550,
					Title:         "Fight Club",
					OriginalTitle: "Fight Club",
					Overview:      "A ticking-time-bomb insomniac...",
					PosterPath:    "/poster.jpg",
					ReleaseDate:   "1999-10-15",
					Genres:        []genreResponse{{ID: 18, Name: "Drama"}},
				})
			},
		})
		defer server.Close()

		client := New("test-key", WithBaseURL(server.URL))
		details, err := client.GetMovieDetails(context.Background(), 550)

		require.NoError(t, err)
		assert.Equal(t, 550, details.ID)
		assert.Equal(t, "Fight Club", details.Title)
		assert.Equal(t, []catalog.Genre{{ID: 18, Name: "Drama"}}, details.Genres)
	})

	t.Run("404 maps to catalog.ErrMovieNotFound", func(t *testing.T) {
		server := mockTMDB(t, nil)
		defer server.Close()

		client := New("test-key", WithBaseURL(server.URL))
		_, err := client.GetMovieDetails(context.Background(), 999999)

		assert.Equal(t, catalog.ErrMovieNotFound, err)
	})

	t.Run("other failures map to unavailable", func(t *testing.T) {
		server := mockTMDB(t, map[string]http.HandlerFunc{
			"/movie/550": func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		})
		defer server.Close()

		client := New("test-key", WithBaseURL(server.URL))
		_, err := client.GetMovieDetails(context.Background(), 550)

		assert.Equal(t, errs.EUNAVAILABLE, errs.ErrorCode(err))
	})

	t.Run("language option is forwarded", func(t *testing.T) {
		var gotLanguage string
		server := mockTMDB(t, map[string]http.HandlerFunc{
			"/movie/550": func(w http.ResponseWriter, r *http.Request) {
				gotLanguage = r.URL.Query().Get("language")
				writeJSON(t, w, movieResponse{ID: 550})
			},
		})
		defer server.Close()

		client := New("test-key", WithBaseURL(server.URL), WithLanguage("en-US"))
		_, err := client.GetMovieDetails(context.Background(), 550)

		require.NoError(t, err)
		assert.Equal(t, "en-US", gotLanguage)
	})
}
