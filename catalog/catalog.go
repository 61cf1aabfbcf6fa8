// Package catalog is the access layer over the external movie catalog:
// title search, genre listing and detail lookup, with response caching.
package catalog

import "cinefav/errs"

// ErrMovieNotFound is returned when the external catalog confirms the
// referenced movie does not exist, as opposed to being unreachable.
var ErrMovieNotFound = errs.Errorf(errs.ENOTFOUND, "Filme não encontrado.")

// Movie is a search result summary.
type Movie struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	Overview      string `json:"overview"`
	PosterPath    string `json:"poster_path"`
	ReleaseDate   string `json:"release_date"`
	// GenreIDs keeps the provider's order; the source may repeat ids.
	GenreIDs []int `json:"genre_ids"`
}

// Genre is a catalog genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetails is the full detail payload for a single movie.
type MovieDetails struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	ReleaseDate   string  `json:"release_date"`
	Genres        []Genre `json:"genres"`
	GenreIDs      []int   `json:"genre_ids"`
}
