// Package favorite owns the per-user set of bookmarked catalog movies.
package favorite

import (
	"time"

	"cinefav/errs"
)

var (
	// ErrAlreadyFavorited guards duplicate adds of the same (user, movie)
	// pair. Recoverable by the user.
	ErrAlreadyFavorited = errs.Errorf(errs.ECONFLICT, "Filme já está nos favoritos.")

	// ErrNotFavorited guards removal of a pair that was never added.
	ErrNotFavorited = errs.Errorf(errs.ENOTFOUND, "Filme não está nos favoritos.")
)

// Favorite is one user's bookmarking of one movie, with denormalized
// display metadata taken from the catalog at add time. At most one
// Favorite exists per (UserID, MovieID) pair; rows are never mutated,
// only created and deleted.
type Favorite struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	MovieID       int       `json:"movie_id"`
	MovieTitle    string    `json:"movie_title"`
	OriginalTitle string    `json:"original_title"`
	Overview      string    `json:"overview"`
	PosterPath    string    `json:"poster_path"`
	ReleaseDate   string    `json:"release_date"`
	GenreIDs      []int     `json:"genre_ids"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasGenre reports whether genreID appears in the favorite's genre list.
func (f Favorite) HasGenre(genreID int) bool {
	for _, id := range f.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}
