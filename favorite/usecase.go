package favorite

import (
	"context"

	"cinefav/catalog"
)

// Service is the caller-facing contract of the favorites layer. Every
// operation is scoped by an explicit userID; there is no ambient acting
// user.
type Service interface {
	AddFavorite(ctx context.Context, userID int64, movieID int) (Favorite, error)
	RemoveFavorite(ctx context.Context, userID int64, movieID int) error
	ListFavorites(ctx context.Context, userID int64, genreID *int) ([]Favorite, error)
}

// Repository persists favorites. Create must refuse a duplicate
// (UserID, MovieID) pair with ErrAlreadyFavorited; that constraint is the
// authoritative duplicate guard, the usecase's Exists pre-check only
// produces the fast-path user-facing error. Delete of an absent pair is
// a no-op. ListByUser returns the user's favorites in insertion order,
// optionally restricted to those whose genre list contains genreID.
type Repository interface {
	Exists(ctx context.Context, userID int64, movieID int) (bool, error)
	Create(ctx context.Context, f Favorite) (Favorite, error)
	Delete(ctx context.Context, userID int64, movieID int) error
	ListByUser(ctx context.Context, userID int64, genreID *int) ([]Favorite, error)
}

// Usecase enforces the add/remove business rules on top of Repository,
// sourcing movie metadata from the catalog.
type Usecase struct {
	r       Repository
	catalog catalog.Service
}

func NewUsecase(r Repository, c catalog.Service) *Usecase {
	return &Usecase{r: r, catalog: c}
}

// AddFavorite bookmarks movieID for userID. It fails with
// ErrAlreadyFavorited when the pair is already present and with
// catalog.ErrMovieNotFound when the catalog does not know the movie.
func (uc *Usecase) AddFavorite(ctx context.Context, userID int64, movieID int) (Favorite, error) {
	exists, err := uc.r.Exists(ctx, userID, movieID)
	if err != nil {
		return Favorite{}, err
	}
	if exists {
		return Favorite{}, ErrAlreadyFavorited
	}

	details, err := uc.catalog.Details(ctx, movieID)
	if err != nil {
		return Favorite{}, err
	}

	return uc.r.Create(ctx, Favorite{
		UserID:        userID,
		MovieID:       details.ID,
		MovieTitle:    details.Title,
		OriginalTitle: details.OriginalTitle,
		Overview:      details.Overview,
		PosterPath:    details.PosterPath,
		ReleaseDate:   details.ReleaseDate,
		GenreIDs:      genreIDs(details),
	})
}

// RemoveFavorite drops the bookmark, failing with ErrNotFavorited when
// the pair is absent.
func (uc *Usecase) RemoveFavorite(ctx context.Context, userID int64, movieID int) error {
	exists, err := uc.r.Exists(ctx, userID, movieID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFavorited
	}

	return uc.r.Delete(ctx, userID, movieID)
}

// ListFavorites returns the user's favorites, optionally filtered by
// genre. An unknown user yields an empty list.
func (uc *Usecase) ListFavorites(ctx context.Context, userID int64, genreID *int) ([]Favorite, error) {
	return uc.r.ListByUser(ctx, userID, genreID)
}

// genreIDs prefers the flat id list when the provider sends one and
// falls back to the structured genre objects.
func genreIDs(d catalog.MovieDetails) []int {
	if len(d.GenreIDs) > 0 {
		return d.GenreIDs
	}
	ids := make([]int, 0, len(d.Genres))
	for _, g := range d.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}
