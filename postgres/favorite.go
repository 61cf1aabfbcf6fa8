package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinefav/favorite"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// FavoriteModel represents the database model for favorites.
// genre_ids holds the provider's genre id list serialized as a JSON array.
type FavoriteModel struct {
	ID            int64  `gorm:"primaryKey"`
	UserID        int64  `gorm:"column:user_id;not null;uniqueIndex:favorites_user_movie_key"`
	MovieID       int    `gorm:"column:movie_id;not null;uniqueIndex:favorites_user_movie_key"`
	MovieTitle    string `gorm:"not null"`
	OriginalTitle string
	Overview      string
	PosterPath    string
	ReleaseDate   string
	GenreIDs      string    `gorm:"column:genre_ids;not null;default:'[]'"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for GORM.
func (FavoriteModel) TableName() string {
	return "favorites"
}

// FavoriteRepository implements favorite.Repository. The composite unique
// index on (user_id, movie_id) is the authoritative duplicate guard; the
// service-level exists check only produces the fast-path error.
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository.
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Exists reports whether the (userID, movieID) pair is present.
func (r *FavoriteRepository) Exists(ctx context.Context, userID int64, movieID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FavoriteModel{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new favorite and returns it with its assigned id.
func (r *FavoriteRepository) Create(ctx context.Context, f favorite.Favorite) (favorite.Favorite, error) {
	model, err := toModelFavorite(f)
	if err != nil {
		return favorite.Favorite{}, err
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicatePairError(err) {
			return favorite.Favorite{}, favorite.ErrAlreadyFavorited
		}
		return favorite.Favorite{}, err
	}
	return toDomainFavorite(model)
}

// Delete removes the matching row. An absent pair is a no-op.
func (r *FavoriteRepository) Delete(ctx context.Context, userID int64, movieID int) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&FavoriteModel{}).Error
}

// ListByUser fetches the user's favorites in insertion order. When
// genreID is set, only favorites whose genre list contains it are kept;
// the filter runs after deserialization since genre_ids is a JSON column.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64, genreID *int) ([]favorite.Favorite, error) {
	var models []FavoriteModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	favorites := make([]favorite.Favorite, 0, len(models))
	for _, model := range models {
		f, err := toDomainFavorite(model)
		if err != nil {
			return nil, err
		}
		if genreID != nil && !f.HasGenre(*genreID) {
			continue
		}
		favorites = append(favorites, f)
	}
	return favorites, nil
}

func toDomainFavorite(model FavoriteModel) (favorite.Favorite, error) {
	var genreIDs []int
	if model.GenreIDs != "" {
		if err := json.Unmarshal([]byte(model.GenreIDs), &genreIDs); err != nil {
			return favorite.Favorite{}, fmt.Errorf("decode genre_ids for favorite %d: %w", model.ID, err)
		}
	}
	if genreIDs == nil {
		genreIDs = []int{}
	}

	return favorite.Favorite{
		ID:            model.ID,
		UserID:        model.UserID,
		MovieID:       model.MovieID,
		MovieTitle:    model.MovieTitle,
		OriginalTitle: model.OriginalTitle,
		Overview:      model.Overview,
		PosterPath:    model.PosterPath,
		ReleaseDate:   model.ReleaseDate,
		GenreIDs:      genreIDs,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}, nil
}

func toModelFavorite(f favorite.Favorite) (FavoriteModel, error) {
	genreIDs := f.GenreIDs
	if genreIDs == nil {
		genreIDs = []int{}
	}
	encoded, err := json.Marshal(genreIDs)
	if err != nil {
		return FavoriteModel{}, fmt.Errorf("encode genre_ids: %w", err)
	}

	return FavoriteModel{
		ID:            f.ID,
		UserID:        f.UserID,
		MovieID:       f.MovieID,
		MovieTitle:    f.MovieTitle,
		OriginalTitle: f.OriginalTitle,
		Overview:      f.Overview,
		PosterPath:    f.PosterPath,
		ReleaseDate:   f.ReleaseDate,
		GenreIDs:      string(encoded),
	}, nil
}

func isDuplicatePairError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && strings.Contains(strings.ToLower(pqErr.Constraint), "user_movie")
	}
	return false
}
