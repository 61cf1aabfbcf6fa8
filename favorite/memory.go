package favorite

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory Repository used in tests and local
// development. It mirrors the persistence adapter's semantics, including
// the uniqueness constraint on (UserID, MovieID).
type MemoryRepository struct {
	mu        sync.Mutex
	favorites []Favorite
	nextID    int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) Exists(_ context.Context, userID int64, movieID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.favorites {
		if f.UserID == userID && f.MovieID == movieID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) Create(_ context.Context, f Favorite) (Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.favorites {
		if existing.UserID == f.UserID && existing.MovieID == f.MovieID {
			return Favorite{}, ErrAlreadyFavorited
		}
	}

	f.ID = r.nextID
	r.nextID++
	r.favorites = append(r.favorites, f)
	return f, nil
}

func (r *MemoryRepository) Delete(_ context.Context, userID int64, movieID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, f := range r.favorites {
		if f.UserID == userID && f.MovieID == movieID {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return nil
		}
	}
	// Absent pair: deletion is idempotent at this layer.
	return nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID int64, genreID *int) ([]Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]Favorite, 0)
	for _, f := range r.favorites {
		if f.UserID != userID {
			continue
		}
		if genreID != nil && !f.HasGenre(*genreID) {
			continue
		}
		result = append(result, f)
	}
	return result, nil
}
