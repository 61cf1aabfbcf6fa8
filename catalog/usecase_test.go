package catalog_test

import (
	"context"
	"testing"

	"cinefav/cache"
	"cinefav/catalog"
	"cinefav/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) SearchMovies(ctx context.Context, query string) ([]catalog.Movie, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]catalog.Movie), args.Error(1)
}

func (m *MockProvider) GetGenres(ctx context.Context) ([]catalog.Genre, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Genre), args.Error(1)
}

func (m *MockProvider) GetMovieDetails(ctx context.Context, movieID int) (catalog.MovieDetails, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).(catalog.MovieDetails), args.Error(1)
}

func newUsecase(p catalog.Provider) *catalog.Usecase {
	return catalog.NewUsecase(p, cache.New(cache.NewMemoryStore(), nil))
}

func TestSearch(t *testing.T) {
	t.Run("should return provider results", func(t *testing.T) {
		p := new(MockProvider)
		uc := newUsecase(p)
		movies := []catalog.Movie{
			{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-16", GenreIDs: []int{28, 878, 53}},
			{ID: 12345, Title: "Inception: The Dream", ReleaseDate: "2020-01-01"},
		}
		p.On("SearchMovies", mock.Anything, "Inception").Return(movies, nil).Once()

		result, err := uc.Search(context.Background(), "Inception")

		require.NoError(t, err)
		assert.Equal(t, movies, result)
		p.AssertExpectations(t)
	})

	t.Run("should serve repeated query from cache", func(t *testing.T) {
		p := new(MockProvider)
		uc := newUsecase(p)
		movies := []catalog.Movie{{ID: 27205, Title: "Inception"}}
		p.On("SearchMovies", mock.Anything, "Inception").Return(movies, nil).Once()

		first, err := uc.Search(context.Background(), "Inception")
		require.NoError(t, err)
		second, err := uc.Search(context.Background(), "Inception")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		p.AssertNumberOfCalls(t, "SearchMovies", 1)
	})

	t.Run("should short-circuit empty query without calling provider", func(t *testing.T) {
		p := new(MockProvider)
		uc := newUsecase(p)

		result, err := uc.Search(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, []catalog.Movie{}, result)
		p.AssertNotCalled(t, "SearchMovies", mock.Anything, mock.Anything)
	})

	t.Run("should treat whitespace-only query as empty", func(t *testing.T) {
		p := new(MockProvider)
		uc := newUsecase(p)

		result, err := uc.Search(context.Background(), "   ")

		require.NoError(t, err)
		assert.Empty(t, result)
		p.AssertNotCalled(t, "SearchMovies", mock.Anything, mock.Anything)
	})

	t.Run("should return empty slice when provider has no matches", func(t *testing.T) {
		p := new(MockProvider)
		uc := newUsecase(p)
		p.On("SearchMovies", mock.Anything, "NonExistentMovie123").Return([]catalog.Movie{}, nil).Once()

		result, err := uc.Search(context.Background(), "NonExistentMovie123")

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("should not cache provider failures", func(t *testing.T) {
		p := new(MockProvider)
		uc := newUsecase(p)
		upstream := errs.Errorf(errs.EUNAVAILABLE, "catalog unreachable")
		p.On("SearchMovies", mock.Anything, "Inception").Return([]catalog.Movie(nil), upstream).Twice()

		_, err := uc.Search(context.Background(), "Inception")
		assert.Equal(t, errs.EUNAVAILABLE, errs.ErrorCode(err))

		_, err = uc.Search(context.Background(), "Inception")
		assert.Equal(t, errs.EUNAVAILABLE, errs.ErrorCode(err))
		p.AssertNumberOfCalls(t, "SearchMovies", 2)
	})
}

func TestGenres(t *testing.T) {
	t.Run("should return and cache genre list", func(t *testing.T) {
		p := new(MockProvider)
		uc := newUsecase(p)
		genres := []catalog.Genre{{ID: 18, Name: "Drama"}, {ID: 28, Name: "Action"}}
		p.On("GetGenres", mock.Anything).Return(genres, nil).Once()

		first, err := uc.Genres(context.Background())
		require.NoError(t, err)
		second, err := uc.Genres(context.Background())
		require.NoError(t, err)

		assert.Equal(t, genres, first)
		assert.Equal(t, first, second)
		p.AssertNumberOfCalls(t, "GetGenres", 1)
	})

	t.Run("should accept an empty genre list", func(t *testing.T) {
		p := new(MockProvider)
		uc := newUsecase(p)
		p.On("GetGenres", mock.Anything).Return([]catalog.Genre{}, nil).Once()

		result, err := uc.Genres(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})
}

func TestDetails(t *testing.T) {
	details := catalog.MovieDetails{
		ID:            27205,
		Title:         "Inception",
		OriginalTitle: "Inception",
		Overview:      "A thief who steals corporate secrets through the use of dream-sharing technology.",
		PosterPath:    "/9gk7adHYeDvHkCSEqAvQNLV5Uge.jpg",
		ReleaseDate:   "2010-07-16",
		Genres: []catalog.Genre{
			{ID: 28, Name: "Action"},
			{ID: 878, Name: "Science Fiction"},
			{ID: 53, Name: "Thriller"},
		},
		GenreIDs: []int{28, 878, 53},
	}

	t.Run("should return provider details", func(t *testing.T) {
		p := new(MockProvider)
		uc := newUsecase(p)
		p.On("GetMovieDetails", mock.Anything, 27205).Return(details, nil).Once()

		result, err := uc.Details(context.Background(), 27205)

		require.NoError(t, err)
		assert.Equal(t, details, result)
	})

	t.Run("should serve repeated lookup from cache", func(t *testing.T) {
		p := new(MockProvider)
		uc := newUsecase(p)
		p.On("GetMovieDetails", mock.Anything, 27205).Return(details, nil).Once()

		first, err := uc.Details(context.Background(), 27205)
		require.NoError(t, err)
		second, err := uc.Details(context.Background(), 27205)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		p.AssertNumberOfCalls(t, "GetMovieDetails", 1)
	})

	t.Run("should not cache a not-found failure", func(t *testing.T) {
		p := new(MockProvider)
		uc := newUsecase(p)
		p.On("GetMovieDetails", mock.Anything, 999999).
			Return(catalog.MovieDetails{}, catalog.ErrMovieNotFound).Twice()

		_, err := uc.Details(context.Background(), 999999)
		assert.Equal(t, catalog.ErrMovieNotFound, err)

		_, err = uc.Details(context.Background(), 999999)
		assert.Equal(t, catalog.ErrMovieNotFound, err)
		p.AssertNumberOfCalls(t, "GetMovieDetails", 2)
	})
}
