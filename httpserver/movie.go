package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies/search", s.SearchMovies)
	g.GET("/movies/genres", s.ListGenres)
	g.GET("/movies/:movieID", s.GetMovieDetails)
}

// SearchMovies searches the catalog by title. A blank query yields an
// empty list rather than an error.
func (s *Server) SearchMovies(c echo.Context) error {
	movies, err := s.CatalogService.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, movies)
}

func (s *Server) ListGenres(c echo.Context) error {
	genres, err := s.CatalogService.Genres(c.Request().Context())
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, genres)
}

func (s *Server) GetMovieDetails(c echo.Context) error {
	movieID, err := strconv.Atoi(c.Param("movieID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "movieID must be an integer")
	}

	details, err := s.CatalogService.Details(c.Request().Context(), movieID)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, details)
}
