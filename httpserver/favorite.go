package httpserver

import (
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterFavoriteRoutes(g *echo.Group) {
	g.GET("/favorites", s.ListFavorites)
	g.POST("/favorites", s.AddFavorite)
	g.DELETE("/favorites/:movieID", s.RemoveFavorite)
}

// ListFavorites returns the caller's favorites, optionally filtered by
// genre via the genre_id query parameter.
func (s *Server) ListFavorites(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var genreID *int
	if raw := c.QueryParam("genre_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "genre_id must be an integer")
		}
		genreID = &id
	}

	favorites, err := s.FavoriteService.ListFavorites(c.Request().Context(), userID, genreID)
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, favorites)
}

func (s *Server) AddFavorite(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fav, err := s.FavoriteService.AddFavorite(c.Request().Context(), userID, req.MovieID)
	if err != nil {
		return err
	}
	return writeSuccessMessage(c, http.StatusCreated, "Filme adicionado aos favoritos!", fav)
}

func (s *Server) RemoveFavorite(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	movieID, err := strconv.Atoi(c.Param("movieID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "movieID must be an integer")
	}

	if err := s.FavoriteService.RemoveFavorite(c.Request().Context(), userID, movieID); err != nil {
		return err
	}
	return writeSuccessMessage(c, http.StatusOK, "Filme removido dos favoritos!", nil)
}

// userIDFromContext extracts the user_id claim set by the JWT middleware.
func userIDFromContext(c echo.Context) (int64, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}
	raw, ok := claims["user_id"].(float64)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "token has no user_id claim")
	}
	return int64(raw), nil
}
