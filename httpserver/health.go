package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.Healthcheck)
}

func (s *Server) Healthcheck(c echo.Context) error {
	return writeSuccess(c, http.StatusOK, map[string]string{"status": "OK"})
}
