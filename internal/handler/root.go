package handler

import (
	"net/http"

	"github.com/alya-io/alya/internal/config"
	"github.com/labstack/echo/v4"
)

// Handler serves the public routes. Settings are injected at construction so
// handlers stay free of package-level state.
type Handler struct {
	cfg *config.Settings
}

// New returns a Handler bound to the given settings.
func New(cfg *config.Settings) *Handler {
	return &Handler{cfg: cfg}
}

// Root returns the welcome message and configured version (GET /).
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Welcome to " + h.cfg.ProjectName,
		"version": h.cfg.Version,
	})
}
