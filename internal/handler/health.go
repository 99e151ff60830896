package handler

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
)

// Health reports liveness, the current UTC time, and process uptime (GET /health).
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    processUptime(),
	})
}

// processUptime derives uptime from the procfs entry of the current process.
// On platforms without /proc it returns 0.0 instead of failing the check.
func processUptime() float64 {
	info, err := os.Stat(fmt.Sprintf("/proc/%d", os.Getpid()))
	if err != nil {
		return 0.0
	}
	return time.Since(info.ModTime()).Seconds()
}
