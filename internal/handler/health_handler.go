package handler

import (
	"context"
	"net/http"
	"time"

	"backoffice/internal/logging"

	"github.com/labstack/echo/v4"
)

// 依存先の疎通確認（DB・Redis）
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	checks []HealthCheck
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health/live", h.live)
	e.GET("/health/ready", h.ready)
}

func (h *HealthHandler) live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	result := map[string]string{}
	status := http.StatusOK
	for _, chk := range h.checks {
		if err := chk.Check(ctx); err != nil {
			logging.FromContext(ctx).Warn("readiness_check_failed", "check", chk.Name, "error", err)
			result[chk.Name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		result[chk.Name] = "up"
	}
	return c.JSON(status, map[string]any{"status": http.StatusText(status), "checks": result})
}
