package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/localrot/internal/service"
)

type AdminHandler struct {
    Stats *service.StatsService
}

func NewAdminHandler(s *service.StatsService) *AdminHandler {
    return &AdminHandler{Stats: s}
}

// GetStats handles GET /api/admin/stats.
func (h *AdminHandler) GetStats(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    st, err := h.Stats.Stats(ctx)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, st)
}
