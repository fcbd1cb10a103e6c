package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/localrot/internal/service"
)

// ReservationHandler serves reservation creation and lookup.
type ReservationHandler struct {
    Reservations *service.ReservationService
}

func NewReservationHandler(s *service.ReservationService) *ReservationHandler {
    return &ReservationHandler{Reservations: s}
}

type reserveReq struct {
    Username string  `json:"username"`
    Game     string  `json:"game"`
    Type     string  `json:"type"`
    Amount   float64 `json:"amount"`
    Date     string  `json:"date"`
    Email    string  `json:"email"`
}

// Reserve handles POST /api/reserve.
func (h *ReservationHandler) Reserve(c echo.Context) error {
    var req reserveReq
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    res, err := h.Reservations.Reserve(ctx, service.ReserveInput{
        Username: req.Username,
        Game:     req.Game,
        Type:     req.Type,
        Amount:   req.Amount,
        Date:     req.Date,
        Email:    req.Email,
    })
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "reservation": res})
}

// ListByUsername handles GET /api/reservations/:username.  An unknown user
// gets an empty array.
func (h *ReservationHandler) ListByUsername(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Reservations.ListByUsername(ctx, c.Param("username"))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, items)
}
