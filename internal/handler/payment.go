package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/localrot/internal/service"
)

// PaymentHandler serves payment creation and the gateway webhook.
type PaymentHandler struct {
    Payments *service.PaymentService
}

func NewPaymentHandler(s *service.PaymentService) *PaymentHandler {
    return &PaymentHandler{Payments: s}
}

type createPaymentReq struct {
    ReservationID string `json:"reservationId"`
    ExternalID    string `json:"externalId"`
}

// Create handles POST /api/payment/create.
func (h *PaymentHandler) Create(c echo.Context) error {
    var req createPaymentReq
    if err := c.Bind(&req); err != nil {
        return badBody(c)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    p, err := h.Payments.Create(ctx, req.ReservationID, req.ExternalID)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "payment": p})
}
