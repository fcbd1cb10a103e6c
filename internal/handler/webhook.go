package handler

import (
    "context"
    "encoding/json"
    "io"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    log "github.com/sirupsen/logrus"
)

// Gateway event types that mean the buyer has paid.
var completionEvents = map[string]bool{
    "PAYMENT.CAPTURE.COMPLETED": true,
    "CHECKOUT.ORDER.COMPLETED":  true,
    "CHECKOUT.ORDER.APPROVED":   true,
}

// gatewayEvent is the subset of a PayPal webhook we look at.
type gatewayEvent struct {
    ID        string `json:"id"`
    EventType string `json:"event_type"`
    Resource  struct {
        ID                string `json:"id"`
        SupplementaryData struct {
            RelatedIDs struct {
                OrderID string `json:"order_id"`
            } `json:"related_ids"`
        } `json:"supplementary_data"`
    } `json:"resource"`
}

// references returns the identifiers to try, most specific first.
func (ev gatewayEvent) references() []string {
    var refs []string
    if id := ev.Resource.ID; id != "" {
        refs = append(refs, id)
    }
    if oid := ev.Resource.SupplementaryData.RelatedIDs.OrderID; oid != "" && oid != ev.Resource.ID {
        refs = append(refs, oid)
    }
    return refs
}

// Webhook handles POST /api/paypal/webhook.  The gateway only needs an
// acknowledgement, so the response is always 200; unknown events, unknown
// references and undecodable bodies are logged and dropped.
func (h *PaymentHandler) Webhook(c echo.Context) error {
    ack := echo.Map{"success": true}

    body, err := io.ReadAll(c.Request().Body)
    if err != nil {
        log.WithError(err).Warn("webhook: read body failed")
        return c.JSON(http.StatusOK, ack)
    }
    var ev gatewayEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        log.WithError(err).Warn("webhook: ignoring undecodable payload")
        return c.JSON(http.StatusOK, ack)
    }
    entry := log.WithFields(log.Fields{"event_id": ev.ID, "event_type": ev.EventType})
    if !completionEvents[ev.EventType] {
        entry.Info("webhook: ignoring event type")
        return c.JSON(http.StatusOK, ack)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    for _, ref := range ev.references() {
        matched, err := h.Payments.Complete(ctx, ref)
        if err != nil {
            entry.WithError(err).WithField("ref", ref).Error("webhook: payment completion failed")
            return c.JSON(http.StatusOK, ack)
        }
        if matched {
            return c.JSON(http.StatusOK, ack)
        }
    }
    entry.Info("webhook: no payment matched")
    return c.JSON(http.StatusOK, ack)
}
