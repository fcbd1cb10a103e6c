// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedQueue is the durable queue carrying confirmations.
const ReservationConfirmedQueue = "reservation.confirmed"

// ReservationConfirmedEvent is published whenever a reservation reaches
// CONFIRMED, either at creation (free rentals) or when a payment for it
// completes.  PaymentID is empty in the first case.
type ReservationConfirmedEvent struct {
    ReservationID string  `json:"reservation_id"`
    Username      string  `json:"username"`
    Game          string  `json:"game"`
    Type          string  `json:"type"`
    Amount        float64 `json:"amount"`
    Price         float64 `json:"price"`
    Email         string  `json:"email"`
    PaymentID     string  `json:"payment_id,omitempty"`
    ConfirmedAt   string  `json:"confirmed_at"`
}
