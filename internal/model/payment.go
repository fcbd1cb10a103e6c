package model

// Payment statuses.
const (
    PaymentCreated   = "CREATED"
    PaymentCompleted = "COMPLETED"
)

// Payment tracks an intent to pay for a reservation.  Several payments
// may reference the same reservation.  ExternalID is the identifier the
// payment gateway reports back in its completion webhook; when the
// client does not supply one it equals ID.
//
// Fields:
//  ID            – identifier of the form PAY_<12 hex chars>.
//  ReservationID – reservation being paid for.
//  ExternalID    – gateway reference used to match webhook events.
//  Status        – CREATED or COMPLETED.
//  CreatedAt     – creation time in Unix milliseconds.
type Payment struct {
    ID            string `json:"id"`
    ReservationID string `json:"reservationId"`
    ExternalID    string `json:"externalId"`
    Status        string `json:"status"`
    CreatedAt     int64  `json:"createdAt"`
}
