package model

// Rental units accepted by the pricing engine.  Any other value is
// stored as given and priced at zero.
const (
    RentalHour  = "hour"
    RentalDay   = "day"
    RentalMonth = "month"
)

// Reservation statuses.  CONFIRMED is terminal.
const (
    StatusPendingPayment = "PENDING_PAYMENT"
    StatusConfirmed      = "CONFIRMED"
)

// Reservation records a user's rental of a game over a time unit.
// Price is derived from Type and Amount at creation time and never
// recomputed.  Status starts as CONFIRMED when the price is zero and
// PENDING_PAYMENT otherwise; it moves to CONFIRMED only when a linked
// payment completes.  Reservations are never deleted.
//
// Fields:
//  ID        – identifier of the form RES_<12 hex chars>.
//  Username  – user who made the reservation (not checked against users).
//  Game      – free-form game title.
//  Type      – rental unit: hour, day or month.
//  Amount    – number of units.
//  Date      – optional requested start date, null when absent.
//  Email     – contact email, validated on creation.
//  Price     – derived price rounded to two decimals.
//  Status    – PENDING_PAYMENT or CONFIRMED.
//  CreatedAt – creation time in Unix milliseconds.
type Reservation struct {
    ID        string  `json:"id"`
    Username  string  `json:"username"`
    Game      string  `json:"game"`
    Type      string  `json:"type"`
    Amount    float64 `json:"amount"`
    Date      *string `json:"date"`
    Email     string  `json:"email"`
    Price     float64 `json:"price"`
    Status    string  `json:"status"`
    CreatedAt int64   `json:"createdAt"`
}

// IsConfirmed reports whether the reservation reached its terminal state.
func (r Reservation) IsConfirmed() bool { return r.Status == StatusConfirmed }
