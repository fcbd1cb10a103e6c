package service

import (
	"math"
	"strconv"

	"github.com/iliyamo/localrot/internal/model"
)

// Tariffs.
const (
	freeHours     = 5
	hourRate      = 1.0
	dayRate       = 2.0
	monthOnePrice = 4.99
	monthTwoPrice = 9.98
)

// CalculatePrice maps a rental request to its price, rounded to cents.
//
//	hour:  first five hours free, 1 per hour after that
//	day:   2 per day
//	month: 4.99 for one month, 9.98 for two, 0 otherwise
//
// Unknown rental types cost nothing.  Month amounts other than 1 and 2
// have no tier and are priced at 0 as well.
func CalculatePrice(rentalType string, amount float64) float64 {
	price := 0.0
	switch rentalType {
	case model.RentalHour:
		if amount > freeHours {
			price = (amount - freeHours) * hourRate
		}
	case model.RentalDay:
		price = amount * dayRate
	case model.RentalMonth:
		switch amount {
		case 1:
			price = monthOnePrice
		case 2:
			price = monthTwoPrice
		}
	}
	return roundCents(price)
}

// InitialStatus is the status a reservation starts in for a given price.
func InitialStatus(price float64) string {
	if price > 0 {
		return model.StatusPendingPayment
	}
	return model.StatusConfirmed
}

// roundCents rounds the exact binary value of v to two decimals, the way
// a client formatting with toFixed(2) sees it: 0.33499999999999996 is
// 0.33, not 0.34.  Exact halves only occur on multiples of 1/8 and round
// up.
func roundCents(v float64) float64 {
	if e := v * 8; e == math.Trunc(e) {
		return math.Floor(v*100+0.5) / 100
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return 0
	}
	return r
}
