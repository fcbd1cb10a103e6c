package repository

import (
	"context"

	"github.com/iliyamo/localrot/internal/model"
)

// UserStore persists registered users.
type UserStore interface {
	Create(ctx context.Context, u model.User) error
	GetByUsername(ctx context.Context, username string) (model.User, error)
	Count(ctx context.Context) (int, error)
}

// ReservationStore persists reservations.  List and ListByUsername return
// records in creation order.
type ReservationStore interface {
	Create(ctx context.Context, r model.Reservation) error
	GetByID(ctx context.Context, id string) (model.Reservation, error)
	ListByUsername(ctx context.Context, username string) ([]model.Reservation, error)
	List(ctx context.Context) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// PaymentStore persists payment records.
type PaymentStore interface {
	Create(ctx context.Context, p model.Payment) error
	GetByExternalID(ctx context.Context, externalID string) (model.Payment, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Count(ctx context.Context) (int, error)
}

// Stores bundles the three collections behind one handle with an
// explicit lifecycle.
type Stores struct {
	Users        UserStore
	Reservations ReservationStore
	Payments     PaymentStore
	closer       func() error
}

// Close releases the underlying database.
func (s *Stores) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
