package repository

import (
	"context"

	"github.com/iliyamo/localrot/internal/database"
	"github.com/iliyamo/localrot/internal/model"
)

// ReservationRepo is the JSON snapshot implementation of
// ReservationStore.  Records are appended, so file order is creation
// order.
type ReservationRepo struct {
	col *database.Collection[model.Reservation]
}

// NewReservationRepo returns a ReservationRepo bound to the given collection.
func NewReservationRepo(col *database.Collection[model.Reservation]) *ReservationRepo {
	return &ReservationRepo{col: col}
}

var _ ReservationStore = (*ReservationRepo)(nil)

func (r *ReservationRepo) Create(_ context.Context, res model.Reservation) error {
	return r.col.Update(func(items []model.Reservation) ([]model.Reservation, error) {
		return append(items, res), nil
	})
}

// GetByID returns the first reservation with the given id.
func (r *ReservationRepo) GetByID(_ context.Context, id string) (model.Reservation, error) {
	items, err := r.col.Read()
	if err != nil {
		return model.Reservation{}, err
	}
	for _, res := range items {
		if res.ID == id {
			return res, nil
		}
	}
	return model.Reservation{}, ErrNotFound
}

// ListByUsername returns all reservations made by username.  The result
// is never nil.
func (r *ReservationRepo) ListByUsername(_ context.Context, username string) ([]model.Reservation, error) {
	items, err := r.col.Read()
	if err != nil {
		return nil, err
	}
	out := make([]model.Reservation, 0)
	for _, res := range items {
		if res.Username == username {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *ReservationRepo) List(_ context.Context) ([]model.Reservation, error) {
	return r.col.Read()
}

// UpdateStatus sets the status of every reservation carrying id.  Ids are
// not enforced unique, so a collision updates all of them.
func (r *ReservationRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.col.Update(func(items []model.Reservation) ([]model.Reservation, error) {
		found := false
		for i := range items {
			if items[i].ID == id {
				items[i].Status = status
				found = true
			}
		}
		if !found {
			return nil, ErrNotFound
		}
		return items, nil
	})
}
