package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/localrot/internal/model"
	"github.com/iliyamo/localrot/internal/repository"
)

// StatsService computes the admin overview.
type StatsService struct {
	Users        repository.UserStore
	Reservations repository.ReservationStore
	Payments     repository.PaymentStore
}

func NewStatsService(stores *repository.Stores) *StatsService {
	return &StatsService{Users: stores.Users, Reservations: stores.Reservations, Payments: stores.Payments}
}

func (s *StatsService) Stats(ctx context.Context) (model.Stats, error) {
	users, err := s.Users.Count(ctx)
	if err != nil {
		return model.Stats{}, fmt.Errorf("count users: %w", err)
	}
	reservations, err := s.Reservations.List(ctx)
	if err != nil {
		return model.Stats{}, fmt.Errorf("list reservations: %w", err)
	}
	payments, err := s.Payments.Count(ctx)
	if err != nil {
		return model.Stats{}, fmt.Errorf("count payments: %w", err)
	}
	return Aggregate(users, reservations, payments), nil
}

// Aggregate counts reservations per status alongside the collection sizes.
func Aggregate(users int, reservations []model.Reservation, payments int) model.Stats {
	st := model.Stats{Users: users, Reservations: len(reservations), Payments: payments}
	for _, r := range reservations {
		switch r.Status {
		case model.StatusConfirmed:
			st.Confirmed++
		case model.StatusPendingPayment:
			st.Pending++
		}
	}
	return st
}
