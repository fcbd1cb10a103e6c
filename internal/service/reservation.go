package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/localrot/internal/model"
	"github.com/iliyamo/localrot/internal/queue"
	"github.com/iliyamo/localrot/internal/repository"
	"github.com/iliyamo/localrot/internal/utils"
)

// ReserveInput is a rental request as received from the client.
type ReserveInput struct {
	Username string
	Game     string
	Type     string
	Amount   float64
	Date     string
	Email    string
}

// ReservationService creates reservations and drives their lifecycle.
type ReservationService struct {
	Reservations repository.ReservationStore
	Publisher    EventPublisher
	Now          func() time.Time
}

func NewReservationService(store repository.ReservationStore, pub EventPublisher) *ReservationService {
	if pub == nil {
		pub = NoopPublisher{}
	}
	return &ReservationService{Reservations: store, Publisher: pub, Now: time.Now}
}

// Reserve validates in, prices it and stores the new reservation.  Free
// rentals are confirmed immediately.
func (s *ReservationService) Reserve(ctx context.Context, in ReserveInput) (model.Reservation, error) {
	if in.Username == "" || in.Game == "" || in.Type == "" || in.Amount == 0 || in.Email == "" {
		return model.Reservation{}, invalid("Invalid data")
	}
	if !utils.IsValidEmail(in.Email) {
		return model.Reservation{}, invalid("Invalid email")
	}

	id, err := utils.NewID(utils.PrefixReservation)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("generate reservation id: %w", err)
	}
	price := CalculatePrice(in.Type, in.Amount)
	res := model.Reservation{
		ID:        id,
		Username:  in.Username,
		Game:      in.Game,
		Type:      in.Type,
		Amount:    in.Amount,
		Email:     in.Email,
		Price:     price,
		Status:    InitialStatus(price),
		CreatedAt: s.Now().UnixMilli(),
	}
	if in.Date != "" {
		d := in.Date
		res.Date = &d
	}
	if err := s.Reservations.Create(ctx, res); err != nil {
		return model.Reservation{}, fmt.Errorf("save reservation: %w", err)
	}

	log.WithFields(log.Fields{
		"reservation_id": res.ID,
		"username":       res.Username,
		"type":           res.Type,
		"amount":         res.Amount,
		"price":          res.Price,
		"status":         res.Status,
	}).Info("reservation created")

	if res.IsConfirmed() {
		s.publishConfirmed(ctx, res, "")
	}
	return res, nil
}

// ListByUsername returns every reservation made by username.
func (s *ReservationService) ListByUsername(ctx context.Context, username string) ([]model.Reservation, error) {
	items, err := s.Reservations.ListByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return items, nil
}

// Get returns the reservation with id or ErrReservationNotFound.
func (s *ReservationService) Get(ctx context.Context, id string) (model.Reservation, error) {
	res, err := s.Reservations.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Reservation{}, ErrReservationNotFound
	}
	if err != nil {
		return model.Reservation{}, fmt.Errorf("load reservation: %w", err)
	}
	return res, nil
}

// Confirm moves a PENDING_PAYMENT reservation to CONFIRMED on behalf of
// paymentID.  Confirming a reservation twice is a no-op.
func (s *ReservationService) Confirm(ctx context.Context, id, paymentID string) (model.Reservation, error) {
	res, err := s.Get(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if res.IsConfirmed() {
		return res, nil
	}
	if err := s.Reservations.UpdateStatus(ctx, id, model.StatusConfirmed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Reservation{}, ErrReservationNotFound
		}
		return model.Reservation{}, fmt.Errorf("confirm reservation: %w", err)
	}
	res.Status = model.StatusConfirmed

	log.WithFields(log.Fields{
		"reservation_id": res.ID,
		"payment_id":     paymentID,
	}).Info("reservation confirmed")

	s.publishConfirmed(ctx, res, paymentID)
	return res, nil
}

func (s *ReservationService) publishConfirmed(ctx context.Context, res model.Reservation, paymentID string) {
	ev := queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		Username:      res.Username,
		Game:          res.Game,
		Type:          res.Type,
		Amount:        res.Amount,
		Price:         res.Price,
		Email:         res.Email,
		PaymentID:     paymentID,
		ConfirmedAt:   s.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Publisher.PublishReservationConfirmed(ctx, ev); err != nil {
		log.WithError(err).WithField("reservation_id", res.ID).Warn("publish reservation.confirmed failed")
	}
}
