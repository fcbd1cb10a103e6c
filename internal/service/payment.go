package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/localrot/internal/model"
	"github.com/iliyamo/localrot/internal/repository"
	"github.com/iliyamo/localrot/internal/utils"
)

// PaymentService records payment intents and applies gateway completion
// events to them.
type PaymentService struct {
	Payments     repository.PaymentStore
	Reservations *ReservationService
	Now          func() time.Time
}

func NewPaymentService(payments repository.PaymentStore, reservations *ReservationService) *PaymentService {
	return &PaymentService{Payments: payments, Reservations: reservations, Now: time.Now}
}

// Create appends a CREATED payment for reservationID.  externalID is the
// gateway's reference for the payment; when empty the payment's own id is
// stored so the webhook can still match it.
func (s *PaymentService) Create(ctx context.Context, reservationID, externalID string) (model.Payment, error) {
	if _, err := s.Reservations.Get(ctx, reservationID); err != nil {
		return model.Payment{}, err
	}

	id, err := utils.NewID(utils.PrefixPayment)
	if err != nil {
		return model.Payment{}, fmt.Errorf("generate payment id: %w", err)
	}
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		externalID = id
	}
	p := model.Payment{
		ID:            id,
		ReservationID: reservationID,
		ExternalID:    externalID,
		Status:        model.PaymentCreated,
		CreatedAt:     s.Now().UnixMilli(),
	}
	if err := s.Payments.Create(ctx, p); err != nil {
		return model.Payment{}, fmt.Errorf("save payment: %w", err)
	}
	log.WithFields(log.Fields{
		"payment_id":     p.ID,
		"reservation_id": p.ReservationID,
		"external_id":    p.ExternalID,
	}).Info("payment created")
	return p, nil
}

// Complete marks the payment matching externalID as COMPLETED and confirms
// its reservation.  It reports whether a payment matched; an unknown
// reference changes nothing and is not an error.
func (s *PaymentService) Complete(ctx context.Context, externalID string) (bool, error) {
	p, err := s.Payments.GetByExternalID(ctx, externalID)
	if errors.Is(err, repository.ErrNotFound) {
		log.WithField("external_id", externalID).Info("payment completion for unknown reference ignored")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load payment: %w", err)
	}

	if p.Status != model.PaymentCompleted {
		if err := s.Payments.UpdateStatus(ctx, p.ID, model.PaymentCompleted); err != nil {
			return false, fmt.Errorf("complete payment: %w", err)
		}
		log.WithFields(log.Fields{"payment_id": p.ID, "external_id": externalID}).Info("payment completed")
	}

	if _, err := s.Reservations.Confirm(ctx, p.ReservationID, p.ID); err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			log.WithFields(log.Fields{
				"payment_id":     p.ID,
				"reservation_id": p.ReservationID,
			}).Warn("completed payment references a missing reservation")
			return true, nil
		}
		return true, err
	}
	return true, nil
}
