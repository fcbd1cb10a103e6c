package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/iliyamo/localrot/internal/model"
)

type FileStoresSuite struct {
	suite.Suite
	stores *Stores
	ctx    context.Context
}

func TestFileStoresSuite(t *testing.T) {
	suite.Run(t, new(FileStoresSuite))
}

func (s *FileStoresSuite) SetupTest() {
	stores, err := OpenFileStores(s.T().TempDir())
	s.Require().NoError(err)
	s.stores = stores
	s.ctx = context.Background()
}

func (s *FileStoresSuite) TearDownTest() {
	_ = s.stores.Close()
}

// User tests

func (s *FileStoresSuite) TestCreateAndGetUser() {
	u := model.User{ID: "USR_aaaaaaaaaaaa", Username: "alice", Password: "digest", CreatedAt: 42}
	s.Require().NoError(s.stores.Users.Create(s.ctx, u))

	got, err := s.stores.Users.GetByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(u, got)

	n, err := s.stores.Users.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *FileStoresSuite) TestDuplicateUsername() {
	s.Require().NoError(s.stores.Users.Create(s.ctx, model.User{ID: "USR_1", Username: "alice"}))

	err := s.stores.Users.Create(s.ctx, model.User{ID: "USR_2", Username: "alice"})
	s.ErrorIs(err, ErrUsernameExists)

	n, _ := s.stores.Users.Count(s.ctx)
	s.Equal(1, n)
}

func (s *FileStoresSuite) TestGetUserNotFound() {
	_, err := s.stores.Users.GetByUsername(s.ctx, "nobody")
	s.ErrorIs(err, ErrNotFound)
}

// Reservation tests

func (s *FileStoresSuite) TestReservationsListedByUsernameInOrder() {
	for _, r := range []model.Reservation{
		{ID: "RES_1", Username: "alice", Game: "Chess"},
		{ID: "RES_2", Username: "bob", Game: "Go"},
		{ID: "RES_3", Username: "alice", Game: "Shogi"},
	} {
		s.Require().NoError(s.stores.Reservations.Create(s.ctx, r))
	}

	items, err := s.stores.Reservations.ListByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal("RES_1", items[0].ID)
	s.Equal("RES_3", items[1].ID)

	all, err := s.stores.Reservations.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *FileStoresSuite) TestListByUnknownUsernameIsEmptyNotNil() {
	items, err := s.stores.Reservations.ListByUsername(s.ctx, "ghost")
	s.Require().NoError(err)
	s.NotNil(items)
	s.Empty(items)
}

func (s *FileStoresSuite) TestReservationDateRoundTrip() {
	date := "2026-11-01"
	s.Require().NoError(s.stores.Reservations.Create(s.ctx, model.Reservation{ID: "RES_1", Date: &date}))
	s.Require().NoError(s.stores.Reservations.Create(s.ctx, model.Reservation{ID: "RES_2"}))

	withDate, err := s.stores.Reservations.GetByID(s.ctx, "RES_1")
	s.Require().NoError(err)
	s.Require().NotNil(withDate.Date)
	s.Equal(date, *withDate.Date)

	without, err := s.stores.Reservations.GetByID(s.ctx, "RES_2")
	s.Require().NoError(err)
	s.Nil(without.Date)
}

func (s *FileStoresSuite) TestUpdateReservationStatus() {
	s.Require().NoError(s.stores.Reservations.Create(s.ctx, model.Reservation{ID: "RES_1", Status: model.StatusPendingPayment}))

	s.Require().NoError(s.stores.Reservations.UpdateStatus(s.ctx, "RES_1", model.StatusConfirmed))

	got, err := s.stores.Reservations.GetByID(s.ctx, "RES_1")
	s.Require().NoError(err)
	s.Equal(model.StatusConfirmed, got.Status)
}

func (s *FileStoresSuite) TestUpdateMissingReservation() {
	err := s.stores.Reservations.UpdateStatus(s.ctx, "RES_missing", model.StatusConfirmed)
	s.ErrorIs(err, ErrNotFound)
}

// Payment tests

func (s *FileStoresSuite) TestPaymentLookupByExternalID() {
	s.Require().NoError(s.stores.Payments.Create(s.ctx, model.Payment{ID: "PAY_1", ReservationID: "RES_1", ExternalID: "ORDER-9", Status: model.PaymentCreated}))

	p, err := s.stores.Payments.GetByExternalID(s.ctx, "ORDER-9")
	s.Require().NoError(err)
	s.Equal("PAY_1", p.ID)

	_, err = s.stores.Payments.GetByExternalID(s.ctx, "ORDER-10")
	s.ErrorIs(err, ErrNotFound)
	_, err = s.stores.Payments.GetByExternalID(s.ctx, "")
	s.ErrorIs(err, ErrNotFound)
}

func (s *FileStoresSuite) TestUpdatePaymentStatus() {
	s.Require().NoError(s.stores.Payments.Create(s.ctx, model.Payment{ID: "PAY_1", ExternalID: "PAY_1", Status: model.PaymentCreated}))
	s.Require().NoError(s.stores.Payments.UpdateStatus(s.ctx, "PAY_1", model.PaymentCompleted))

	p, err := s.stores.Payments.GetByExternalID(s.ctx, "PAY_1")
	s.Require().NoError(err)
	s.Equal(model.PaymentCompleted, p.Status)

	s.ErrorIs(s.stores.Payments.UpdateStatus(s.ctx, "PAY_x", model.PaymentCompleted), ErrNotFound)
}

func (s *FileStoresSuite) TestDuplicatePaymentsPerReservationAllowed() {
	s.Require().NoError(s.stores.Payments.Create(s.ctx, model.Payment{ID: "PAY_1", ReservationID: "RES_1"}))
	s.Require().NoError(s.stores.Payments.Create(s.ctx, model.Payment{ID: "PAY_2", ReservationID: "RES_1"}))

	n, err := s.stores.Payments.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}
