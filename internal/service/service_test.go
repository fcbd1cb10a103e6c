package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/iliyamo/localrot/internal/model"
	"github.com/iliyamo/localrot/internal/queue"
	"github.com/iliyamo/localrot/internal/repository"
	"github.com/iliyamo/localrot/internal/utils"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ReservationConfirmedEvent
}

func (p *recordingPublisher) PublishReservationConfirmed(_ context.Context, ev queue.ReservationConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Events() []queue.ReservationConfirmedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.ReservationConfirmedEvent(nil), p.events...)
}

type ServiceSuite struct {
	suite.Suite
	ctx          context.Context
	stores       *repository.Stores
	pub          *recordingPublisher
	auth         *AuthService
	reservations *ReservationService
	payments     *PaymentService
	stats        *StatsService
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	stores, err := repository.OpenFileStores(s.T().TempDir())
	s.Require().NoError(err)
	s.stores = stores
	s.ctx = context.Background()
	s.pub = &recordingPublisher{}

	fixed := func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }
	s.auth = NewAuthService(stores.Users, AuthOptions{PasswordScheme: utils.SchemeSHA256, JWTSecret: "test", AccessTTLMin: 5})
	s.auth.Now = fixed
	s.reservations = NewReservationService(stores.Reservations, s.pub)
	s.reservations.Now = fixed
	s.payments = NewPaymentService(stores.Payments, s.reservations)
	s.payments.Now = fixed
	s.stats = NewStatsService(stores)
}

func (s *ServiceSuite) TearDownTest() {
	_ = s.stores.Close()
}

func (s *ServiceSuite) reserve(typ string, amount float64) model.Reservation {
	res, err := s.reservations.Reserve(s.ctx, ReserveInput{
		Username: "alice", Game: "Catan", Type: typ, Amount: amount, Email: "alice@example.com",
	})
	s.Require().NoError(err)
	return res
}

// Auth

func (s *ServiceSuite) TestRegisterTwiceConflicts() {
	_, err := s.auth.Register(s.ctx, "alice", "pw")
	s.Require().NoError(err)

	_, err = s.auth.Register(s.ctx, "alice", "other")
	s.ErrorIs(err, ErrUsernameTaken)
}

func (s *ServiceSuite) TestRegisterMissingFields() {
	_, err := s.auth.Register(s.ctx, "", "pw")
	msg, ok := ValidationMessage(err)
	s.True(ok)
	s.Equal("Missing fields", msg)
	_, err = s.auth.Register(s.ctx, "alice", "")
	_, ok = ValidationMessage(err)
	s.True(ok)
}

func (s *ServiceSuite) TestRegisterStoresDigestNotPassword() {
	u, err := s.auth.Register(s.ctx, "alice", "pw")
	s.Require().NoError(err)
	s.Regexp(`^USR_[0-9a-f]{12}$`, u.ID)
	s.NotEqual("pw", u.Password)
	s.Equal(int64(1792324800000), u.CreatedAt)
}

func (s *ServiceSuite) TestLogin() {
	u, err := s.auth.Register(s.ctx, "alice", "pw")
	s.Require().NoError(err)

	res, err := s.auth.Login(s.ctx, "alice", "pw")
	s.Require().NoError(err)
	s.Equal(u.ID, res.User.ID)

	id, err := utils.ParseAccessToken("test", res.Token.Token)
	s.Require().NoError(err)
	s.Equal(u.ID, id.UserID)
}

func (s *ServiceSuite) TestLoginWrongPasswordIsInvalidCredentials() {
	_, err := s.auth.Register(s.ctx, "alice", "pw")
	s.Require().NoError(err)

	for _, pw := range []string{"PW", "", "pw ", "x"} {
		_, err := s.auth.Login(s.ctx, "alice", pw)
		s.ErrorIs(err, ErrInvalidCredentials, pw)
	}
	_, err = s.auth.Login(s.ctx, "nobody", "pw")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestBcryptSchemeUsersCanLogIn() {
	s.auth.Opts.PasswordScheme = utils.SchemeBcrypt
	s.auth.Opts.BcryptCost = 4
	_, err := s.auth.Register(s.ctx, "bob", "pw")
	s.Require().NoError(err)

	_, err = s.auth.Login(s.ctx, "bob", "pw")
	s.NoError(err)
}

// Reservations

func (s *ServiceSuite) TestReserveDayIsPendingPayment() {
	res := s.reserve("day", 3)
	s.Equal(6.0, res.Price)
	s.Equal(model.StatusPendingPayment, res.Status)
	s.Regexp(`^RES_[0-9a-f]{12}$`, res.ID)
	s.Nil(res.Date)
	s.Empty(s.pub.Events())
}

func (s *ServiceSuite) TestReserveFreeHoursIsConfirmed() {
	res := s.reserve("hour", 3)
	s.Equal(0.0, res.Price)
	s.Equal(model.StatusConfirmed, res.Status)

	events := s.pub.Events()
	s.Require().Len(events, 1)
	s.Equal(res.ID, events[0].ReservationID)
	s.Empty(events[0].PaymentID)
}

func (s *ServiceSuite) TestReserveMonthTwo() {
	res := s.reserve("month", 2)
	s.Equal(9.98, res.Price)
	s.Equal(model.StatusPendingPayment, res.Status)
}

func (s *ServiceSuite) TestReserveKeepsDate() {
	res, err := s.reservations.Reserve(s.ctx, ReserveInput{
		Username: "alice", Game: "Catan", Type: "day", Amount: 1, Email: "a@b.co", Date: "2026-12-24",
	})
	s.Require().NoError(err)
	s.Require().NotNil(res.Date)
	s.Equal("2026-12-24", *res.Date)
}

func (s *ServiceSuite) TestReserveStoresDateAsSent() {
	for _, date := range []string{" 2026-12-24", "   ", "next friday"} {
		res, err := s.reservations.Reserve(s.ctx, ReserveInput{
			Username: "alice", Game: "Catan", Type: "day", Amount: 1, Email: "a@b.co", Date: date,
		})
		s.Require().NoError(err)
		s.Require().NotNil(res.Date, "%q", date)
		s.Equal(date, *res.Date)

		stored, err := s.stores.Reservations.GetByID(s.ctx, res.ID)
		s.Require().NoError(err)
		s.Require().NotNil(stored.Date)
		s.Equal(date, *stored.Date)
	}
}

func (s *ServiceSuite) TestReserveValidation() {
	base := ReserveInput{Username: "alice", Game: "Catan", Type: "day", Amount: 1, Email: "a@b.co"}
	cases := map[string]func(in *ReserveInput){
		"no username": func(in *ReserveInput) { in.Username = "" },
		"no game":     func(in *ReserveInput) { in.Game = "" },
		"no type":     func(in *ReserveInput) { in.Type = "" },
		"zero amount": func(in *ReserveInput) { in.Amount = 0 },
		"no email":    func(in *ReserveInput) { in.Email = "" },
		"bad email":   func(in *ReserveInput) { in.Email = "not-an-email" },
	}
	for name, mutate := range cases {
		in := base
		mutate(&in)
		_, err := s.reservations.Reserve(s.ctx, in)
		msg, ok := ValidationMessage(err)
		s.True(ok, name)
		s.NotEmpty(msg, name)
	}

	all, err := s.stores.Reservations.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *ServiceSuite) TestListByUsername() {
	s.reserve("day", 1)
	s.reserve("hour", 1)

	items, err := s.reservations.ListByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Len(items, 2)

	items, err = s.reservations.ListByUsername(s.ctx, "bob")
	s.Require().NoError(err)
	s.NotNil(items)
	s.Empty(items)
}

// Payments

func (s *ServiceSuite) TestCreatePaymentForMissingReservation() {
	_, err := s.payments.Create(s.ctx, "RES_doesnotexist", "")
	s.ErrorIs(err, ErrReservationNotFound)

	n, err := s.stores.Payments.Count(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *ServiceSuite) TestPaymentCompletionConfirmsReservation() {
	res := s.reserve("day", 3)
	p, err := s.payments.Create(s.ctx, res.ID, "ORDER-1")
	s.Require().NoError(err)
	s.Equal(model.PaymentCreated, p.Status)
	s.Equal("ORDER-1", p.ExternalID)

	matched, err := s.payments.Complete(s.ctx, "ORDER-1")
	s.Require().NoError(err)
	s.True(matched)

	got, err := s.stores.Reservations.GetByID(s.ctx, res.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusConfirmed, got.Status)

	stored, err := s.stores.Payments.GetByExternalID(s.ctx, "ORDER-1")
	s.Require().NoError(err)
	s.Equal(model.PaymentCompleted, stored.Status)

	events := s.pub.Events()
	s.Require().Len(events, 1)
	s.Equal(p.ID, events[0].PaymentID)
	s.Equal("2026-10-18T12:00:00Z", events[0].ConfirmedAt)
}

func (s *ServiceSuite) TestPaymentWithoutExternalIDMatchesOwnID() {
	res := s.reserve("day", 3)
	p, err := s.payments.Create(s.ctx, res.ID, "")
	s.Require().NoError(err)
	s.Equal(p.ID, p.ExternalID)

	matched, err := s.payments.Complete(s.ctx, p.ID)
	s.Require().NoError(err)
	s.True(matched)
}

func (s *ServiceSuite) TestUnknownCompletionLeavesStateUnchanged() {
	res := s.reserve("day", 3)
	_, err := s.payments.Create(s.ctx, res.ID, "ORDER-1")
	s.Require().NoError(err)

	matched, err := s.payments.Complete(s.ctx, res.ID)
	s.Require().NoError(err)
	s.False(matched)

	got, err := s.stores.Reservations.GetByID(s.ctx, res.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusPendingPayment, got.Status)
	stored, err := s.stores.Payments.GetByExternalID(s.ctx, "ORDER-1")
	s.Require().NoError(err)
	s.Equal(model.PaymentCreated, stored.Status)
	s.Empty(s.pub.Events())
}

func (s *ServiceSuite) TestRepeatedCompletionConfirmsOnce() {
	res := s.reserve("day", 3)
	_, err := s.payments.Create(s.ctx, res.ID, "ORDER-1")
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		_, err := s.payments.Complete(s.ctx, "ORDER-1")
		s.Require().NoError(err)
	}
	s.Len(s.pub.Events(), 1)
}

func (s *ServiceSuite) TestSecondPaymentForSameReservationAllowed() {
	res := s.reserve("day", 3)
	_, err := s.payments.Create(s.ctx, res.ID, "")
	s.Require().NoError(err)
	_, err = s.payments.Create(s.ctx, res.ID, "")
	s.Require().NoError(err)

	n, err := s.stores.Payments.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}

// Stats

func (s *ServiceSuite) TestStats() {
	_, err := s.auth.Register(s.ctx, "alice", "pw")
	s.Require().NoError(err)
	paid := s.reserve("day", 3)
	s.reserve("hour", 2)
	s.reserve("month", 1)
	_, err = s.payments.Create(s.ctx, paid.ID, "ORDER-1")
	s.Require().NoError(err)
	_, err = s.payments.Complete(s.ctx, "ORDER-1")
	s.Require().NoError(err)

	st, err := s.stats.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.Stats{Users: 1, Reservations: 3, Confirmed: 2, Pending: 1, Payments: 1}, st)
}

func (s *ServiceSuite) TestAggregateIgnoresUnknownStatuses() {
	st := Aggregate(0, []model.Reservation{{Status: "WEIRD"}, {Status: model.StatusConfirmed}}, 0)
	s.Equal(2, st.Reservations)
	s.Equal(1, st.Confirmed)
	s.Equal(0, st.Pending)
}
