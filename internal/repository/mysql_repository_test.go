package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/localrot/internal/model"
)

func newMock(t *testing.T) (*Stores, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewMySQLStores(db), mock
}

func TestMySQLUserCreateDuplicate(t *testing.T) {
	stores, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("USR_1", "alice", "digest", int64(7)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice'"})

	err := stores.Users.Create(context.Background(), model.User{ID: "USR_1", Username: "alice", Password: "digest", CreatedAt: 7})
	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLUserGetByUsername(t *testing.T) {
	stores, mock := newMock(t)
	mock.ExpectQuery(`SELECT id, username, password, created_at FROM users WHERE username=\?`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at"}).
			AddRow("USR_1", "alice", "digest", int64(7)))
	mock.ExpectQuery(`SELECT id, username, password, created_at FROM users WHERE username=\?`).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at"}))

	u, err := stores.Users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "USR_1", u.ID)

	_, err = stores.Users.GetByUsername(context.Background(), "bob")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLReservationListByUsername(t *testing.T) {
	stores, mock := newMock(t)
	cols := []string{"id", "username", "game", "type", "amount", "date", "email", "price", "status", "created_at"}
	mock.ExpectQuery(`FROM reservations WHERE username = \? ORDER BY seq`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("RES_1", "alice", "Chess", "day", 3.0, nil, "a@b.co", 6.0, model.StatusPendingPayment, int64(1)).
			AddRow("RES_2", "alice", "Go", "hour", 2.0, "2026-11-01", "a@b.co", 0.0, model.StatusConfirmed, int64(2)))

	items, err := stores.Reservations.ListByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].Date)
	assert.Equal(t, 6.0, items[0].Price)
	require.NotNil(t, items[1].Date)
	assert.Equal(t, "2026-11-01", *items[1].Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLReservationUpdateMissing(t *testing.T) {
	stores, mock := newMock(t)
	mock.ExpectExec(`UPDATE reservations SET status = \? WHERE id = \?`).
		WithArgs(model.StatusConfirmed, "RES_x").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM reservations WHERE id = \?`).
		WithArgs("RES_x").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "game", "type", "amount", "date", "email", "price", "status", "created_at"}))

	err := stores.Reservations.UpdateStatus(context.Background(), "RES_x", model.StatusConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLPaymentCreateAndCount(t *testing.T) {
	stores, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO payments`).
		WithArgs("PAY_1", "RES_1", "PAY_1", model.PaymentCreated, int64(9)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM payments`).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	ctx := context.Background()
	require.NoError(t, stores.Payments.Create(ctx, model.Payment{ID: "PAY_1", ReservationID: "RES_1", ExternalID: "PAY_1", Status: model.PaymentCreated, CreatedAt: 9}))
	n, err := stores.Payments.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
