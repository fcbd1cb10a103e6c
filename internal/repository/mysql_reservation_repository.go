package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/localrot/internal/model"
)

// MySQLReservationRepo stores reservations in the 'reservations' table.
// The auto-increment seq column preserves creation order.
type MySQLReservationRepo struct {
	db *sql.DB
}

func NewMySQLReservationRepo(db *sql.DB) *MySQLReservationRepo {
	return &MySQLReservationRepo{db: db}
}

var _ ReservationStore = (*MySQLReservationRepo)(nil)

const reservationColumns = `id, username, game, type, amount, date, email, price, status, created_at`

func (r *MySQLReservationRepo) Create(ctx context.Context, res model.Reservation) error {
	const q = `INSERT INTO reservations (` + reservationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var date sql.NullString
	if res.Date != nil {
		date = sql.NullString{String: *res.Date, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, q, res.ID, res.Username, res.Game, res.Type, res.Amount,
		date, res.Email, res.Price, res.Status, res.CreatedAt)
	return err
}

func (r *MySQLReservationRepo) GetByID(ctx context.Context, id string) (model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ? ORDER BY seq LIMIT 1`
	rows, err := r.db.QueryContext(ctx, q, id)
	if err != nil {
		return model.Reservation{}, err
	}
	items, err := scanReservations(rows)
	if err != nil {
		return model.Reservation{}, err
	}
	if len(items) == 0 {
		return model.Reservation{}, ErrNotFound
	}
	return items[0], nil
}

func (r *MySQLReservationRepo) ListByUsername(ctx context.Context, username string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE username = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, q, username)
	if err != nil {
		return nil, err
	}
	return scanReservations(rows)
}

func (r *MySQLReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return scanReservations(rows)
}

func (r *MySQLReservationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reservations SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports 0 affected rows when the value is unchanged, so
		// confirm the row really is missing before failing.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var (
			res  model.Reservation
			date sql.NullString
		)
		if err := rows.Scan(&res.ID, &res.Username, &res.Game, &res.Type, &res.Amount,
			&date, &res.Email, &res.Price, &res.Status, &res.CreatedAt); err != nil {
			return nil, err
		}
		if date.Valid {
			d := date.String
			res.Date = &d
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
