package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/localrot/internal/model"
)

// MySQLPaymentRepo stores payments in the 'payments' table.
type MySQLPaymentRepo struct {
	db *sql.DB
}

func NewMySQLPaymentRepo(db *sql.DB) *MySQLPaymentRepo { return &MySQLPaymentRepo{db: db} }

var _ PaymentStore = (*MySQLPaymentRepo)(nil)

func (r *MySQLPaymentRepo) Create(ctx context.Context, p model.Payment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (id, reservation_id, external_id, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.ReservationID, p.ExternalID, p.Status, p.CreatedAt)
	return err
}

func (r *MySQLPaymentRepo) GetByExternalID(ctx context.Context, externalID string) (model.Payment, error) {
	if externalID == "" {
		return model.Payment{}, ErrNotFound
	}
	var p model.Payment
	err := r.db.QueryRowContext(ctx,
		`SELECT id, reservation_id, external_id, status, created_at FROM payments WHERE external_id = ? ORDER BY seq LIMIT 1`,
		externalID).Scan(&p.ID, &p.ReservationID, &p.ExternalID, &p.Status, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Payment{}, ErrNotFound
	}
	return p, err
}

func (r *MySQLPaymentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE payments SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		var exists int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM payments WHERE id = ? LIMIT 1`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (r *MySQLPaymentRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments`).Scan(&n)
	return n, err
}
