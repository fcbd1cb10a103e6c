package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/localrot/internal/database"
)

// NewFileStores wires the JSON snapshot repositories over an open FileDB.
func NewFileStores(db *database.FileDB) *Stores {
	return &Stores{
		Users:        NewUserRepo(db.Users),
		Reservations: NewReservationRepo(db.Reservations),
		Payments:     NewPaymentRepo(db.Payments),
		closer:       db.Close,
	}
}

// NewMySQLStores wires the MySQL repositories over db.  Close closes db.
func NewMySQLStores(db *sql.DB) *Stores {
	return &Stores{
		Users:        NewMySQLUserRepo(db),
		Reservations: NewMySQLReservationRepo(db),
		Payments:     NewMySQLPaymentRepo(db),
		closer:       db.Close,
	}
}

// OpenFileStores opens the JSON snapshot store under dir.
func OpenFileStores(dir string) (*Stores, error) {
	db, err := database.OpenFiles(dir)
	if err != nil {
		return nil, err
	}
	return NewFileStores(db), nil
}

// OpenMySQLStores connects, migrates and wires the MySQL store.
func OpenMySQLStores(ctx context.Context, user, pass, host, port, name string) (*Stores, error) {
	db, err := database.Open(user, pass, host, port, name)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewMySQLStores(db), nil
}
