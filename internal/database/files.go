package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iliyamo/localrot/internal/model"
)

// Collection file names inside the data directory.
const (
	UsersFile        = "users.json"
	ReservationsFile = "reservations.json"
	PaymentsFile     = "payments.json"
)

// FileDB is the handle for the JSON snapshot store.  It is opened once at
// startup and closed at shutdown.
type FileDB struct {
	Dir          string
	Users        *Collection[model.User]
	Reservations *Collection[model.Reservation]
	Payments     *Collection[model.Payment]
}

// OpenFiles creates dir if needed and opens the three collections.
func OpenFiles(dir string) (*FileDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	users, err := NewCollection[model.User](filepath.Join(dir, UsersFile))
	if err != nil {
		return nil, err
	}
	reservations, err := NewCollection[model.Reservation](filepath.Join(dir, ReservationsFile))
	if err != nil {
		return nil, err
	}
	payments, err := NewCollection[model.Payment](filepath.Join(dir, PaymentsFile))
	if err != nil {
		return nil, err
	}
	return &FileDB{Dir: dir, Users: users, Reservations: reservations, Payments: payments}, nil
}

// Close marks every collection closed.  Later calls fail with ErrClosed.
func (db *FileDB) Close() error {
	db.Users.close()
	db.Reservations.close()
	db.Payments.close()
	return nil
}
