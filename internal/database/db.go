package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// schema mirrors the JSON documents one table per collection.  Times are
// kept as Unix milliseconds so both backends return identical records.
// Tables use a binary collation: usernames, ids and gateway references
// compare byte for byte, so "Alice" and "alice" are different users just
// as in the JSON store.  Tables created before this collation was set
// keep theirs and must be converted by hand.
const tableOptions = `DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(32) NOT NULL PRIMARY KEY,
		username VARCHAR(191) NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at BIGINT NOT NULL,
		UNIQUE KEY uq_users_username (username)
	) ` + tableOptions,
	`CREATE TABLE IF NOT EXISTS reservations (
		seq BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		id VARCHAR(32) NOT NULL,
		username VARCHAR(191) NOT NULL,
		game VARCHAR(255) NOT NULL,
		type VARCHAR(16) NOT NULL,
		amount DOUBLE NOT NULL,
		date VARCHAR(64) NULL,
		email VARCHAR(255) NOT NULL,
		price DOUBLE NOT NULL,
		status VARCHAR(32) NOT NULL,
		created_at BIGINT NOT NULL,
		UNIQUE KEY uq_reservations_id (id),
		KEY idx_reservations_username (username)
	) ` + tableOptions,
	`CREATE TABLE IF NOT EXISTS payments (
		seq BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		id VARCHAR(32) NOT NULL,
		reservation_id VARCHAR(32) NOT NULL,
		external_id VARCHAR(191) NOT NULL,
		status VARCHAR(32) NOT NULL,
		created_at BIGINT NOT NULL,
		UNIQUE KEY uq_payments_id (id),
		KEY idx_payments_external_id (external_id)
	) ` + tableOptions,
}

// Migrate creates the tables used by the MySQL store when missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
