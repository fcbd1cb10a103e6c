// Package repository defines the record stores for users, reservations
// and payments together with the sentinel errors they share.  Handlers
// and services use errors.Is against these values to tell a missing
// record apart from a storage failure.
package repository

import "errors"

// ErrNotFound is returned when a lookup by id, username or external
// reference matches no record.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned by UserStore.Create when the username is
// already taken.  Handlers translate this into an HTTP 409 response.
var ErrUsernameExists = errors.New("username already exists")
