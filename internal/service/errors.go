package service

import "errors"

// Errors returned by the services.  Handlers map them to HTTP statuses.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUsernameTaken       = errors.New("user already exists")
	ErrReservationNotFound = errors.New("reservation not found")
)

// ValidationError reports a request that failed input checks.  Its
// message is safe to return to the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// ValidationMessage returns the client-facing message of a
// ValidationError in err's chain.
func ValidationMessage(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Msg, true
	}
	return "", false
}
