package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// Record id prefixes.
const (
	PrefixUser        = "USR"
	PrefixReservation = "RES"
	PrefixPayment     = "PAY"
)

// NewID returns "<prefix>_<12 hex chars>" from 6 random bytes.
// Uniqueness is probabilistic; callers do not check for collisions.
func NewID(prefix string) (string, error) {
	raw, err := randomHex(6)
	if err != nil {
		return "", err
	}
	return prefix + "_" + raw, nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
