package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Password hashing schemes selectable through PASSWORD_HASH.
const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// HashPassword returns the digest of plain under the given scheme.
// sha256 is a single unsalted round kept for compatibility with
// existing user files; bcrypt uses cost.
func HashPassword(plain, scheme string, cost int) (string, error) {
	if scheme == SchemeBcrypt {
		b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return sha256Hex(plain), nil
}

// VerifyPassword compares plain against hash.  The scheme is detected
// from the stored value so both kinds of record can coexist.
func VerifyPassword(hash, plain string) bool {
	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(hash), []byte(sha256Hex(plain))) == 1
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
