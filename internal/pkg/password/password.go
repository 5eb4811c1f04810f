// Package password hashes account passwords with bcrypt and refresh tokens
// with SHA-256.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCost = 12
	MinLength   = 8
	// MaxLength is the most bytes bcrypt will hash.
	MaxLength = 72
)

// ErrTooLong is returned by Hash for input bcrypt would reject.
var ErrTooLong = errors.New("password exceeds 72 bytes")

// Cost is the bcrypt cost used by Hash. Overridden from BCRYPT_COST at startup.
var Cost = DefaultCost

// Acceptable reports whether plain satisfies the length policy.
func Acceptable(plain string) bool {
	n := len(plain)
	return n >= MinLength && n <= MaxLength
}

func Hash(plain string) (string, error) {
	if len(plain) > MaxLength {
		return "", ErrTooLong
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. Malformed digests never match.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// HashToken returns the hex SHA-256 digest stored in place of a refresh token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareToken reports in constant time whether token hashes to digest.
func CompareToken(token, digest string) bool {
	stored, err := hex.DecodeString(digest)
	if err != nil || len(stored) != sha256.Size {
		return false
	}
	sum := sha256.Sum256([]byte(token))
	return subtle.ConstantTimeCompare(sum[:], stored) == 1
}
