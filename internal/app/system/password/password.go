// Package password makes hashing an explicit step in account registration
// and edits: after Hash returns, the stored field never holds plaintext.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// hashCost matches the work factor the accounts were originally created with,
// so existing hashes keep verifying.
const hashCost = 10

// MinLength is the minimum accepted password length.
const MinLength = 6

var (
	// ErrMismatch is returned by Compare when the candidate does not match.
	ErrMismatch = errors.New("password does not match")

	// ErrTooShort is returned by Validate for passwords under MinLength.
	ErrTooShort = errors.New("password must be at least 6 characters long")

	// ErrTooWeak is returned by Validate when a character-class rule fails.
	ErrTooWeak = errors.New("password must contain at least one uppercase letter, one lowercase letter, and one number")
)

// Hash derives a salted bcrypt hash from a plaintext password.
func Hash(raw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(raw), hashCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Compare verifies a candidate against a stored hash. The comparison cost is
// dominated by bcrypt and does not depend on where the mismatch occurs.
func Compare(hash, candidate string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}

// Validate enforces the registration strength rules: at least MinLength
// characters, one lowercase letter, one uppercase letter, one digit, and
// letters/digits only.
func Validate(raw string) error {
	if len(raw) < MinLength {
		return ErrTooShort
	}
	var lower, upper, digit bool
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			return ErrTooWeak
		}
	}
	if !lower || !upper || !digit {
		return ErrTooWeak
	}
	return nil
}
