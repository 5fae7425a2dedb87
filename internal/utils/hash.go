package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor applied when hashing account passwords.
const bcryptCost = 10

// HashPassword hashes a plaintext password with bcrypt using the fixed
// package cost factor. The resulting digest embeds its own salt and cost,
// so no additional bookkeeping is required for verification.
//
// Returns an error if password is empty or bcrypt fails (e.g. the input
// exceeds bcrypt's 72-byte limit).
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password provided")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// CheckPassword reports whether password matches the stored bcrypt digest.
// The underlying comparison is constant-time with respect to the digest.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
