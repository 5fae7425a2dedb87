package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// verificationTokenBytes is the number of random bytes backing a
// verification token. 16 bytes gives 128 bits of entropy, which makes
// collisions and guessing negligible over any realistic account population.
const verificationTokenBytes = 16

// NewVerificationToken produces a statistically-unguessable one-time token
// for the email verification flow. The token is independent of any account
// content and is returned hex-encoded (32 characters).
func NewVerificationToken() (string, error) {
	buf := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating verification token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
