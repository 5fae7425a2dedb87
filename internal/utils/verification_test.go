package utils

import (
	"encoding/hex"
	"testing"
)

func TestNewVerificationToken_Shape(t *testing.T) {
	token, err := NewVerificationToken()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(token) != verificationTokenBytes*2 {
		t.Errorf("expected %d hex characters, got %d", verificationTokenBytes*2, len(token))
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Errorf("token is not valid hex: %v", err)
	}
}

func TestNewVerificationToken_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		token, err := NewVerificationToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := seen[token]; ok {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = struct{}{}
	}
}
