package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secreto123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hash == "secreto123" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !VerifyPassword(hash, "secreto123") {
		t.Error("correct password should verify")
	}
	if VerifyPassword(hash, "secreto124") {
		t.Error("wrong password should not verify")
	}
	if VerifyPassword(hash, "") {
		t.Error("empty password should not verify")
	}
}

func TestPasswordFreshSaltPerCall(t *testing.T) {
	h1, err := HashPassword("same-input", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	h2, err := HashPassword("same-input", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same plaintext should differ (random salt)")
	}
	if !VerifyPassword(h1, "same-input") || !VerifyPassword(h2, "same-input") {
		t.Error("both hashes should verify the original plaintext")
	}
}

func TestRefreshTokenHashIsStable(t *testing.T) {
	tok, err := NewRefreshToken(1)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
	if len(tok.Raw) != 96 {
		t.Errorf("expected 96 hex chars, got %d", len(tok.Raw))
	}
	if HashRefreshRaw(tok.Raw) != HashRefreshRaw(tok.Raw) {
		t.Error("hashing the same raw token twice must be deterministic")
	}
}
