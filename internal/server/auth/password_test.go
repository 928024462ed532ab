package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword([]byte("s3cret"))
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}
	if strings.Contains(hash, "s3cret") {
		t.Fatalf("hash contains the plaintext password")
	}

	if !CheckPassword([]byte("s3cret"), hash) {
		t.Fatalf("expected password to match its own hash")
	}
	if CheckPassword([]byte("wrong"), hash) {
		t.Fatalf("expected mismatching password to fail")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword([]byte("same"))
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	b, err := HashPassword([]byte("same"))
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password should differ (random salt)")
	}
}
