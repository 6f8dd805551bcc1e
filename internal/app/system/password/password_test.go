package password_test

import (
	"errors"
	"testing"

	"github.com/civicwatch/civicwatch/internal/app/system/password"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := password.Hash("Sunny123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "Sunny123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := password.Compare(hash, "Sunny123"); err != nil {
		t.Errorf("Compare with correct password: %v", err)
	}
	if err := password.Compare(hash, "Sunny124"); !errors.Is(err, password.ErrMismatch) {
		t.Errorf("Compare with wrong password: got %v, want ErrMismatch", err)
	}
}

func TestHashIsSalted(t *testing.T) {
	h1, err := password.Hash("Sunny123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := password.Hash("Sunny123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"valid", "Abc123", nil},
		{"valid long", "LongerPassword99", nil},
		{"too short", "Ab1", password.ErrTooShort},
		{"five chars", "Abc12", password.ErrTooShort},
		{"no uppercase", "abc123", password.ErrTooWeak},
		{"no lowercase", "ABC123", password.ErrTooWeak},
		{"no digit", "Abcdef", password.ErrTooWeak},
		{"symbol", "Abc123!", password.ErrTooWeak},
		{"space", "Abc 123", password.ErrTooWeak},
		{"empty", "", password.ErrTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := password.Validate(tt.password)
			if !errors.Is(got, tt.want) && got != tt.want {
				t.Errorf("Validate(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}
