package crypto_test

import (
	"strings"
	"testing"

	"github.com/asafonov/blog-backend/internal/common/crypto"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := &crypto.BcryptHasher{}

	hash, err := hasher.Hash("pw")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hash == "pw" || strings.Contains(hash, "pw") {
		t.Error("hash must not contain the raw password")
	}

	if err := hasher.Compare(hash, "pw"); err != nil {
		t.Errorf("expected matching password to compare clean, got %v", err)
	}
	if err := hasher.Compare(hash, "wrong"); err == nil {
		t.Error("expected mismatch error")
	}
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := &crypto.BcryptHasher{}

	first, err := hasher.Hash("pw")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := hasher.Hash("pw")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password must differ")
	}
}
