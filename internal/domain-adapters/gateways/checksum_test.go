package gateways

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVerifyChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.jar")
	if err := os.WriteFile(path, []byte("hello"), 0640); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	// SHA-1 of "hello".
	sum := "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"

	if err := VerifyChecksum(path, sum); err != nil {
		t.Errorf("VerifyChecksum() error = %v, want match", err)
	}
	// Case-insensitive comparison.
	if err := VerifyChecksum(path, "AAF4C61DDCC5E8A2DABEDE0F3B482CD9AEA9434D"); err != nil {
		t.Errorf("VerifyChecksum() error = %v, want case-insensitive match", err)
	}
	if err := VerifyChecksum(path, "0000000000000000000000000000000000000000"); err == nil {
		t.Error("VerifyChecksum() error = nil, want mismatch error")
	}
}

func TestCalculateChecksum_MissingFile(t *testing.T) {
	if _, err := CalculateChecksum(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("CalculateChecksum() error = nil, want error for missing file")
	}
}
