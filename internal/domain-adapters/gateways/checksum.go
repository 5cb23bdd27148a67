package gateways

import (
	//nolint:gosec // G505: SHA-1 is what upstream library manifests declare
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// VerifyChecksum verifies a file's SHA-1 checksum against the value declared
// by a library manifest. Pure Go, no external binary needed.
func VerifyChecksum(filePath, expectedSum string) error {
	actualSum, err := CalculateChecksum(filePath)
	if err != nil {
		return err
	}
	if !strings.EqualFold(actualSum, expectedSum) {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expectedSum, actualSum)
	}
	return nil
}

// CalculateChecksum calculates the SHA-1 checksum of a file
func CalculateChecksum(filePath string) (string, error) {
	//nolint:gosec // G304: File path is caller-provided for checksum verification
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	//nolint:gosec // G401: upstream manifests declare SHA-1 sums
	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
