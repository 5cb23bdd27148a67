// Package gpg provides GPG signature verification for downloaded installers.
package gpg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
)

const armoredSigPrefix = "-----BEGIN PGP SIGNATURE---"

// Verifier checks detached signatures against an imported keyring using
// ProtonMail's go-crypto, a maintained fork of golang.org/x/crypto/openpgp.
// This is in external-adapters to isolate the external dependency.
type Verifier struct {
	keyring    openpgp.EntityList
	httpClient *http.Client
}

// NewVerifier creates a new GPG verifier
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ImportKeyFromFile imports a GPG key from a local file, armored or binary
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is user-provided for GPG key import
	f, err := os.Open(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	keys, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		if _, seekErr := f.Seek(0, 0); seekErr != nil {
			return fmt.Errorf("failed to reset key file: %w", seekErr)
		}
		keys, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}
	if len(keys) == 0 {
		return fmt.Errorf("no keys found in %s", keyPath)
	}

	v.keyring = append(v.keyring, keys...)
	return nil
}

// VerifyDetached downloads a detached signature and verifies filePath
// against it. Loader maven repositories publish the signature next to the
// artifact under the same URL with an .asc suffix.
func (v *Verifier) VerifyDetached(ctx context.Context, filePath, sigURL string) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported, call ImportKeyFromFile first")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sigURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create signature request: %w", err)
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download signature: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("signature download failed with status %d", resp.StatusCode)
	}

	// Detached signatures are tiny; cap the read to keep a misbehaving
	// server from feeding us arbitrary data.
	sigData, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024))
	if err != nil {
		return fmt.Errorf("failed to read signature: %w", err)
	}
	if len(sigData) < 10 {
		return fmt.Errorf("signature file too small to be a valid GPG signature")
	}

	//nolint:gosec // G304: filePath is the downloaded artifact being verified
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	sig := bytes.NewReader(sigData)
	var verifyErr error
	if len(sigData) >= len(armoredSigPrefix) && string(sigData[:len(armoredSigPrefix)]) == armoredSigPrefix {
		_, verifyErr = openpgp.CheckArmoredDetachedSignature(v.keyring, f, sig, nil)
	} else {
		_, verifyErr = openpgp.CheckDetachedSignature(v.keyring, f, sig, nil)
	}
	if verifyErr != nil {
		return fmt.Errorf("signature verification failed: %w", verifyErr)
	}
	return nil
}

// KeyringSize returns the number of imported keys
func (v *Verifier) KeyringSize() int {
	return len(v.keyring)
}
