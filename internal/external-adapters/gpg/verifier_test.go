package gpg

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
)

// newTestKey generates a throwaway signing key and writes its armored public
// half to a file, returning the entity and the key file path.
func newTestKey(t *testing.T) (*openpgp.Entity, string) {
	t.Helper()

	entity, err := openpgp.NewEntity("releases", "", "releases@example.com", nil)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}

	keyPath := filepath.Join(t.TempDir(), "release.asc")
	f, err := os.Create(keyPath)
	if err != nil {
		t.Fatalf("creating key file: %v", err)
	}
	w, err := armor.Encode(f, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatalf("starting armor block: %v", err)
	}
	if err := entity.Serialize(w); err != nil {
		t.Fatalf("serializing public key: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing armor block: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing key file: %v", err)
	}
	return entity, keyPath
}

func TestVerifier_ImportKeyFromFile(t *testing.T) {
	_, keyPath := newTestKey(t)

	v := NewVerifier()
	if err := v.ImportKeyFromFile(keyPath); err != nil {
		t.Fatalf("ImportKeyFromFile() error = %v", err)
	}
	if v.KeyringSize() != 1 {
		t.Errorf("KeyringSize() = %d, want 1", v.KeyringSize())
	}
}

func TestVerifier_ImportKeyErrors(t *testing.T) {
	v := NewVerifier()

	if err := v.ImportKeyFromFile(filepath.Join(t.TempDir(), "absent.asc")); err == nil {
		t.Error("ImportKeyFromFile() error = nil, want error for missing file")
	}

	garbage := filepath.Join(t.TempDir(), "garbage.asc")
	if err := os.WriteFile(garbage, []byte("not a key"), 0640); err != nil {
		t.Fatalf("writing garbage key: %v", err)
	}
	if err := v.ImportKeyFromFile(garbage); err == nil {
		t.Error("ImportKeyFromFile() error = nil, want error for unparsable key")
	}
}

func TestVerifier_VerifyDetached(t *testing.T) {
	entity, keyPath := newTestKey(t)

	artifact := filepath.Join(t.TempDir(), "installer.jar")
	content := []byte("installer payload")
	if err := os.WriteFile(artifact, content, 0640); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}

	var sig bytes.Buffer
	if err := openpgp.ArmoredDetachSign(&sig, entity, bytes.NewReader(content), nil); err != nil {
		t.Fatalf("signing artifact: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		//nolint:errcheck // Test server write
		w.Write(sig.Bytes())
	}))
	defer server.Close()

	v := NewVerifier()
	if err := v.ImportKeyFromFile(keyPath); err != nil {
		t.Fatalf("ImportKeyFromFile() error = %v", err)
	}

	if err := v.VerifyDetached(context.Background(), artifact, server.URL); err != nil {
		t.Errorf("VerifyDetached() error = %v, want valid signature accepted", err)
	}

	// A tampered artifact must fail.
	if err := os.WriteFile(artifact, []byte("tampered payload"), 0640); err != nil {
		t.Fatalf("tampering artifact: %v", err)
	}
	if err := v.VerifyDetached(context.Background(), artifact, server.URL); err == nil {
		t.Error("VerifyDetached() error = nil, want verification failure for tampered file")
	}
}

func TestVerifier_VerifyDetachedWithoutKeys(t *testing.T) {
	v := NewVerifier()

	err := v.VerifyDetached(context.Background(), "installer.jar", "https://example.com/installer.jar.asc")
	if err == nil {
		t.Error("VerifyDetached() error = nil, want error with empty keyring")
	}
}

func TestVerifier_VerifyDetachedSignatureUnavailable(t *testing.T) {
	_, keyPath := newTestKey(t)

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	v := NewVerifier()
	if err := v.ImportKeyFromFile(keyPath); err != nil {
		t.Fatalf("ImportKeyFromFile() error = %v", err)
	}
	if err := v.VerifyDetached(context.Background(), "installer.jar", server.URL); err == nil {
		t.Error("VerifyDetached() error = nil, want error for missing signature")
	}
}
