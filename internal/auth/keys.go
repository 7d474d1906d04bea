// Package auth issues and verifies the PASETO access tokens that identify
// readers.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// keyLength is the v4.local symmetric key size. The key file stores it hex
// encoded.
const keyLength = 32

// LoadOrGenerateKey returns the key stored at keyPath. A missing file is
// created with a fresh random key and 0600 permissions, so every token issued
// before a restart stays valid after it.
func LoadOrGenerateKey(keyPath string) ([]byte, error) {
	//#nosec G304 -- key path comes from operator configuration
	raw, err := os.ReadFile(keyPath)
	switch {
	case err == nil:
		return decodeKey(string(raw))
	case errors.Is(err, fs.ErrNotExist):
		return generateKey(keyPath)
	default:
		return nil, fmt.Errorf("read auth key: %w", err)
	}
}

func decodeKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s) != hex.EncodedLen(keyLength) {
		return nil, fmt.Errorf("invalid auth key length: expected %d hex chars, got %d", hex.EncodedLen(keyLength), len(s))
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid auth key: %w", err)
	}
	return key, nil
}

func generateKey(keyPath string) ([]byte, error) {
	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate auth key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0o700); err != nil {
		return nil, fmt.Errorf("create key directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("save auth key: %w", err)
	}
	return key, nil
}
