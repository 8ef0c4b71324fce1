// Package cryptox holds the at-rest cryptography used by the on-device stores:
// argon2id key derivation for the secret store's wrapping key and AES-GCM
// sealing for secret and key-value payloads. The development backend reuses
// DeriveKey for password hashes.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/sambulosenda/glamfric-mobile/internal/common"
	"golang.org/x/crypto/argon2"
)

// KeySize is the length in bytes of every symmetric key handled here (AES-256).
const KeySize = 32

// ErrCiphertextTooShort is returned by Open when the input cannot even hold a nonce.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

// DeriveKey stretches a low-entropy device secret into a KeySize key.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, KeySize)
}

// NewKey returns a fresh random KeySize key.
func NewKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// NewHexKey returns a fresh random key, hex-encoded for storage as a string.
func NewHexKey() (string, error) {
	key, err := NewKey()
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(key)
	return hex.EncodeToString(key), nil
}

// ParseHexKey decodes a key produced by NewHexKey and checks its length.
func ParseHexKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	if len(key) != KeySize {
		return nil, common.ErrInvalidKeyLength
	}
	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext with AES-GCM under key. The random nonce is
// prepended to the returned ciphertext. aad is authenticated but not stored;
// Open must be given the same bytes.
func Seal(plaintext, key, aad []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return aesgcm.Seal(nonce, nonce, plaintext, aad), nil
}

// Open reverses Seal. It fails if the key or aad is wrong or the data was
// tampered with.
func Open(sealed, key, aad []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	ns := aesgcm.NonceSize()
	if len(sealed) < ns {
		return nil, ErrCiphertextTooShort
	}

	return aesgcm.Open(nil, sealed[:ns], sealed[ns:], aad)
}
