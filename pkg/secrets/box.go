package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

var (
	ErrInvalidKey        = errors.New("encryption key must be 32 bytes hex-encoded")
	ErrCiphertextInvalid = errors.New("ciphertext is malformed or corrupted")
)

// Box seals per-user provider secrets before they hit the database. API keys
// never land on disk in plaintext.
type Box struct {
	key [32]byte
}

// NewBox builds a Box from a 64-char hex key (32 bytes).
func NewBox(hexKey string) (*Box, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil || len(raw) != 32 {
		return nil, ErrInvalidKey
	}
	b := &Box{}
	copy(b.key[:], raw)
	return b, nil
}

// Seal encrypts a secret. Output is base64(nonce || ciphertext).
func (b *Box) Seal(secret string) (string, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(secret), &nonce, &b.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal.
func (b *Box) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrCiphertextInvalid
	}
	if len(raw) < 24+secretbox.Overhead {
		return "", ErrCiphertextInvalid
	}

	var nonce [24]byte
	copy(nonce[:], raw[:24])

	plain, ok := secretbox.Open(nil, raw[24:], &nonce, &b.key)
	if !ok {
		return "", ErrCiphertextInvalid
	}
	return string(plain), nil
}
