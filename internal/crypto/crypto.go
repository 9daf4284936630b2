// Package crypto encrypts field values before they reach storage.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// Service encrypts and decrypts stored values. Empty strings pass through
// unchanged so the absence of a value never produces ciphertext.
type Service interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// Noop passes values through without encryption (dev/test mode).
type Noop struct{}

func (Noop) Encrypt(plaintext string) (string, error)  { return plaintext, nil }
func (Noop) Decrypt(ciphertext string) (string, error) { return ciphertext, nil }

// AESGCM encrypts values with AES-256-GCM. Output is hex-encoded
// nonce || ciphertext || tag.
type AESGCM struct {
	gcm cipher.AEAD
}

// NewAESGCM builds a service from a 64-character hex key (32 bytes).
func NewAESGCM(hexKey string) (*AESGCM, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key hex: %w", err)
	}
	return newAESGCM(key)
}

// NewAESGCMFromPassphrase derives the key from a passphrase with PBKDF2.
// The salt must stay stable across restarts or existing values become
// unreadable.
func NewAESGCMFromPassphrase(passphrase, salt string) (*AESGCM, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase must not be empty")
	}
	key := pbkdf2.Key([]byte(passphrase), []byte(salt), 210_000, 32, sha256.New)
	return newAESGCM(key)
}

func newAESGCM(key []byte) (*AESGCM, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return &AESGCM{gcm: gcm}, nil
}

func (s *AESGCM) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	ciphertext := s.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(ciphertext), nil
}

func (s *AESGCM) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	buffer, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("decode hex: %w", err)
	}
	nonceSize := s.gcm.NonceSize()
	if len(buffer) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}
	nonce, cipherBytes := buffer[:nonceSize], buffer[nonceSize:]
	plainBytes, err := s.gcm.Open(nil, nonce, cipherBytes, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	return string(plainBytes), nil
}
