package database

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"

	"chatwire/internal/constants"

	"golang.org/x/crypto/pbkdf2"
)

// encryptor transparently encrypts stored message bodies when
// CHATWIRE_ENCRYPTION_SECRET is set. With no secret present it passes values
// through unchanged.
type encryptor struct {
	gcm cipher.AEAD
}

func NewEncryptor() (*encryptor, error) {
	secret := os.Getenv("CHATWIRE_ENCRYPTION_SECRET")
	if secret == "" {
		return &encryptor{gcm: nil}, nil
	}

	if len(secret) < constants.MinSecretLength {
		return nil, fmt.Errorf("encryption secret must be at least %d characters", constants.MinSecretLength)
	}

	key := pbkdf2.Key([]byte(secret), []byte("chatwire-message-store"), constants.PBKDF2Iterations, constants.EncryptionKeySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &encryptor{gcm: gcm}, nil
}

// Enabled reports whether values are actually encrypted
func (e *encryptor) Enabled() bool {
	return e.gcm != nil
}

func (e *encryptor) Encrypt(plaintext string) (string, error) {
	if plaintext == "" || e.gcm == nil {
		return plaintext, nil
	}

	nonce := make([]byte, constants.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := e.gcm.Seal(nil, nonce, []byte(plaintext), nil)
	// Nonce is prepended to the ciphertext for storage
	result := append(nonce, ciphertext...)
	return base64.StdEncoding.EncodeToString(result), nil
}

func (e *encryptor) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" || e.gcm == nil {
		return ciphertext, nil
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	if len(data) < constants.NonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, payload := data[:constants.NonceSize], data[constants.NonceSize:]
	plaintext, err := e.gcm.Open(nil, nonce, payload, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}

	return string(plaintext), nil
}
