package services

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"lawyer_tools/config"
	"log"
	"sync"

	"golang.org/x/crypto/hkdf"
)

var (
	// ErrEncryptionKeyNotSet indicates no data encryption key has been configured
	ErrEncryptionKeyNotSet = errors.New("data encryption key is not set")
	// ErrInvalidCiphertext indicates the ciphertext is malformed or too short
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)

const encryptionKeyInfo = "lawyer-tools contact data v1"

var (
	encryptionKeyMu sync.RWMutex
	encryptionKey   []byte
)

// InitializeEncryption configures the data encryption key.
// DATA_ENCRYPTION_KEY (base64, 32 bytes) wins; otherwise the key is derived from SESSION_SECRET.
func InitializeEncryption(cfg *config.Config) error {
	var (
		key []byte
		err error
	)

	switch {
	case cfg.DataEncryptionKey != "":
		key, err = decodeEncryptionKey(cfg.DataEncryptionKey)
	case cfg.SessionSecret != "":
		key, err = DeriveEncryptionKey(cfg.SessionSecret)
		if err == nil {
			log.Println("[WARNING] DATA_ENCRYPTION_KEY not set, deriving key from SESSION_SECRET")
		}
	default:
		return ErrEncryptionKeyNotSet
	}
	if err != nil {
		return err
	}

	SetEncryptionKey(key)
	return nil
}

// SetEncryptionKey replaces the active key; nil disables encryption
func SetEncryptionKey(key []byte) {
	encryptionKeyMu.Lock()
	defer encryptionKeyMu.Unlock()
	encryptionKey = key
}

func getEncryptionKey() ([]byte, error) {
	encryptionKeyMu.RLock()
	defer encryptionKeyMu.RUnlock()
	if len(encryptionKey) == 0 {
		return nil, ErrEncryptionKeyNotSet
	}
	return encryptionKey, nil
}

func decodeEncryptionKey(keyStr string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(keyStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes (got %d bytes)", len(key))
	}
	return key, nil
}

// DeriveEncryptionKey expands a secret into a 32-byte AES-256 key with HKDF-SHA256
func DeriveEncryptionKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrEncryptionKeyNotSet
	}
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(encryptionKeyInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}
	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// EncryptSensitiveData encrypts plaintext using AES-256-GCM.
// Returns base64-encoded nonce||ciphertext.
func EncryptSensitiveData(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	key, err := getEncryptionKey()
	if err != nil {
		return "", err
	}
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptSensitiveData reverses EncryptSensitiveData
func DecryptSensitiveData(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	key, err := getEncryptionKey()
	if err != nil {
		return "", err
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	if len(data) < gcm.NonceSize() {
		return "", ErrInvalidCiphertext
	}

	nonce, cipherData := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, cipherData, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}

	return string(plaintext), nil
}

// GenerateEncryptionKey generates a new random 32-byte key and returns it as base64.
// Use this to generate a value for DATA_ENCRYPTION_KEY.
func GenerateEncryptionKey() (string, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
