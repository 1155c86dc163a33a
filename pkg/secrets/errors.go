package secrets

import "errors"

var (
	// Input errors
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrInvalidParams = errors.New("invalid key derivation parameters")

	// Encryption/decryption errors
	ErrEncryptionFailed   = errors.New("encryption failed")
	ErrDecryptionFailed   = errors.New("decryption failed")
	ErrInvalidCiphertext  = errors.New("invalid ciphertext format")
	ErrUnsupportedVersion = errors.New("unsupported ciphertext version")

	// Key derivation errors
	ErrKeyDerivationFailed = errors.New("key derivation failed")
)
