package totp

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"regexp"
	"strings"
)

// secretSize is 160 bits, the RFC 4226 recommendation for HMAC-SHA1 keys.
const secretSize = 20

var (
	// ValidateSecretKeyRegex ensures Base32 format: uppercase A-Z, digits 2-7, optional padding
	ValidateSecretKeyRegex = regexp.MustCompile("^[A-Z2-7]+=*$")

	secretEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

	secretCleaner = strings.NewReplacer(" ", "", "\t", "", "\n", "", "\r", "")
)

// DecodeSecret decodes a Base32 (RFC 4648) secret into raw key bytes.
// Input may be lowercase, padded, or grouped with spaces.
// Trailing bits that do not fit a whole byte must be zero, so that
// EncodeSecret(DecodeSecret(s)) always returns the canonical form of s.
// An empty secret decodes to an empty key; code generation rejects it.
func DecodeSecret(secret string) ([]byte, error) {
	s := strings.ToUpper(secretCleaner.Replace(secret))
	if s == "" {
		return []byte{}, nil
	}
	if !ValidateSecretKeyRegex.MatchString(s) {
		return nil, ErrInvalidSecretFormat
	}
	s = strings.TrimRight(s, "=")

	// 1, 3 and 6 trailing characters cannot carry a whole byte (RFC 4648 section 6)
	switch len(s) % 8 {
	case 1, 3, 6:
		return nil, ErrInvalidSecretFormat
	}

	key, err := secretEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Join(ErrInvalidSecretFormat, err)
	}
	if secretEncoding.EncodeToString(key) != s {
		return nil, ErrInvalidSecretFormat
	}

	return key, nil
}

// EncodeSecret encodes raw key bytes as uppercase, unpadded Base32.
func EncodeSecret(key []byte) string {
	return secretEncoding.EncodeToString(key)
}

// NormalizeSecret returns the canonical uppercase, unpadded form of a secret.
func NormalizeSecret(secret string) (string, error) {
	key, err := DecodeSecret(secret)
	if err != nil {
		return "", err
	}
	return EncodeSecret(key), nil
}

// GenerateSecret generates a new Base32-encoded secret key for TOTP.
func GenerateSecret() (string, error) {
	secret := make([]byte, secretSize)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecretKey, err)
	}
	return EncodeSecret(secret), nil
}
