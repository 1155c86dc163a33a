package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the AES-256 key size
	KeySize = 32

	// SaltSize is the size of the random per-blob salt
	SaltSize = 16

	// saltInfo is used for HKDF key derivation to provide domain separation
	saltInfo = "totpvault-accounts-v1"

	maxTime      = 16
	maxMemoryKiB = 1 << 20 // 1 GiB
)

// Params are the Argon2id cost parameters. They are stored in every blob,
// so changing them only affects newly encrypted data.
type Params struct {
	Time      uint32 // Number of passes over memory
	MemoryKiB uint32 // Memory cost in KiB
	Threads   uint8  // Degree of parallelism
}

// DefaultParams follow the RFC 9106 second recommended option.
var DefaultParams = Params{
	Time:      3,
	MemoryKiB: 64 * 1024,
	Threads:   4,
}

// Validate checks that the parameters are usable and not absurdly expensive.
func (p Params) Validate() error {
	if p.Time == 0 || p.Time > maxTime {
		return ErrInvalidParams
	}
	if p.Threads == 0 {
		return ErrInvalidParams
	}
	if p.MemoryKiB < 8*uint32(p.Threads) || p.MemoryKiB > maxMemoryKiB {
		return ErrInvalidParams
	}
	return nil
}

// deriveKey stretches the password with Argon2id and expands the result
// into the AES key with HKDF-SHA256.
// The caller is responsible for clearing the returned key with clearBytes.
func deriveKey(password string, salt []byte, p Params) ([]byte, error) {
	master := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, KeySize)
	defer clearBytes(master)

	hkdfReader := hkdf.New(sha256.New, master, salt, []byte(saltInfo))

	derivedKey := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdfReader, derivedKey); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return derivedKey, nil
}

// clearBytes zeros out a byte slice holding key material.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func newSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return salt, nil
}
