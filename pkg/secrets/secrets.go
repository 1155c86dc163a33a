package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"io"
)

// Version is the current blob format.
const Version byte = 1

const (
	nonceSize = 12
	tagSize   = 16

	// version | time | memory | threads | salt
	headerSize = 1 + 4 + 4 + 1 + SaltSize
	minBlob    = headerSize + nonceSize + tagSize
)

// Cipher encrypts data under a password. A Cipher holds no key material and
// is safe for concurrent use.
type Cipher struct {
	params Params
}

// Option configures a Cipher.
type Option func(*Cipher)

// WithParams sets the Argon2id cost used for new blobs.
func WithParams(p Params) Option {
	return func(c *Cipher) {
		c.params = p
	}
}

// New creates a Cipher using DefaultParams unless overridden.
func New(opts ...Option) *Cipher {
	c := &Cipher{params: DefaultParams}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Params returns the parameters used for new blobs.
func (c *Cipher) Params() Params {
	return c.params
}

// Encrypt encrypts plaintext under password and returns a base64 blob that
// carries everything needed for decryption except the password.
func (c *Cipher) Encrypt(plaintext, password string) (string, error) {
	blob, err := c.EncryptBytes([]byte(plaintext), password)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt reverses Encrypt. A wrong password or a modified blob yields
// ErrDecryptionFailed, never garbage.
func (c *Cipher) Decrypt(ciphertext, password string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errors.Join(ErrInvalidCiphertext, err)
	}

	plaintext, err := c.DecryptBytes(blob, password)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// EncryptBytes encrypts raw bytes.
// Output format: version | time | memoryKiB | threads | salt | nonce | ciphertext+tag
func (c *Cipher) EncryptBytes(data []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if err := c.params.Validate(); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	salt, err := newSalt()
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	header := make([]byte, headerSize, minBlob+len(data))
	header[0] = Version
	binary.BigEndian.PutUint32(header[1:5], c.params.Time)
	binary.BigEndian.PutUint32(header[5:9], c.params.MemoryKiB)
	header[9] = c.params.Threads
	copy(header[10:], salt)

	aesGCM, err := newGCM(password, salt, c.params)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	// The header is authenticated so the stored cost parameters cannot be swapped.
	out := append(header, nonce...)
	return aesGCM.Seal(out, nonce, data, header), nil
}

// DecryptBytes decrypts a blob produced by EncryptBytes. The cost parameters
// are read from the blob, not from the Cipher.
func (c *Cipher) DecryptBytes(blob []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if len(blob) < minBlob {
		return nil, ErrInvalidCiphertext
	}
	if blob[0] != Version {
		return nil, ErrUnsupportedVersion
	}

	p := Params{
		Time:      binary.BigEndian.Uint32(blob[1:5]),
		MemoryKiB: binary.BigEndian.Uint32(blob[5:9]),
		Threads:   blob[9],
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidCiphertext, err)
	}

	header := blob[:headerSize]
	salt := blob[10:headerSize]
	nonce := blob[headerSize : headerSize+nonceSize]
	sealed := blob[headerSize+nonceSize:]

	aesGCM, err := newGCM(password, salt, p)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	plaintext, err := aesGCM.Open(nil, nonce, sealed, header)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	return plaintext, nil
}

func newGCM(password string, salt []byte, p Params) (cipher.AEAD, error) {
	key, err := deriveKey(password, salt, p)
	if err != nil {
		return nil, err
	}
	defer clearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

var defaultCipher = New()

// EncryptString encrypts plaintext under password with DefaultParams.
func EncryptString(password, plaintext string) (string, error) {
	return defaultCipher.Encrypt(plaintext, password)
}

// DecryptString decrypts a blob produced by EncryptString or any Cipher.
func DecryptString(password, ciphertext string) (string, error) {
	return defaultCipher.Decrypt(ciphertext, password)
}
