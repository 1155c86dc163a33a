package totp

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"strings"
)

// Algorithm is the HMAC hash function used to derive codes.
type Algorithm string

const (
	SHA1   Algorithm = "SHA1"
	SHA256 Algorithm = "SHA256"
	SHA512 Algorithm = "SHA512"
)

// ParseAlgorithm maps a case-insensitive name to an Algorithm.
// An empty name yields the RFC 6238 default, SHA1.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToUpper(strings.TrimSpace(name))) {
	case "", SHA1:
		return SHA1, nil
	case SHA256:
		return SHA256, nil
	case SHA512:
		return SHA512, nil
	default:
		return "", ErrInvalidAlgorithm
	}
}

func (a Algorithm) Valid() bool {
	switch a {
	case SHA1, SHA256, SHA512:
		return true
	}
	return false
}

// Hash returns the hash constructor for HMAC. Unknown values fall back to SHA1,
// callers are expected to check Valid first.
func (a Algorithm) Hash() func() hash.Hash {
	switch a {
	case SHA256:
		return sha256.New
	case SHA512:
		return sha512.New
	default:
		return sha1.New
	}
}

func (a Algorithm) String() string {
	return string(a)
}
