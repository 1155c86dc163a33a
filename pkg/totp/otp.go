package totp

import (
	"crypto/hmac"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultDigits    = 6    // Standard 6-digit TOTP codes
	DefaultPeriod    = 30   // 30-second validity window (RFC 6238 standard)
	DefaultAlgorithm = SHA1 // HMAC-SHA1 algorithm (RFC 6238 standard)

	MinDigits = 4
	MaxDigits = 10
	MinPeriod = 10
	MaxPeriod = 60
)

var pow10 = [...]uint64{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000,
	100_000_000, 1_000_000_000, 10_000_000_000,
}

// Params describes everything needed to compute a code for one account.
type Params struct {
	Secret    string    // Base32-encoded shared secret
	Algorithm Algorithm // HMAC hash, defaults to SHA1
	Digits    int       // Code length, defaults to 6
	Period    int       // Window length in seconds, defaults to 30
}

// GetDefaults returns a copy with RFC 6238 standard defaults applied to zero-valued fields
func (p Params) GetDefaults() Params {
	if p.Algorithm == "" {
		p.Algorithm = DefaultAlgorithm
	}
	if p.Digits == 0 {
		p.Digits = DefaultDigits
	}
	if p.Period == 0 {
		p.Period = DefaultPeriod
	}
	return p
}

// Validate checks the numeric bounds and algorithm. The secret is checked
// separately by DecodeSecret so callers get ErrInvalidSecretFormat.
func (p Params) Validate() error {
	if !p.Algorithm.Valid() {
		return ErrInvalidAlgorithm
	}
	if p.Digits < MinDigits || p.Digits > MaxDigits {
		return ErrInvalidDigits
	}
	if p.Period < MinPeriod || p.Period > MaxPeriod {
		return ErrInvalidPeriod
	}
	return nil
}

// GenerateHOTP implements RFC 4226 HMAC-based One-Time Password algorithm.
// The result is left-padded with zeros to exactly digits characters.
func GenerateHOTP(key []byte, counter uint64, digits int, alg Algorithm) string {
	if digits <= 0 || digits >= len(pow10) {
		digits = DefaultDigits
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(alg.Hash(), key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation (RFC 4226): use last 4 bits as offset into hash
	offset := sum[len(sum)-1] & 0x0f
	code := uint64(binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff)

	return fmt.Sprintf("%0*d", digits, code%pow10[digits])
}

// Counter returns the RFC 6238 time step T = floor(unix / period).
// Times before the Unix epoch map to counter 0.
func Counter(t time.Time, period int) uint64 {
	unix := t.Unix()
	if unix < 0 || period <= 0 {
		return 0
	}
	return uint64(unix) / uint64(period)
}

// Generate computes the code for the window containing t.
// The same params and time always yield the same code.
func Generate(p Params, t time.Time) (string, error) {
	p = p.GetDefaults()
	if err := p.Validate(); err != nil {
		return "", errors.Join(ErrFailedToGenerateTOTP, err)
	}

	key, err := signingKey(p.Secret)
	if err != nil {
		return "", errors.Join(ErrFailedToGenerateTOTP, err)
	}

	return GenerateHOTP(key, Counter(t, p.Period), p.Digits, p.Algorithm), nil
}

// signingKey decodes secret and rejects an empty key.
func signingKey(secret string) ([]byte, error) {
	key, err := DecodeSecret(secret)
	if err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, ErrMissingSecret
	}
	return key, nil
}

// GenerateNow generates a code for the current time.
func GenerateNow(p Params) (string, error) {
	return Generate(p, time.Now())
}

// RemainingSeconds returns how long the code for t stays valid, in [1, period].
// It equals period right after a window boundary.
func RemainingSeconds(period int, t time.Time) int {
	if period <= 0 {
		period = DefaultPeriod
	}
	elapsed := t.Unix() % int64(period)
	if elapsed < 0 {
		elapsed += int64(period)
	}
	return period - int(elapsed)
}

// Validate reports whether code matches the window containing t or one of
// skew windows on either side of it.
func Validate(p Params, code string, t time.Time, skew int) (bool, error) {
	p = p.GetDefaults()
	if err := p.Validate(); err != nil {
		return false, err
	}

	code = strings.TrimSpace(code)
	if len(code) != p.Digits || strings.Trim(code, "0123456789") != "" {
		return false, ErrInvalidOTP
	}

	key, err := signingKey(p.Secret)
	if err != nil {
		return false, err
	}

	counter := int64(Counter(t, p.Period))
	for i := -skew; i <= skew; i++ {
		c := counter + int64(i)
		if c < 0 {
			continue
		}
		expected := GenerateHOTP(key, uint64(c), p.Digits, p.Algorithm)
		if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1 {
			return true, nil
		}
	}

	return false, nil
}
