package qrcode

import "strings"

const otpauthPrefix = "otpauth://"

// ValidateScanned checks a string decoded from a QR image by an external
// scanner. It returns the trimmed payload when it looks like a provisioning URI.
// Full parsing is left to the totp package.
func ValidateScanned(raw string) (string, error) {
	payload := strings.TrimSpace(raw)
	if payload == "" {
		return "", ErrEmptyContent
	}
	if len(payload) < len(otpauthPrefix) || !strings.EqualFold(payload[:len(otpauthPrefix)], otpauthPrefix) {
		return "", ErrNotTOTPQRCode
	}
	return payload, nil
}
