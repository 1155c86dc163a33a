package qrcode

import "errors"

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrorFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrorFailedToGenerateQRCode = errors.New("failed to generate QR code")
	// ErrNotTOTPQRCode is returned when a scanned payload is not an otpauth URI.
	ErrNotTOTPQRCode = errors.New("not a valid TOTP QR code")
)
