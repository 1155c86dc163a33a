package totp

import "errors"

var (
	ErrFailedToGenerateSecretKey = errors.New("failed to generate TOTP secret key")
	ErrFailedToGenerateTOTP      = errors.New("failed to generate TOTP")
	ErrMissingSecret             = errors.New("missing secret")
	ErrMissingAccountName        = errors.New("missing account name")
	ErrInvalidSecretFormat       = errors.New("invalid secret format: not a valid base32 string")
	ErrInvalidAlgorithm          = errors.New("invalid algorithm: must be SHA1, SHA256 or SHA512")
	ErrInvalidDigits             = errors.New("invalid digits: must be between 4 and 10")
	ErrInvalidPeriod             = errors.New("invalid period: must be between 10 and 60 seconds")
	ErrInvalidOTP                = errors.New("invalid OTP format")
	ErrMalformedURI              = errors.New("malformed otpauth URI")
	ErrUnsupportedURIScheme      = errors.New("unsupported URI: only otpauth://totp is supported")
)
