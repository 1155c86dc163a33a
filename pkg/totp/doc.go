// Package totp implements the client side of RFC 4226 (HOTP) and RFC 6238 (TOTP):
// Base32 secret handling, code generation and the otpauth:// provisioning URI
// format used by authenticator apps and QR codes.
//
// Every function in the package is pure and safe for concurrent use. Nothing is
// persisted here; storing secrets is the job of the vault package.
//
// # Secrets
//
// Secrets are exchanged as RFC 4648 Base32. DecodeSecret accepts lowercase,
// padded and space-grouped input and rejects anything that would not survive
// a round trip, so EncodeSecret(DecodeSecret(s)) is always the canonical form
// of s. GenerateSecret returns 160 random bits.
//
// # Codes
//
// Generate derives the code for the time step containing t:
//
//	code, err := totp.Generate(totp.Params{
//	    Secret:    "JBSWY3DPEHPK3PXP",
//	    Algorithm: totp.SHA1,
//	    Digits:    6,
//	    Period:    30,
//	}, time.Now())
//
// Zero-valued Algorithm, Digits and Period fall back to SHA1, 6 and 30.
// RemainingSeconds reports how long the current code stays valid and Validate
// checks a code typed by the user, allowing for clock skew.
//
// # Provisioning URIs
//
// BuildURI and ParseURI convert between Key and
//
//	otpauth://totp/Issuer:alice@example.com?secret=...&issuer=Issuer&algorithm=SHA1&digits=6&period=30
//
// Only the totp type is supported. ParseURI returns ErrUnsupportedURIScheme for
// otpauth://hotp and for any other scheme.
//
// # Errors
//
// The package exposes sentinel errors such as ErrInvalidSecretFormat,
// ErrFailedToGenerateTOTP and ErrMalformedURI. Wrapped errors can be checked
// with errors.Is.
package totp
