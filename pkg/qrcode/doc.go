// Package qrcode turns provisioning URIs into QR codes and checks strings
// decoded from scanned QR images.
//
// The package is a thin wrapper around github.com/skip2/go-qrcode. All codes
// use the lowest error correction level.
//
//   - Matrix returns the raw module grid without quiet zone.
//   - Generate returns a PNG image and GenerateBase64Image a data URI.
//   - Terminal renders the code with Unicode half blocks for a CLI.
//   - ValidateScanned accepts only payloads starting with otpauth://.
//
// Decoding camera frames or image files into strings is out of scope. A scanner
// hands the decoded text to ValidateScanned and then to totp.ParseURI.
//
// # Usage
//
//	png, err := qrcode.Generate(uri, 256)
//	if err != nil {
//		// handle error
//	}
//
//	payload, err := qrcode.ValidateScanned(decoded)
//	if errors.Is(err, qrcode.ErrNotTOTPQRCode) {
//		// show "not a valid TOTP QR code"
//	}
//
// # Error Handling
//
//   - ErrEmptyContent: the content argument was empty.
//   - ErrorFailedToGenerateQRCode: the underlying library could not encode the payload.
//   - ErrNotTOTPQRCode: a scanned payload is not an otpauth URI.
package qrcode
