package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// defaultSize is the size in pixels used when no size is specified
const defaultSize = 256

// level is the error correction used for every code.
const level = skipqrcode.Low

// Matrix encodes payload as a square raster of modules, true meaning dark.
// The quiet zone is not included; callers draw their own margin.
func Matrix(payload string) ([][]bool, error) {
	q, err := newCode(payload)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	return q.Bitmap(), nil
}

// Generate creates a QR code image in PNG format with the given content.
// Returns the image as a byte slice or an error if generation fails.
func Generate(content string, size int) ([]byte, error) {
	q, err := newCode(content)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := q.PNG(size)
	if err != nil {
		return nil, errors.Join(ErrorFailedToGenerateQRCode, err)
	}
	return png, nil
}

// GenerateBase64Image creates a base64 encoded string representation of a QR code
// image with the given content. Returns a data URI or an error if generation fails.
//
//	dataURI, err := GenerateBase64Image("otpauth://totp/Acme:alice?secret=JBSWY3DPEHPK3PXP", 256)
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	base64Image := base64.StdEncoding.EncodeToString(png)
	return fmt.Sprintf("data:image/png;base64,%s", base64Image), nil
}

// Terminal renders payload with Unicode half blocks, two modules per character
// row, for display in a terminal with a dark background.
func Terminal(payload string) (string, error) {
	q, err := newCode(payload)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(false), nil
}

func newCode(content string) (*skipqrcode.QRCode, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	q, err := skipqrcode.New(content, level)
	if err != nil {
		return nil, errors.Join(ErrorFailedToGenerateQRCode, err)
	}
	return q, nil
}
