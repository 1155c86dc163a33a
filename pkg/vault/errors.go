package vault

import (
	"errors"

	"github.com/dmitrymomot/totpvault/pkg/secrets"
)

var (
	// Lifecycle errors
	ErrNotInitialized     = errors.New("vault: no password has been set")
	ErrLocked             = errors.New("vault: locked")
	ErrPasswordAlreadySet = errors.New("vault: password already set")
	ErrAlreadyUnlocked    = errors.New("vault: already unlocked")
	ErrEmptyPassword      = errors.New("vault: password cannot be empty")
	ErrPasswordTooShort   = errors.New("vault: password must be at least 6 characters")
	ErrWrongPassword      = errors.New("vault: current password is incorrect")

	// Account errors
	ErrAccountNotFound = errors.New("vault: account not found")
	ErrInvalidAccount  = errors.New("vault: invalid account")
	ErrInvalidImport   = errors.New("vault: invalid import data")

	// Persistence errors
	ErrStorageRead  = errors.New("vault: failed to read storage")
	ErrStorageWrite = errors.New("vault: failed to write storage")
)

// ErrDecryptionFailed is returned by Unlock when the stored collection cannot
// be decrypted or parsed with the supplied password.
var ErrDecryptionFailed = secrets.ErrDecryptionFailed
