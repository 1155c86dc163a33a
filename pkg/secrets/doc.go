// Package secrets provides password-based authenticated encryption for data
// kept at rest on the user's device.
//
// A password is stretched with Argon2id over a random 16-byte salt. The result
// is expanded with HKDF-SHA-256 (info "totpvault-accounts-v1") into an AES-256
// key, and the data is sealed with AES-GCM under a random 12-byte nonce.
//
// # Blob format
//
// Encrypt returns standard base64 of
//
//	version(1) | time(4) | memoryKiB(4) | threads(1) | salt(16) | nonce(12) | ciphertext+tag
//
// Integers are big-endian. The Argon2id cost travels with the blob, so
// decryption needs only the password and the cost can be raised later without
// breaking existing data. The header is passed to GCM as additional data.
//
// # Usage
//
//	c := secrets.New() // DefaultParams: time 3, 64 MiB, 4 threads
//
//	blob, err := c.Encrypt(`[{"name":"alice"}]`, password)
//	if err != nil {
//	    // handle error
//	}
//
//	plain, err := c.Decrypt(blob, password)
//	if errors.Is(err, secrets.ErrDecryptionFailed) {
//	    // wrong password or modified blob
//	}
//
// EncryptString and DecryptString do the same with a shared default Cipher.
//
// # Error Handling
//
// Errors wrap sentinels such as ErrDecryptionFailed, ErrInvalidCiphertext and
// ErrUnsupportedVersion. Use errors.Is to match them.
package secrets
