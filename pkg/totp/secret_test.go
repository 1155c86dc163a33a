package totp_test

import (
	"crypto/rand"
	"testing"

	"github.com/dmitrymomot/totpvault/pkg/totp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecret()
	require.NoError(t, err)
	assert.Len(t, secret, 32)
	assert.Regexp(t, totp.ValidateSecretKeyRegex, secret)

	key, err := totp.DecodeSecret(secret)
	require.NoError(t, err)
	assert.Len(t, key, 20)

	other, err := totp.GenerateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

func TestSecretRoundTrip(t *testing.T) {
	t.Parallel()

	for size := 0; size <= 64; size++ {
		key := make([]byte, size)
		_, err := rand.Read(key)
		require.NoError(t, err)

		encoded := totp.EncodeSecret(key)
		assert.NotContains(t, encoded, "=")

		decoded, err := totp.DecodeSecret(encoded)
		require.NoError(t, err, "size %d", size)
		assert.Equal(t, key, decoded, "size %d", size)
	}
}

func TestDecodeSecret(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr error
	}{
		{
			name:  "canonical",
			input: "JBSWY3DPEHPK3PXP",
			want:  []byte("Hello!\xde\xad\xbe\xef"),
		},
		{
			name:  "lowercase",
			input: "jbswy3dpehpk3pxp",
			want:  []byte("Hello!\xde\xad\xbe\xef"),
		},
		{
			name:  "grouped with spaces",
			input: " JBSW Y3DP EHPK 3PXP ",
			want:  []byte("Hello!\xde\xad\xbe\xef"),
		},
		{
			name:  "padded",
			input: "MZXW6===",
			want:  []byte("foo"),
		},
		{
			name:  "unpadded partial block",
			input: "MZXW6",
			want:  []byte("foo"),
		},
		{
			name:  "empty",
			input: "",
			want:  []byte{},
		},
		{
			name:  "whitespace only",
			input: " \t ",
			want:  []byte{},
		},
		{
			name:    "character outside alphabet",
			input:   "JBSWY3DPEHPK3PX1",
			wantErr: totp.ErrInvalidSecretFormat,
		},
		{
			name:    "padding in the middle",
			input:   "MZ=XW6",
			wantErr: totp.ErrInvalidSecretFormat,
		},
		{
			name:    "impossible length 1",
			input:   "A",
			wantErr: totp.ErrInvalidSecretFormat,
		},
		{
			name:    "impossible length 3",
			input:   "ABC",
			wantErr: totp.ErrInvalidSecretFormat,
		},
		{
			name:    "impossible length 6",
			input:   "ABCDEF",
			wantErr: totp.ErrInvalidSecretFormat,
		},
		{
			name:    "non-zero trailing bits",
			input:   "MZXW7",
			wantErr: totp.ErrInvalidSecretFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := totp.DecodeSecret(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeSecret(t *testing.T) {
	t.Parallel()

	got, err := totp.NormalizeSecret("jbsw y3dp ehpk 3pxp")
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", got)

	got, err = totp.NormalizeSecret("mzxw6===")
	require.NoError(t, err)
	assert.Equal(t, "MZXW6", got)

	got, err = totp.NormalizeSecret("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = totp.NormalizeSecret("not base32!")
	assert.ErrorIs(t, err, totp.ErrInvalidSecretFormat)
}
