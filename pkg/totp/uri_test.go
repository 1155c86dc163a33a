package totp_test

import (
	"testing"

	"github.com/dmitrymomot/totpvault/pkg/totp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     totp.Key
		want    string
		wantErr error
	}{
		{
			name: "defaults",
			key: totp.Key{
				Label:  "alice@example.com",
				Issuer: "Google",
				Secret: "JBSWY3DPEHPK3PXP",
			},
			want: "otpauth://totp/Google:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Google&algorithm=SHA1&digits=6&period=30",
		},
		{
			name: "custom parameters",
			key: totp.Key{
				Label:     "bob",
				Issuer:    "GitHub",
				Secret:    "jbsw y3dp ehpk 3pxp",
				Algorithm: totp.SHA256,
				Digits:    8,
				Period:    60,
			},
			want: "otpauth://totp/GitHub:bob?secret=JBSWY3DPEHPK3PXP&issuer=GitHub&algorithm=SHA256&digits=8&period=60",
		},
		{
			name: "special characters",
			key: totp.Key{
				Label:  "test user@example.com",
				Issuer: "Test & App",
				Secret: "JBSWY3DPEHPK3PXP",
			},
			want: "otpauth://totp/Test%20&%20App:test%20user@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Test%20%26%20App&algorithm=SHA1&digits=6&period=30",
		},
		{
			name: "colon in issuer is escaped",
			key: totp.Key{
				Label:  "alice",
				Issuer: "Acme:Prod",
				Secret: "JBSWY3DPEHPK3PXP",
			},
			want: "otpauth://totp/Acme%3AProd:alice?secret=JBSWY3DPEHPK3PXP&issuer=Acme%3AProd&algorithm=SHA1&digits=6&period=30",
		},
		{
			name: "no issuer",
			key: totp.Key{
				Label:  "alice",
				Secret: "JBSWY3DPEHPK3PXP",
			},
			want: "otpauth://totp/alice?secret=JBSWY3DPEHPK3PXP&algorithm=SHA1&digits=6&period=30",
		},
		{
			name:    "missing label",
			key:     totp.Key{Issuer: "Google", Secret: "JBSWY3DPEHPK3PXP"},
			wantErr: totp.ErrMissingAccountName,
		},
		{
			name:    "missing secret",
			key:     totp.Key{Label: "alice"},
			wantErr: totp.ErrMissingSecret,
		},
		{
			name:    "invalid secret",
			key:     totp.Key{Label: "alice", Secret: "1111"},
			wantErr: totp.ErrInvalidSecretFormat,
		},
		{
			name:    "invalid digits",
			key:     totp.Key{Label: "alice", Secret: "JBSWY3DPEHPK3PXP", Digits: 12},
			wantErr: totp.ErrInvalidDigits,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := totp.BuildURI(tt.key)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    totp.Key
		wantErr []error
	}{
		{
			name: "full uri",
			raw:  "otpauth://totp/Example:alice@google.com?secret=JBSWY3DPEHPK3PXP&issuer=Example&algorithm=SHA256&digits=8&period=60",
			want: totp.Key{Label: "alice@google.com", Issuer: "Example", Secret: "JBSWY3DPEHPK3PXP", Algorithm: totp.SHA256, Digits: 8, Period: 60},
		},
		{
			name: "defaults for optional parameters",
			raw:  "otpauth://totp/Example:alice@google.com?secret=JBSWY3DPEHPK3PXP&issuer=Example",
			want: totp.Key{Label: "alice@google.com", Issuer: "Example", Secret: "JBSWY3DPEHPK3PXP", Algorithm: totp.SHA1, Digits: 6, Period: 30},
		},
		{
			name: "issuer parameter wins over label prefix",
			raw:  "otpauth://totp/Old:alice?secret=JBSWY3DPEHPK3PXP&issuer=New",
			want: totp.Key{Label: "alice", Issuer: "New", Secret: "JBSWY3DPEHPK3PXP", Algorithm: totp.SHA1, Digits: 6, Period: 30},
		},
		{
			name: "issuer from label prefix",
			raw:  "otpauth://totp/Acme:%20alice?secret=JBSWY3DPEHPK3PXP",
			want: totp.Key{Label: "alice", Issuer: "Acme", Secret: "JBSWY3DPEHPK3PXP", Algorithm: totp.SHA1, Digits: 6, Period: 30},
		},
		{
			name: "encoded separator",
			raw:  "otpauth://totp/Acme%3Aalice?secret=JBSWY3DPEHPK3PXP",
			want: totp.Key{Label: "alice", Issuer: "Acme", Secret: "JBSWY3DPEHPK3PXP", Algorithm: totp.SHA1, Digits: 6, Period: 30},
		},
		{
			name: "missing name and issuer",
			raw:  "otpauth://totp/?secret=JBSWY3DPEHPK3PXP",
			want: totp.Key{Label: totp.UnknownLabel, Issuer: totp.UnknownLabel, Secret: "JBSWY3DPEHPK3PXP", Algorithm: totp.SHA1, Digits: 6, Period: 30},
		},
		{
			name: "label without issuer",
			raw:  "otpauth://totp/alice?secret=JBSWY3DPEHPK3PXP",
			want: totp.Key{Label: "alice", Issuer: totp.UnknownLabel, Secret: "JBSWY3DPEHPK3PXP", Algorithm: totp.SHA1, Digits: 6, Period: 30},
		},
		{
			name: "case insensitive scheme and lowercase secret",
			raw:  "OTPAUTH://TOTP/Acme:alice?secret=jbswy3dpehpk3pxp&algorithm=sha512",
			want: totp.Key{Label: "alice", Issuer: "Acme", Secret: "JBSWY3DPEHPK3PXP", Algorithm: totp.SHA512, Digits: 6, Period: 30},
		},
		{
			name:    "hotp is rejected",
			raw:     "otpauth://hotp/Acme:alice?secret=JBSWY3DPEHPK3PXP&counter=1",
			wantErr: []error{totp.ErrUnsupportedURIScheme},
		},
		{
			name:    "other scheme",
			raw:     "https://example.com/?secret=JBSWY3DPEHPK3PXP",
			wantErr: []error{totp.ErrUnsupportedURIScheme},
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: []error{totp.ErrMalformedURI},
		},
		{
			name:    "unparsable",
			raw:     "otpauth://totp/%zz?secret=JBSWY3DPEHPK3PXP",
			wantErr: []error{totp.ErrMalformedURI},
		},
		{
			name:    "missing secret",
			raw:     "otpauth://totp/Acme:alice?issuer=Acme",
			wantErr: []error{totp.ErrMalformedURI, totp.ErrMissingSecret},
		},
		{
			name:    "invalid secret",
			raw:     "otpauth://totp/Acme:alice?secret=ABC",
			wantErr: []error{totp.ErrMalformedURI, totp.ErrInvalidSecretFormat},
		},
		{
			name:    "invalid algorithm",
			raw:     "otpauth://totp/Acme:alice?secret=JBSWY3DPEHPK3PXP&algorithm=MD5",
			wantErr: []error{totp.ErrMalformedURI, totp.ErrInvalidAlgorithm},
		},
		{
			name:    "non numeric digits",
			raw:     "otpauth://totp/Acme:alice?secret=JBSWY3DPEHPK3PXP&digits=six",
			wantErr: []error{totp.ErrMalformedURI, totp.ErrInvalidDigits},
		},
		{
			name:    "period out of range",
			raw:     "otpauth://totp/Acme:alice?secret=JBSWY3DPEHPK3PXP&period=600",
			wantErr: []error{totp.ErrMalformedURI, totp.ErrInvalidPeriod},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := totp.ParseURI(tt.raw)
			if len(tt.wantErr) > 0 {
				require.Error(t, err)
				for _, want := range tt.wantErr {
					assert.ErrorIs(t, err, want)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestURIRoundTrip(t *testing.T) {
	t.Parallel()

	keys := []totp.Key{
		{Label: "alice@example.com", Issuer: "Google", Secret: "JBSWY3DPEHPK3PXP", Algorithm: totp.SHA1, Digits: 6, Period: 30},
		{Label: "bob smith", Issuer: "Test & App", Secret: "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ", Algorithm: totp.SHA512, Digits: 8, Period: 60},
		{Label: "ops:root", Issuer: "Acme:Prod", Secret: "MZXW6", Algorithm: totp.SHA256, Digits: 7, Period: 15},
		{Label: "ünïcødé", Issuer: "Société Générale", Secret: "JBSWY3DPEHPK3PXP", Algorithm: totp.SHA1, Digits: 6, Period: 30},
	}

	for _, key := range keys {
		uri, err := totp.BuildURI(key)
		require.NoError(t, err)

		got, err := totp.ParseURI(uri)
		require.NoError(t, err, uri)
		assert.Equal(t, key, got, uri)
	}
}
