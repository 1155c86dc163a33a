package vault

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/totpvault/pkg/totp"
)

// AccountURI renders the account as an otpauth://totp URI.
func AccountURI(a Account) (string, error) {
	return totp.BuildURI(a.Key())
}

// AccountFromURI builds a complete account from an otpauth://totp URI, as
// produced by scanning a QR code. It gets a new id, the default category and
// color, an icon suggested from the issuer and createdAt set to now.
func AccountFromURI(raw string, now time.Time) (*Account, error) {
	key, err := totp.ParseURI(raw)
	if err != nil {
		return nil, err
	}

	a := fromKey(key).account().WithDefaults()
	a.ID = uuid.NewString()
	a.CreatedAt = now.UnixMilli()
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// ParseAccountURI is AccountFromURI at the current time, returning nil for
// anything that is not a valid TOTP provisioning URI.
func ParseAccountURI(raw string) *Account {
	a, err := AccountFromURI(raw, time.Now())
	if err != nil {
		return nil
	}
	return a
}

// AddURI parses an otpauth URI and adds the resulting account.
func (s *Store) AddURI(ctx context.Context, raw string) (Account, error) {
	key, err := totp.ParseURI(raw)
	if err != nil {
		return Account{}, err
	}
	return s.Add(ctx, fromKey(key))
}

func fromKey(key totp.Key) NewAccount {
	return NewAccount{
		Name:      key.Label,
		Issuer:    key.Issuer,
		Secret:    key.Secret,
		Algorithm: key.Algorithm,
		Digits:    key.Digits,
		Period:    key.Period,
		Icon:      SuggestIcon(key.Issuer),
	}
}
