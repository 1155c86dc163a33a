package vault

import (
	"errors"
	"regexp"
	"strings"

	"github.com/dmitrymomot/totpvault/pkg/totp"
)

const (
	DefaultCategory = "Uncategorized"
	DefaultColor    = "#6366f1"
)

// DefaultCategories are offered when organizing accounts.
var DefaultCategories = []string{
	"Social Media",
	"Email",
	"Finance",
	"Work",
	"Shopping",
	"Gaming",
	"Entertainment",
	DefaultCategory,
}

// ColorOption is a named palette color.
type ColorOption struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// ColorOptions is the palette offered for account colors.
var ColorOptions = []ColorOption{
	{"Red", "#ef4444"},
	{"Orange", "#f97316"},
	{"Amber", "#f59e0b"},
	{"Yellow", "#eab308"},
	{"Lime", "#84cc16"},
	{"Green", "#22c55e"},
	{"Emerald", "#10b981"},
	{"Teal", "#14b8a6"},
	{"Cyan", "#06b6d4"},
	{"Sky", "#0ea5e9"},
	{"Blue", "#3b82f6"},
	{"Indigo", "#6366f1"},
	{"Violet", "#8b5cf6"},
	{"Purple", "#a855f7"},
	{"Fuchsia", "#d946ef"},
	{"Pink", "#ec4899"},
	{"Rose", "#f43f5e"},
}

// ColorByName resolves a palette name (case-insensitive) to its hex value.
func ColorByName(name string) (string, bool) {
	for _, c := range ColorOptions {
		if strings.EqualFold(c.Name, name) {
			return c.Value, true
		}
	}
	return "", false
}

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Account is one stored TOTP credential. The JSON form is the persisted and
// exported representation.
type Account struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Issuer    string         `json:"issuer" yaml:"issuer"`
	Secret    string         `json:"secret" yaml:"secret"`
	Algorithm totp.Algorithm `json:"algorithm" yaml:"algorithm"`
	Digits    int            `json:"digits" yaml:"digits"`
	Period    int            `json:"period" yaml:"period"`
	Category  string         `json:"category" yaml:"category"`
	Color     string         `json:"color" yaml:"color"`
	Icon      Icon           `json:"icon,omitempty" yaml:"icon,omitempty"`
	CreatedAt int64          `json:"createdAt" yaml:"createdAt"` // unix milliseconds
}

// NewAccount is the user-supplied part of an Account.
// Zero-valued optional fields receive defaults on Add.
type NewAccount struct {
	Name      string
	Issuer    string
	Secret    string
	Algorithm totp.Algorithm
	Digits    int
	Period    int
	Category  string
	Color     string
	Icon      Icon
}

func (n NewAccount) account() Account {
	return Account{
		Name:      n.Name,
		Issuer:    n.Issuer,
		Secret:    n.Secret,
		Algorithm: n.Algorithm,
		Digits:    n.Digits,
		Period:    n.Period,
		Category:  n.Category,
		Color:     n.Color,
		Icon:      n.Icon,
	}
}

// Params returns the generator parameters of the account.
func (a Account) Params() totp.Params {
	return totp.Params{
		Secret:    a.Secret,
		Algorithm: a.Algorithm,
		Digits:    a.Digits,
		Period:    a.Period,
	}.GetDefaults()
}

// Key returns the provisioning data of the account.
func (a Account) Key() totp.Key {
	return totp.Key{
		Label:     a.Name,
		Issuer:    a.Issuer,
		Secret:    a.Secret,
		Algorithm: a.Algorithm,
		Digits:    a.Digits,
		Period:    a.Period,
	}
}

// WithDefaults trims text fields and fills zero-valued optional fields.
// A valid secret is rewritten into canonical form.
func (a Account) WithDefaults() Account {
	a.Name = strings.TrimSpace(a.Name)
	a.Issuer = strings.TrimSpace(a.Issuer)
	a.Category = strings.TrimSpace(a.Category)
	a.Color = strings.TrimSpace(a.Color)

	if alg, err := totp.ParseAlgorithm(string(a.Algorithm)); err == nil {
		a.Algorithm = alg
	}
	if a.Digits == 0 {
		a.Digits = totp.DefaultDigits
	}
	if a.Period == 0 {
		a.Period = totp.DefaultPeriod
	}
	if a.Category == "" {
		a.Category = DefaultCategory
	}
	if a.Color == "" {
		a.Color = DefaultColor
	}
	a.Icon = ParseIcon(string(a.Icon))

	if secret, err := totp.NormalizeSecret(a.Secret); err == nil {
		a.Secret = secret
	}
	return a
}

// Validate reports the first problem that would prevent code generation or
// display. The returned error wraps ErrInvalidAccount.
func (a Account) Validate() error {
	var err error
	switch {
	case a.Name == "":
		err = errors.New("account name is required")
	case a.Issuer == "":
		err = errors.New("issuer is required")
	case strings.TrimSpace(a.Secret) == "":
		err = totp.ErrMissingSecret
	case !hexColorRegex.MatchString(a.Color):
		err = errors.New("color must be a #rrggbb value")
	}
	if err != nil {
		return errors.Join(ErrInvalidAccount, err)
	}

	if _, err := totp.DecodeSecret(a.Secret); err != nil {
		return errors.Join(ErrInvalidAccount, err)
	}
	if err := a.Params().Validate(); err != nil {
		return errors.Join(ErrInvalidAccount, err)
	}
	return nil
}
