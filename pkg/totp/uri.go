package totp

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

const (
	uriScheme = "otpauth"
	uriType   = "totp"

	// UnknownLabel is used when a provisioning URI carries no account name or issuer.
	UnknownLabel = "Unknown"
)

// Key is the provisioning data carried by an otpauth://totp URI.
type Key struct {
	Label     string    // Account name, e.g. alice@example.com
	Issuer    string    // Service name, e.g. Google
	Secret    string    // Base32-encoded shared secret
	Algorithm Algorithm // Defaults to SHA1
	Digits    int       // Defaults to 6
	Period    int       // Defaults to 30
}

// Params returns the generator parameters for the key.
func (k Key) Params() Params {
	return Params{
		Secret:    k.Secret,
		Algorithm: k.Algorithm,
		Digits:    k.Digits,
		Period:    k.Period,
	}
}

// BuildURI renders k as an otpauth://totp URI understood by authenticator apps.
// Zero-valued algorithm, digits and period are written with their defaults.
func BuildURI(k Key) (string, error) {
	if strings.TrimSpace(k.Label) == "" {
		return "", ErrMissingAccountName
	}

	secret, err := NormalizeSecret(k.Secret)
	if err != nil {
		return "", err
	}
	if secret == "" {
		return "", ErrMissingSecret
	}

	p := k.Params().GetDefaults()
	if err := p.Validate(); err != nil {
		return "", err
	}

	label := escapeLabel(k.Label)
	if k.Issuer != "" {
		label = escapeLabel(k.Issuer) + ":" + label
	}

	var b strings.Builder
	b.WriteString(uriScheme + "://" + uriType + "/")
	b.WriteString(label)
	b.WriteString("?secret=")
	b.WriteString(secret)
	if k.Issuer != "" {
		b.WriteString("&issuer=")
		b.WriteString(escapeQuery(k.Issuer))
	}
	b.WriteString("&algorithm=")
	b.WriteString(p.Algorithm.String())
	b.WriteString("&digits=")
	b.WriteString(strconv.Itoa(p.Digits))
	b.WriteString("&period=")
	b.WriteString(strconv.Itoa(p.Period))

	return b.String(), nil
}

// ParseURI decodes an otpauth://totp URI. HOTP URIs are rejected with
// ErrUnsupportedURIScheme. Missing optional parameters get their defaults and
// a missing name or issuer becomes UnknownLabel.
func ParseURI(raw string) (Key, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Key{}, ErrMalformedURI
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Key{}, errors.Join(ErrMalformedURI, err)
	}
	if !strings.EqualFold(u.Scheme, uriScheme) || !strings.EqualFold(u.Host, uriType) {
		return Key{}, ErrUnsupportedURIScheme
	}

	q := u.Query()

	labelIssuer, name, err := splitLabel(u.EscapedPath())
	if err != nil {
		return Key{}, errors.Join(ErrMalformedURI, err)
	}

	issuer := strings.TrimSpace(q.Get("issuer"))
	if issuer == "" {
		issuer = labelIssuer
	}
	if issuer == "" {
		issuer = UnknownLabel
	}
	if name == "" {
		name = UnknownLabel
	}

	rawSecret := q.Get("secret")
	if strings.TrimSpace(rawSecret) == "" {
		return Key{}, errors.Join(ErrMalformedURI, ErrMissingSecret)
	}
	secret, err := NormalizeSecret(rawSecret)
	if err != nil {
		return Key{}, errors.Join(ErrMalformedURI, err)
	}

	alg, err := ParseAlgorithm(q.Get("algorithm"))
	if err != nil {
		return Key{}, errors.Join(ErrMalformedURI, err)
	}

	digits, err := intParam(q, "digits", DefaultDigits, MinDigits, MaxDigits)
	if err != nil {
		return Key{}, errors.Join(ErrMalformedURI, ErrInvalidDigits, err)
	}

	period, err := intParam(q, "period", DefaultPeriod, MinPeriod, MaxPeriod)
	if err != nil {
		return Key{}, errors.Join(ErrMalformedURI, ErrInvalidPeriod, err)
	}

	return Key{
		Label:     name,
		Issuer:    issuer,
		Secret:    secret,
		Algorithm: alg,
		Digits:    digits,
		Period:    period,
	}, nil
}

// splitLabel separates "Issuer:Name" from the escaped URI path. A literal
// colon wins over an encoded one so that names containing %3A survive.
func splitLabel(escapedPath string) (issuer, name string, err error) {
	p := strings.TrimPrefix(escapedPath, "/")

	if i := strings.Index(p, ":"); i >= 0 {
		if issuer, err = url.PathUnescape(p[:i]); err != nil {
			return "", "", err
		}
		if name, err = url.PathUnescape(p[i+1:]); err != nil {
			return "", "", err
		}
		return strings.TrimSpace(issuer), strings.TrimSpace(name), nil
	}

	label, err := url.PathUnescape(p)
	if err != nil {
		return "", "", err
	}
	if i := strings.Index(label, ":"); i >= 0 {
		return strings.TrimSpace(label[:i]), strings.TrimSpace(label[i+1:]), nil
	}
	return "", strings.TrimSpace(label), nil
}

func intParam(q url.Values, key string, def, lo, hi int) (int, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, errors.New(key + " out of range: " + v)
	}
	return n, nil
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(url.PathEscape(s), ":", "%3A")
}

func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
