package vault

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/totpvault/pkg/qrcode"
	"github.com/dmitrymomot/totpvault/pkg/totp"
)

// CategoryAll disables category filtering.
const CategoryAll = "All"

// CodePlaceholder is shown instead of a code that cannot be generated.
const CodePlaceholder = "Error"

// Query narrows Filter results. Zero values match everything.
type Query struct {
	Search   string // case-insensitive substring of name or issuer
	Category string // exact category, or CategoryAll
}

// Accounts returns a copy of the collection in insertion order.
// A store that is not Active has no accounts.
func (s *Store) Accounts() []Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.accounts)
}

// Get returns the account with the given id.
func (s *Store) Get(id string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := requireActive(s.state); err != nil {
		return Account{}, err
	}
	i := s.indexOf(id)
	if i < 0 {
		return Account{}, ErrAccountNotFound
	}
	return s.accounts[i], nil
}

// Filter returns matching accounts sorted by issuer, then name.
func (s *Store) Filter(q Query) []Account {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(q.Search))
	category := strings.TrimSpace(q.Category)

	s.mu.RLock()
	out := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		if category != "" && category != CategoryAll && a.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(a.Name), needle) &&
			!strings.Contains(fold.String(a.Issuer), needle) {
			continue
		}
		out = append(out, a)
	}
	s.mu.RUnlock()

	SortAccounts(out)
	return out
}

// SortAccounts orders accounts by issuer, then name, using locale-neutral
// case-insensitive collation.
func SortAccounts(accounts []Account) {
	col := collate.New(language.Und, collate.IgnoreCase)
	slices.SortStableFunc(accounts, func(a, b Account) int {
		if c := col.CompareString(a.Issuer, b.Issuer); c != 0 {
			return c
		}
		return col.CompareString(a.Name, b.Name)
	})
}

// Categories returns DefaultCategories followed by any other categories in
// use, the latter in collation order.
func (s *Store) Categories() []string {
	out := slices.Clone(DefaultCategories)
	known := make(map[string]struct{}, len(out))
	for _, c := range out {
		known[c] = struct{}{}
	}

	var extra []string
	s.mu.RLock()
	for _, a := range s.accounts {
		if _, ok := known[a.Category]; ok {
			continue
		}
		known[a.Category] = struct{}{}
		extra = append(extra, a.Category)
	}
	s.mu.RUnlock()

	collate.New(language.Und, collate.IgnoreCase).SortStrings(extra)
	return append(out, extra...)
}

// Code generates the current code for the account with the given id.
func (s *Store) Code(id string, t time.Time) (string, error) {
	a, err := s.Get(id)
	if err != nil {
		return "", err
	}
	return a.Code(t)
}

// URI returns the otpauth provisioning URI of the account.
func (s *Store) URI(id string) (string, error) {
	a, err := s.Get(id)
	if err != nil {
		return "", err
	}
	return AccountURI(a)
}

// QRCode renders the provisioning URI of the account as a PNG image.
// A non-positive size selects the default.
func (s *Store) QRCode(id string, size int) ([]byte, error) {
	uri, err := s.URI(id)
	if err != nil {
		return nil, err
	}
	return qrcode.Generate(uri, size)
}

// Code generates the account's code at time t.
func (a Account) Code(t time.Time) (string, error) {
	return totp.Generate(a.Params(), t)
}

// Remaining returns the seconds left in the account's current window.
func (a Account) Remaining(t time.Time) int {
	return totp.RemainingSeconds(a.Params().Period, t)
}

// CodeOrPlaceholder returns the account's code at t, or CodePlaceholder when
// the code cannot be generated.
func CodeOrPlaceholder(a Account, t time.Time) string {
	code, err := a.Code(t)
	if err != nil {
		return CodePlaceholder
	}
	return code
}
