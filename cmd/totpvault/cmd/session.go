package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrymomot/totpvault/pkg/logger"
	"github.com/dmitrymomot/totpvault/pkg/secrets"
	"github.com/dmitrymomot/totpvault/pkg/storage"
	"github.com/dmitrymomot/totpvault/pkg/vault"
)

var errAmbiguousAccount = errors.New("more than one account matches")

// session is an opened store and the storage behind it.
type session struct {
	st       storage.Storage
	store    *vault.Store
	password string
}

func (s *session) Close() {
	if err := s.st.Close(); err != nil {
		log.Warn("failed to close storage", logger.Error(err))
	}
}

// openSession opens the configured storage and reads the vault state.
// The CLI never unlocks an unreadable blob, so a wrong password cannot lead
// to it being overwritten.
func openSession(ctx context.Context) (*session, error) {
	st, err := storage.Open(ctx, appCfg.Storage, log)
	if err != nil {
		return nil, err
	}

	store := vault.New(st,
		vault.WithCipher(secrets.New(secrets.WithParams(appCfg.KDFParams()))),
		vault.WithLogger(log),
		vault.WithKeys(appCfg.AccountsKey, appCfg.FlagKey),
		vault.WithStrictUnlock(),
	)
	if err := store.Open(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return &session{st: st, store: store}, nil
}

// unlockSession opens the store and unlocks it with TOTPVAULT_PASSWORD or a
// password prompt.
func unlockSession(ctx context.Context) (*session, error) {
	s, err := openSession(ctx)
	if err != nil {
		return nil, err
	}

	if s.store.State() == vault.StateUninitialized {
		s.Close()
		return nil, fmt.Errorf("no vault password set, run 'totpvault init' first")
	}

	password := appCfg.Password
	if password == "" {
		password, err = promptPassword("Password: ")
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
	}

	if err := s.store.Unlock(ctx, password); err != nil {
		s.Close()
		if errors.Is(err, vault.ErrDecryptionFailed) {
			return nil, fmt.Errorf("wrong password or corrupted data")
		}
		return nil, err
	}
	s.password = password
	return s, nil
}

// promptPassword reads a password from the terminal with echo disabled.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// promptNewPassword prompts twice and ensures both entries match.
func promptNewPassword(prompt string) (string, error) {
	pass, err := promptPassword(prompt)
	if err != nil {
		return "", err
	}
	if len([]rune(pass)) < vault.MinPasswordLength {
		return "", vault.ErrPasswordTooShort
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	if pass != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return pass, nil
}

// findAccount resolves ref as an id, a unique id prefix, "issuer:name" or a
// unique name. Name matching ignores case.
func findAccount(store *vault.Store, ref string) (vault.Account, error) {
	ref = strings.TrimSpace(ref)
	if a, err := store.Get(ref); err == nil {
		return a, nil
	}

	accounts := store.Accounts()
	matchers := []func(vault.Account) bool{
		func(a vault.Account) bool { return strings.HasPrefix(a.ID, ref) },
		func(a vault.Account) bool { return strings.EqualFold(a.Issuer+":"+a.Name, ref) },
		func(a vault.Account) bool { return strings.EqualFold(a.Name, ref) },
		func(a vault.Account) bool { return strings.EqualFold(a.Issuer, ref) },
	}
	for _, match := range matchers {
		var found []vault.Account
		for _, a := range accounts {
			if match(a) {
				found = append(found, a)
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			return found[0], nil
		default:
			return vault.Account{}, fmt.Errorf("%w: %q", errAmbiguousAccount, ref)
		}
	}
	return vault.Account{}, fmt.Errorf("%w: %q", vault.ErrAccountNotFound, ref)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
