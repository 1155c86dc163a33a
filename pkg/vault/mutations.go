package vault

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/totpvault/pkg/logger"
)

// ImportResult counts what happened to each imported entry.
type ImportResult struct {
	Added      int `json:"added"`
	Duplicates int `json:"duplicates"`
	Invalid    int `json:"invalid"`
}

// Add stores a new account with defaults applied, a fresh id and createdAt.
// When only the write fails, the account is kept in memory and returned
// together with an error wrapping ErrStorageWrite.
func (s *Store) Add(ctx context.Context, in NewAccount) (Account, error) {
	a := in.account().WithDefaults()
	if err := a.Validate(); err != nil {
		return Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireActive(s.state); err != nil {
		return Account{}, err
	}

	a.ID = s.newID()
	a.CreatedAt = s.now().UnixMilli()
	s.accounts = append(s.accounts, a)

	ctx = logger.WithAccountID(ctx, a.ID)
	s.log.DebugContext(ctx, "account added", logger.Issuer(a.Issuer))
	return a, s.persist(ctx)
}

// Update replaces the account with the same id. ID and CreatedAt cannot change.
func (s *Store) Update(ctx context.Context, a Account) error {
	a = a.WithDefaults()
	if err := a.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireActive(s.state); err != nil {
		return err
	}

	i := s.indexOf(a.ID)
	if i < 0 {
		return ErrAccountNotFound
	}
	a.CreatedAt = s.accounts[i].CreatedAt
	s.accounts[i] = a

	ctx = logger.WithAccountID(ctx, a.ID)
	s.log.DebugContext(ctx, "account updated")
	return s.persist(ctx)
}

// Delete removes the account with the given id. Deleting the last account
// removes the stored blob.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireActive(s.state); err != nil {
		return err
	}

	i := s.indexOf(id)
	if i < 0 {
		return ErrAccountNotFound
	}
	s.accounts = slices.Delete(s.accounts, i, i+1)

	ctx = logger.WithAccountID(ctx, id)
	s.log.DebugContext(ctx, "account deleted")
	return s.persist(ctx)
}

// Clear removes every account and the stored blob. The password stays set.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireActive(s.state); err != nil {
		return err
	}

	s.accounts = []Account{}
	s.log.InfoContext(ctx, "accounts cleared")
	return s.persist(ctx)
}

// Import merges accounts into the collection. Entries whose issuer and name
// match an existing or earlier imported account are skipped as duplicates.
// Invalid entries are skipped. Missing or colliding ids are replaced.
func (s *Store) Import(ctx context.Context, accounts []Account) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res ImportResult
	if err := requireActive(s.state); err != nil {
		return res, err
	}

	seen := make(map[string]struct{}, len(s.accounts)+len(accounts))
	ids := make(map[string]struct{}, len(s.accounts)+len(accounts))
	for _, a := range s.accounts {
		seen[dedupKey(a)] = struct{}{}
		ids[a.ID] = struct{}{}
	}

	now := s.now().UnixMilli()
	for _, a := range accounts {
		a = a.WithDefaults()
		if err := a.Validate(); err != nil {
			res.Invalid++
			s.log.DebugContext(ctx, "skipping invalid account", logger.Error(err))
			continue
		}

		key := dedupKey(a)
		if _, ok := seen[key]; ok {
			res.Duplicates++
			continue
		}
		if _, ok := ids[a.ID]; ok || a.ID == "" {
			a.ID = s.newID()
		}
		if a.CreatedAt <= 0 {
			a.CreatedAt = now
		}

		seen[key] = struct{}{}
		ids[a.ID] = struct{}{}
		s.accounts = append(s.accounts, a)
		res.Added++
	}

	s.log.InfoContext(ctx, "accounts imported",
		slog.Int("added", res.Added),
		slog.Int("duplicates", res.Duplicates),
		slog.Int("invalid", res.Invalid),
	)

	if res.Added == 0 {
		return res, nil
	}
	return res, s.persist(ctx)
}

// ImportJSON imports a JSON array of accounts as produced by Export.
func (s *Store) ImportJSON(ctx context.Context, data []byte) (ImportResult, error) {
	var accounts []Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return ImportResult{}, errors.Join(ErrInvalidImport, err)
	}
	if accounts == nil {
		return ImportResult{}, errors.Join(ErrInvalidImport, errors.New("expected an array of accounts"))
	}
	return s.Import(ctx, accounts)
}

// ImportYAML imports a YAML sequence of accounts as produced by ExportYAML.
func (s *Store) ImportYAML(ctx context.Context, data []byte) (ImportResult, error) {
	var accounts []Account
	if err := yaml.Unmarshal(data, &accounts); err != nil {
		return ImportResult{}, errors.Join(ErrInvalidImport, err)
	}
	if accounts == nil {
		return ImportResult{}, errors.Join(ErrInvalidImport, errors.New("expected a sequence of accounts"))
	}
	return s.Import(ctx, accounts)
}

// Export returns the collection as an unencrypted, indented JSON array.
func (s *Store) Export() ([]byte, error) {
	accounts, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(accounts, "", "  ")
}

// ExportYAML returns the collection as an unencrypted YAML sequence.
func (s *Store) ExportYAML() ([]byte, error) {
	accounts, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(accounts)
}

func (s *Store) snapshot() ([]Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := requireActive(s.state); err != nil {
		return nil, err
	}
	return slices.Clone(s.accounts), nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.accounts, func(a Account) bool {
		return a.ID == id
	})
}

func dedupKey(a Account) string {
	return a.Issuer + "\x00" + a.Name
}
