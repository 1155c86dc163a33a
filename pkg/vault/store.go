package vault

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/totpvault/pkg/logger"
	"github.com/dmitrymomot/totpvault/pkg/secrets"
	"github.com/dmitrymomot/totpvault/pkg/storage"
)

const (
	// DefaultAccountsKey holds the encrypted account collection.
	DefaultAccountsKey = "totp-accounts"
	// DefaultFlagKey marks that a password has been set.
	DefaultFlagKey = "totp-encryption-key"

	// MinPasswordLength applies to new passwords.
	MinPasswordLength = 6

	flagValue = "true"
)

// Encrypter seals the serialized collection under a password.
// secrets.Cipher implements it.
type Encrypter interface {
	Encrypt(plaintext, password string) (string, error)
	Decrypt(ciphertext, password string) (string, error)
}

// Store owns the account collection and its lifecycle. All methods are safe
// for concurrent use.
type Store struct {
	mu sync.RWMutex

	storage     storage.Storage
	cipher      Encrypter
	log         *slog.Logger
	now         func() time.Time
	newID       func() string
	strict      bool
	accountsKey string
	flagKey     string

	state    State
	password string
	accounts []Account
}

// Option configures a Store.
type Option func(*Store)

// WithCipher replaces the default secrets.Cipher.
func WithCipher(c Encrypter) Option {
	return func(s *Store) {
		if c != nil {
			s.cipher = c
		}
	}
}

// WithLogger sets the logger. Logging is discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock sets the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the account id generator. Defaults to random UUIDs.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithStrictUnlock keeps the store Locked when the stored collection cannot
// be decrypted, instead of unlocking with an empty collection.
func WithStrictUnlock() Option {
	return func(s *Store) {
		s.strict = true
	}
}

// WithKeys overrides the storage keys. Empty values keep the defaults.
func WithKeys(accountsKey, flagKey string) Option {
	return func(s *Store) {
		if accountsKey != "" {
			s.accountsKey = accountsKey
		}
		if flagKey != "" {
			s.flagKey = flagKey
		}
	}
}

// New creates a Store in StateUninitialized. Call Open to pick up a
// previously set password.
func New(st storage.Storage, opts ...Option) *Store {
	s := &Store{
		storage:     st,
		cipher:      secrets.New(),
		log:         slog.New(slog.DiscardHandler),
		now:         time.Now,
		newID:       uuid.NewString,
		accountsKey: DefaultAccountsKey,
		flagKey:     DefaultFlagKey,
		state:       StateUninitialized,
		accounts:    []Account{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("vault"))
	return s
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Open reads the password flag and moves to StateLocked when it is present.
// It is a no-op once the store has left StateUninitialized.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.detect(ctx)
}

// detect moves an Uninitialized store to Locked when the flag is persisted.
// The caller holds s.mu.
func (s *Store) detect(ctx context.Context) error {
	if s.state != StateUninitialized {
		return nil
	}

	flag, err := s.storage.Get(ctx, s.flagKey)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && flag == "") {
		return nil
	}
	if err != nil {
		return errors.Join(ErrStorageRead, err)
	}
	return s.fire(ctx, eventFlagFound, nil)
}

// SetPassword sets the first password and unlocks an empty collection.
// The persisted flag is checked first, so a vault created earlier is never
// replaced even when Open was not called; the store then moves to Locked and
// ErrPasswordAlreadySet is returned. The flag is written right away. A failed
// write is returned wrapped in ErrStorageWrite while the store stays Active.
func (s *Store) SetPassword(ctx context.Context, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.detect(ctx); err != nil {
		return err
	}

	err := s.fire(ctx, eventSetPassword, func(context.Context) error {
		s.password = password
		s.accounts = []Account{}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.storage.Set(ctx, s.flagKey, flagValue); err != nil {
		err = errors.Join(ErrStorageWrite, err)
		s.log.ErrorContext(ctx, "failed to write password flag", logger.Error(err), logger.StorageKey(s.flagKey))
		return err
	}
	return nil
}

// Unlock supplies the password for this session and loads the collection.
//
// A missing blob unlocks an empty collection. When the blob cannot be
// decrypted or parsed, the store unlocks with an empty collection and the
// returned error wraps ErrDecryptionFailed. With WithStrictUnlock the store
// stays Locked instead. Storage read failures always keep it Locked.
func (s *Store) Unlock(ctx context.Context, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var notice error
	err := s.fire(ctx, eventUnlock, func(ctx context.Context) error {
		accounts, err := s.load(ctx, password)
		if err != nil {
			if s.strict || errors.Is(err, ErrStorageRead) {
				return err
			}
			notice = err
			accounts = []Account{}
		}
		s.password = password
		s.accounts = accounts
		return nil
	})
	if err != nil {
		s.log.WarnContext(ctx, "unlock refused", logger.Error(err))
		return err
	}
	if notice != nil {
		s.log.WarnContext(ctx, "stored accounts could not be decrypted", logger.Error(notice))
		return notice
	}
	return nil
}

// Lock forgets the password and the decrypted collection. Locking a locked
// store is a no-op.
func (s *Store) Lock(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLocked {
		return nil
	}
	return s.fire(ctx, eventLock, func(context.Context) error {
		s.password = ""
		s.accounts = []Account{}
		return nil
	})
}

// ChangePassword re-encrypts the collection under a new password. The old
// password is compared in constant time. On a failed write the old password
// stays in effect.
func (s *Store) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireActive(s.state); err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(oldPassword), []byte(s.password)) != 1 {
		return ErrWrongPassword
	}

	return s.fire(ctx, eventChangePassword, func(ctx context.Context) error {
		if err := s.write(ctx, newPassword); err != nil {
			s.log.ErrorContext(ctx, "failed to re-encrypt accounts", logger.Error(err))
			return err
		}
		s.password = newPassword
		return nil
	})
}

// load reads and decrypts the stored collection.
func (s *Store) load(ctx context.Context, password string) ([]Account, error) {
	blob, err := s.storage.Get(ctx, s.accountsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return []Account{}, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStorageRead, err)
	}

	plaintext, err := s.cipher.Decrypt(blob, password)
	if err != nil {
		if !errors.Is(err, ErrDecryptionFailed) {
			err = errors.Join(ErrDecryptionFailed, err)
		}
		return nil, err
	}

	var accounts []Account
	if err := json.Unmarshal([]byte(plaintext), &accounts); err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}
	for i := range accounts {
		accounts[i] = accounts[i].WithDefaults()
	}
	if accounts == nil {
		accounts = []Account{}
	}
	return accounts, nil
}

// persist writes the collection under the current password. The caller holds
// s.mu for writing. Failures are logged and returned; memory is not rolled back.
func (s *Store) persist(ctx context.Context) error {
	if err := s.write(ctx, s.password); err != nil {
		s.log.ErrorContext(ctx, "failed to persist accounts",
			logger.Error(err),
			logger.StorageKey(s.accountsKey),
			logger.Count(len(s.accounts)),
		)
		return err
	}
	return nil
}

// write stores the collection encrypted under password, or removes the blob
// when the collection is empty.
func (s *Store) write(ctx context.Context, password string) error {
	if len(s.accounts) == 0 {
		if err := s.storage.Remove(ctx, s.accountsKey); err != nil {
			return errors.Join(ErrStorageWrite, err)
		}
		return nil
	}

	data, err := json.Marshal(s.accounts)
	if err != nil {
		return errors.Join(ErrStorageWrite, err)
	}
	blob, err := s.cipher.Encrypt(string(data), password)
	if err != nil {
		return errors.Join(ErrStorageWrite, err)
	}
	if err := s.storage.Set(ctx, s.accountsKey, blob); err != nil {
		return errors.Join(ErrStorageWrite, err)
	}
	if err := s.storage.Set(ctx, s.flagKey, flagValue); err != nil {
		return errors.Join(ErrStorageWrite, err)
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
