package vault_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpvault/pkg/secrets"
	"github.com/dmitrymomot/totpvault/pkg/storage"
	"github.com/dmitrymomot/totpvault/pkg/totp"
	"github.com/dmitrymomot/totpvault/pkg/vault"
)

const password = "secretpw1"

var (
	fastCipher = secrets.New(secrets.WithParams(secrets.Params{Time: 1, MemoryKiB: 1024, Threads: 1}))
	fixedTime  = time.Unix(59, 0)
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newStore(st storage.Storage, opts ...vault.Option) *vault.Store {
	base := []vault.Option{
		vault.WithCipher(fastCipher),
		vault.WithClock(func() time.Time { return fixedTime }),
		vault.WithIDGenerator(sequentialIDs()),
	}
	return vault.New(st, append(base, opts...)...)
}

func activeStore(t *testing.T, opts ...vault.Option) (*vault.Store, *storage.MemoryStorage) {
	t.Helper()
	mem := storage.NewMemoryStorage()
	store := newStore(mem, opts...)
	require.NoError(t, store.Open(context.Background()))
	require.NoError(t, store.SetPassword(context.Background(), password))
	return store, mem
}

func googleAccount() vault.NewAccount {
	return vault.NewAccount{
		Name:   "alice@example.com",
		Issuer: "Google",
		Secret: "JBSWY3DPEHPK3PXP",
	}
}

// failingStorage fails writes once fail is set.
type failingStorage struct {
	storage.Storage
	fail bool
}

var errDiskFull = errors.New("disk full")

func (f *failingStorage) Set(ctx context.Context, key, value string) error {
	if f.fail {
		return errDiskFull
	}
	return f.Storage.Set(ctx, key, value)
}

func (f *failingStorage) Remove(ctx context.Context, key string) error {
	if f.fail {
		return errDiskFull
	}
	return f.Storage.Remove(ctx, key)
}

func TestStore_Lifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := storage.NewMemoryStorage()
	store := newStore(mem)

	require.NoError(t, store.Open(ctx))
	assert.Equal(t, vault.StateUninitialized, store.State())

	assert.ErrorIs(t, store.Unlock(ctx, password), vault.ErrNotInitialized)
	_, err := store.Add(ctx, googleAccount())
	assert.ErrorIs(t, err, vault.ErrNotInitialized)
	assert.ErrorIs(t, store.Lock(ctx), vault.ErrNotInitialized)

	assert.ErrorIs(t, store.SetPassword(ctx, ""), vault.ErrEmptyPassword)
	assert.ErrorIs(t, store.SetPassword(ctx, "12345"), vault.ErrPasswordTooShort)
	assert.Equal(t, vault.StateUninitialized, store.State())

	require.NoError(t, store.SetPassword(ctx, password))
	assert.Equal(t, vault.StateActive, store.State())
	flag, err := mem.Get(ctx, vault.DefaultFlagKey)
	require.NoError(t, err)
	assert.Equal(t, "true", flag)

	assert.ErrorIs(t, store.SetPassword(ctx, password), vault.ErrPasswordAlreadySet)
	assert.ErrorIs(t, store.Unlock(ctx, password), vault.ErrAlreadyUnlocked)

	_, err = store.Add(ctx, googleAccount())
	require.NoError(t, err)

	require.NoError(t, store.Lock(ctx))
	assert.Equal(t, vault.StateLocked, store.State())
	assert.Empty(t, store.Accounts())
	require.NoError(t, store.Lock(ctx), "locking twice is a no-op")

	_, err = store.Get("id-1")
	assert.ErrorIs(t, err, vault.ErrLocked)
	_, err = store.Export()
	assert.ErrorIs(t, err, vault.ErrLocked)
	assert.ErrorIs(t, store.SetPassword(ctx, password), vault.ErrPasswordAlreadySet)
	assert.ErrorIs(t, store.Unlock(ctx, ""), vault.ErrEmptyPassword)

	require.NoError(t, store.Unlock(ctx, password))
	assert.Equal(t, vault.StateActive, store.State())
	assert.Len(t, store.Accounts(), 1)
}

func TestStore_SetPasswordKeepsExistingVault(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	first, mem := activeStore(t)
	_, err := first.Add(ctx, googleAccount())
	require.NoError(t, err)
	blob, err := mem.Get(ctx, vault.DefaultAccountsKey)
	require.NoError(t, err)

	// a second store over the same storage, used without Open
	second := newStore(mem)
	assert.ErrorIs(t, second.SetPassword(ctx, "otherpw1"), vault.ErrPasswordAlreadySet)
	assert.Equal(t, vault.StateLocked, second.State())

	after, err := mem.Get(ctx, vault.DefaultAccountsKey)
	require.NoError(t, err)
	assert.Equal(t, blob, after)

	require.NoError(t, second.Unlock(ctx, password))
	assert.Len(t, second.Accounts(), 1)
}

func TestStore_OpenWithExistingFlag(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := storage.NewMemoryStorage()
	require.NoError(t, mem.Set(ctx, vault.DefaultFlagKey, "true"))

	store := newStore(mem)
	require.NoError(t, store.Open(ctx))
	assert.Equal(t, vault.StateLocked, store.State())

	// no blob yet: unlocks with an empty collection
	require.NoError(t, store.Unlock(ctx, password))
	assert.Equal(t, vault.StateActive, store.State())
	assert.Empty(t, store.Accounts())

	require.NoError(t, store.Open(ctx), "open after unlock is a no-op")
	assert.Equal(t, vault.StateActive, store.State())
}

func TestStore_CustomKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, mem := activeStore(t, vault.WithKeys("accounts", "flag"))

	_, err := store.Add(ctx, googleAccount())
	require.NoError(t, err)

	_, err = mem.Get(ctx, "accounts")
	assert.NoError(t, err)
	_, err = mem.Get(ctx, "flag")
	assert.NoError(t, err)
	_, err = mem.Get(ctx, vault.DefaultAccountsKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_EndToEnd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, mem := activeStore(t)

	acc, err := store.Add(ctx, googleAccount())
	require.NoError(t, err)
	assert.Equal(t, "id-1", acc.ID)
	assert.Equal(t, fixedTime.UnixMilli(), acc.CreatedAt)
	assert.Equal(t, totp.SHA1, acc.Algorithm)
	assert.Equal(t, 6, acc.Digits)
	assert.Equal(t, 30, acc.Period)
	assert.Equal(t, vault.DefaultCategory, acc.Category)
	assert.Equal(t, vault.DefaultColor, acc.Color)

	code, err := store.Code(acc.ID, fixedTime)
	require.NoError(t, err)
	assert.Equal(t, "996554", code)

	blob, err := mem.Get(ctx, vault.DefaultAccountsKey)
	require.NoError(t, err)
	assert.NotContains(t, blob, "JBSWY3DPEHPK3PXP")

	plaintext, err := fastCipher.Decrypt(blob, password)
	require.NoError(t, err)

	var stored []map[string]any
	require.NoError(t, json.Unmarshal([]byte(plaintext), &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "id-1", stored[0]["id"])
	assert.Equal(t, "alice@example.com", stored[0]["name"])
	assert.Equal(t, "Google", stored[0]["issuer"])
	assert.EqualValues(t, fixedTime.UnixMilli(), stored[0]["createdAt"])

	// a fresh store over the same storage sees the account after unlock
	reopened := newStore(mem)
	require.NoError(t, reopened.Open(ctx))
	assert.Equal(t, vault.StateLocked, reopened.State())
	require.NoError(t, reopened.Unlock(ctx, password))
	assert.Equal(t, []vault.Account{acc}, reopened.Accounts())
}

func TestStore_UnlockWrongPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, mem := activeStore(t)
	_, err := store.Add(ctx, googleAccount())
	require.NoError(t, err)
	blob, err := mem.Get(ctx, vault.DefaultAccountsKey)
	require.NoError(t, err)

	t.Run("default unlocks empty with a notice", func(t *testing.T) {
		s := newStore(mem)
		require.NoError(t, s.Open(ctx))

		err := s.Unlock(ctx, "wrongpass")
		assert.ErrorIs(t, err, vault.ErrDecryptionFailed)
		assert.Equal(t, vault.StateActive, s.State())
		assert.Empty(t, s.Accounts())

		after, err := mem.Get(ctx, vault.DefaultAccountsKey)
		require.NoError(t, err)
		assert.Equal(t, blob, after, "unlock does not rewrite the blob")
	})

	t.Run("strict stays locked", func(t *testing.T) {
		s := newStore(mem, vault.WithStrictUnlock())
		require.NoError(t, s.Open(ctx))

		err := s.Unlock(ctx, "wrongpass")
		assert.ErrorIs(t, err, vault.ErrDecryptionFailed)
		assert.Equal(t, vault.StateLocked, s.State())

		require.NoError(t, s.Unlock(ctx, password))
		assert.Len(t, s.Accounts(), 1)
	})
}

func TestStore_UnlockCorruptBlob(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	notJSON, err := fastCipher.Encrypt("not json", password)
	require.NoError(t, err)

	tests := []struct {
		name string
		blob string
	}{
		{"not base64", "%%%"},
		{"not an account array", notJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := storage.NewMemoryStorage()
			require.NoError(t, m.Set(ctx, vault.DefaultFlagKey, "true"))
			require.NoError(t, m.Set(ctx, vault.DefaultAccountsKey, tt.blob))

			s := newStore(m)
			require.NoError(t, s.Open(ctx))
			assert.ErrorIs(t, s.Unlock(ctx, password), vault.ErrDecryptionFailed)
			assert.Empty(t, s.Accounts())
		})
	}
}

func TestStore_ChangePassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, mem := activeStore(t)
	_, err := store.Add(ctx, googleAccount())
	require.NoError(t, err)

	assert.ErrorIs(t, store.ChangePassword(ctx, "notmypass", "newpass1"), vault.ErrWrongPassword)
	assert.ErrorIs(t, store.ChangePassword(ctx, password, "short"), vault.ErrPasswordTooShort)
	require.NoError(t, store.ChangePassword(ctx, password, "newpass1"))

	strict := newStore(mem, vault.WithStrictUnlock())
	require.NoError(t, strict.Open(ctx))
	assert.ErrorIs(t, strict.Unlock(ctx, password), vault.ErrDecryptionFailed)
	require.NoError(t, strict.Unlock(ctx, "newpass1"))
	assert.Len(t, strict.Accounts(), 1)

	require.NoError(t, store.Lock(ctx))
	assert.ErrorIs(t, store.ChangePassword(ctx, "newpass1", "another1"), vault.ErrLocked)
}

func TestStore_StorageWriteFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := &failingStorage{Storage: storage.NewMemoryStorage()}
	store := newStore(st)
	require.NoError(t, store.Open(ctx))
	require.NoError(t, store.SetPassword(ctx, password))

	st.fail = true
	acc, err := store.Add(ctx, googleAccount())
	require.ErrorIs(t, err, vault.ErrStorageWrite)
	assert.ErrorIs(t, err, errDiskFull)
	assert.NotEmpty(t, acc.ID)
	assert.Len(t, store.Accounts(), 1, "in-memory change is kept")

	err = store.ChangePassword(ctx, password, "newpass1")
	assert.ErrorIs(t, err, vault.ErrStorageWrite)

	st.fail = false
	// the old password is still in effect after a failed change
	require.NoError(t, store.ChangePassword(ctx, password, "newpass1"))
}

func TestStore_SetPasswordFlagFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := &failingStorage{Storage: storage.NewMemoryStorage(), fail: true}
	store := newStore(st)

	err := store.SetPassword(ctx, password)
	assert.ErrorIs(t, err, vault.ErrStorageWrite)
	assert.Equal(t, vault.StateActive, store.State())
}
