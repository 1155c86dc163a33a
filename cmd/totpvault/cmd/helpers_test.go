package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpvault/pkg/secrets"
	"github.com/dmitrymomot/totpvault/pkg/storage"
	"github.com/dmitrymomot/totpvault/pkg/vault"
)

func TestFileFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flag, path string
		want       string
		wantErr    bool
	}{
		{"", "backup.json", "json", false},
		{"", "backup.YAML", "yaml", false},
		{"", "backup.yml", "yaml", false},
		{"", "", "json", false},
		{"yml", "backup.json", "yaml", false},
		{"JSON", "backup.yaml", "json", false},
		{"csv", "backup.csv", "", true},
	}

	for _, tt := range tests {
		got, err := fileFormat(tt.flag, tt.path)
		if tt.wantErr {
			assert.Error(t, err, tt.flag)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.flag+" "+tt.path)
	}
}

func TestFormatCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "996 554", FormatCode("996554"))
	assert.Equal(t, "9411 9521", FormatCode("94119521"))
	assert.Equal(t, "1234", FormatCode("1234"))
	assert.Equal(t, vault.CodePlaceholder, FormatCode(vault.CodePlaceholder))
}

func TestResolveColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#6366f1", resolveColor("Indigo"))
	assert.Equal(t, "#123456", resolveColor("#123456"))
}

func TestFindAccount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := vault.New(storage.NewMemoryStorage(),
		vault.WithCipher(secrets.New(secrets.WithParams(secrets.Params{Time: 1, MemoryKiB: 1024, Threads: 1}))),
	)
	require.NoError(t, store.SetPassword(ctx, "secretpw1"))

	alice, err := store.Add(ctx, vault.NewAccount{Name: "alice@example.com", Issuer: "Google", Secret: "JBSWY3DPEHPK3PXP"})
	require.NoError(t, err)
	bob, err := store.Add(ctx, vault.NewAccount{Name: "bob", Issuer: "GitHub", Secret: "JBSWY3DPEHPK3PXP"})
	require.NoError(t, err)
	_, err = store.Add(ctx, vault.NewAccount{Name: "bob", Issuer: "GitLab", Secret: "JBSWY3DPEHPK3PXP"})
	require.NoError(t, err)

	tests := []struct {
		ref     string
		want    string
		wantErr error
	}{
		{alice.ID, alice.ID, nil},
		{alice.ID[:8], alice.ID, nil},
		{"google:ALICE@example.com", alice.ID, nil},
		{"Alice@Example.com", alice.ID, nil},
		{"github", bob.ID, nil},
		{"bob", "", errAmbiguousAccount},
		{"nobody", "", vault.ErrAccountNotFound},
	}

	for _, tt := range tests {
		got, err := findAccount(store, tt.ref)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, tt.ref)
			continue
		}
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.want, got.ID, tt.ref)
	}
}

func TestWatchedAccounts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := vault.New(storage.NewMemoryStorage(),
		vault.WithCipher(secrets.New(secrets.WithParams(secrets.Params{Time: 1, MemoryKiB: 1024, Threads: 1}))),
	)
	require.NoError(t, store.SetPassword(ctx, "secretpw1"))

	google, err := store.Add(ctx, vault.NewAccount{Name: "alice@example.com", Issuer: "Google", Secret: "JBSWY3DPEHPK3PXP"})
	require.NoError(t, err)
	github, err := store.Add(ctx, vault.NewAccount{Name: "alice", Issuer: "GitHub", Secret: "JBSWY3DPEHPK3PXP"})
	require.NoError(t, err)

	// the same account named three ways is watched once
	got, err := watchedAccounts(store, []string{"google", google.ID, "github", "Google:alice@example.com"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, google.ID, got[0].ID)
	assert.Equal(t, github.ID, got[1].ID)

	_, err = watchedAccounts(store, []string{"google", "nobody"})
	assert.ErrorIs(t, err, vault.ErrAccountNotFound)
}
