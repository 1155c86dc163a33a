// Package vault holds the user's TOTP accounts and guards them with a password.
//
// A Store moves through three states. It starts Uninitialized. Open picks up
// a previously set password flag and moves to Locked. SetPassword and Unlock
// lead to Active, and Lock returns to Locked. Only an Active store holds the
// password and the decrypted accounts in memory.
//
// Every mutation is applied in memory first and then persisted synchronously:
// the collection is serialized as JSON, sealed by the configured Encrypter
// (secrets.Cipher by default) and written to the storage under
// DefaultAccountsKey. When the collection becomes empty the blob is removed.
// A failed write is returned wrapped in ErrStorageWrite and the in-memory
// change is kept.
//
// # Usage
//
//	st, _ := storage.Open(ctx, cfg.Storage, log)
//	store := vault.New(st, vault.WithLogger(log), vault.WithStrictUnlock())
//	if err := store.Open(ctx); err != nil {
//	    return err
//	}
//
//	switch store.State() {
//	case vault.StateUninitialized:
//	    err = store.SetPassword(ctx, password)
//	case vault.StateLocked:
//	    err = store.Unlock(ctx, password)
//	}
//
//	acc, err := store.Add(ctx, vault.NewAccount{
//	    Name:   "alice@example.com",
//	    Issuer: "Google",
//	    Secret: "JBSWY3DPEHPK3PXP",
//	})
//	code, err := store.Code(acc.ID, time.Now())
//
// # Import and export
//
// Export and ExportYAML produce an unencrypted array of accounts. Import skips
// entries whose issuer and name already exist and reports the counts in
// ImportResult.
package vault
