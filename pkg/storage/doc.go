// Package storage provides the key-value collaborator used by the vault to
// persist its encrypted blob and password flag.
//
// All adapters implement Storage:
//
//   - MemoryStorage: in-process map for tests and throwaway sessions.
//   - BoltStorage: single bbolt file, the default for the CLI.
//   - RedisStorage: prefixed keys in Redis.
//   - MongoStorage: one document per key.
//   - PostgresStorage: kv table created by embedded goose migrations.
//   - S3Storage: one object per key in an S3 compatible bucket.
//
// Adapters only ever see opaque strings. Encryption happens before values reach
// them, so remote backends are a place to park ciphertext, not a sync service.
//
// # Usage
//
//	s, err := storage.Open(ctx, storage.Config{Driver: storage.DriverBolt, Bolt: "vault.db"}, log)
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	v, err := s.Get(ctx, "totp-accounts")
//	if errors.Is(err, storage.ErrNotFound) {
//		// nothing stored yet
//	}
//
// Config is env-tagged and is normally loaded through the config package.
package storage
