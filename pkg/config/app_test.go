package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpvault/pkg/config"
	"github.com/dmitrymomot/totpvault/pkg/secrets"
	"github.com/dmitrymomot/totpvault/pkg/storage"
)

func TestLoadFrom_AppDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/alice")

	var cfg config.App
	require.NoError(t, config.LoadFrom(&cfg))

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 256, cfg.QRSize)
	assert.Equal(t, "totp-accounts", cfg.AccountsKey)
	assert.Equal(t, "totp-encryption-key", cfg.FlagKey)
	assert.Equal(t, secrets.DefaultParams, cfg.KDFParams())
	assert.Equal(t, storage.DriverBolt, cfg.Storage.Driver)
	assert.Equal(t, "/home/alice/.totpvault/vault.db", cfg.Storage.Bolt)
	assert.Equal(t, "totpvault:", cfg.Storage.Redis.KeyPrefix)
}

func TestLoadFrom_AppOverrides(t *testing.T) {
	t.Setenv("TOTPVAULT_STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("TOTPVAULT_KDF_TIME", "1")
	t.Setenv("TOTPVAULT_KDF_MEMORY_KIB", "1024")
	t.Setenv("TOTPVAULT_KDF_THREADS", "1")
	t.Setenv("TOTPVAULT_PASSWORD", "secretpw1")

	var cfg config.App
	require.NoError(t, config.LoadFrom(&cfg))

	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "redis://cache:6379/2", cfg.Storage.Redis.ConnectionURL)
	assert.Equal(t, secrets.Params{Time: 1, MemoryKiB: 1024, Threads: 1}, cfg.KDFParams())
	assert.Equal(t, "secretpw1", cfg.Password)

	_, set := os.LookupEnv("TOTPVAULT_PASSWORD")
	assert.False(t, set, "password must be removed from the environment")
}
