package config

import (
	"github.com/dmitrymomot/totpvault/pkg/secrets"
	"github.com/dmitrymomot/totpvault/pkg/storage"
)

// App is the configuration of the totpvault command.
type App struct {
	Env       string `env:"TOTPVAULT_ENV" envDefault:"development"`
	LogLevel  string `env:"TOTPVAULT_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"TOTPVAULT_LOG_FORMAT" envDefault:"text"`

	// Password unlocks the vault without a prompt. It is removed from the
	// process environment once read.
	Password string `env:"TOTPVAULT_PASSWORD,unset"`

	QRSize int `env:"TOTPVAULT_QR_SIZE" envDefault:"256"`

	KDFTime      uint32 `env:"TOTPVAULT_KDF_TIME" envDefault:"3"`
	KDFMemoryKiB uint32 `env:"TOTPVAULT_KDF_MEMORY_KIB" envDefault:"65536"`
	KDFThreads   uint8  `env:"TOTPVAULT_KDF_THREADS" envDefault:"4"`

	AccountsKey string `env:"TOTPVAULT_ACCOUNTS_KEY" envDefault:"totp-accounts"`
	FlagKey     string `env:"TOTPVAULT_FLAG_KEY" envDefault:"totp-encryption-key"`

	Storage storage.Config
}

// KDFParams returns the Argon2id cost for newly encrypted blobs.
func (a App) KDFParams() secrets.Params {
	return secrets.Params{
		Time:      a.KDFTime,
		MemoryKiB: a.KDFMemoryKiB,
		Threads:   a.KDFThreads,
	}
}
