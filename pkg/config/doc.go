// Package config loads the totpvault configuration from environment variables.
//
// Load applies a .env file from the working directory when one exists and then
// parses the environment into a struct tagged for github.com/caarlos0/env/v11.
// LoadFrom does the same with explicitly named files, which must exist.
// Variables already present in the environment always take precedence.
//
// App describes the command: logging, KDF cost, storage keys and the nested
// storage.Config.
//
//	var cfg config.App
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	cipher := secrets.New(secrets.WithParams(cfg.KDFParams()))
//
// Parsing failures wrap ErrParsingConfig, unreadable env files wrap
// ErrLoadingEnvFile and a nil target yields ErrNilPointer.
package config
