package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by Load when it exists in the working directory.
const DefaultEnvFile = ".env"

// Load parses environment variables into v. A .env file in the working
// directory is applied first when present; its absence is not an error.
// Variables already set in the environment win over the file.
//
//	var cfg config.App
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return parse(v)
}

// LoadFrom is Load with explicit .env files. Every file must exist.
func LoadFrom[T any](v *T, files ...string) error {
	if v == nil {
		return ErrNilPointer
	}
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}
	return parse(v)
}

func parse[T any](v *T) error {
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}
