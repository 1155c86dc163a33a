// Package cmd provides the CLI commands for totpvault.
package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/totpvault/pkg/config"
	"github.com/dmitrymomot/totpvault/pkg/logger"
)

var (
	envFile    string
	jsonOutput bool
	verbose    bool

	appCfg config.App
	log    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "totpvault",
	Short: "Two-factor authentication codes in your terminal",
	Long: `totpvault keeps your TOTP accounts encrypted with a password and shows
their current one-time codes.

Get started:
  totpvault init                      Set the vault password
  totpvault add --issuer Google ...   Add an account
  totpvault scan "otpauth://totp/..." Add an account from a QR code payload
  totpvault list                      Show accounts with current codes
  totpvault watch                     Live codes with countdown

Storage is selected with TOTPVAULT_STORAGE_DRIVER (bolt, memory, redis,
mongo, postgres or s3).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		Error("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from this file instead of ./.env")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	var err error
	if envFile != "" {
		err = config.LoadFrom(&appCfg, envFile)
	} else {
		err = config.Load(&appCfg)
	}
	if err != nil {
		return err
	}

	level := logger.ParseLevel(appCfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	log = logger.New(
		logger.WithEnvironment(appCfg.Env, "totpvault"),
		logger.WithLevel(level),
		logger.WithFormat(logger.ParseFormat(appCfg.LogFormat)),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithContextExtractors(logger.OperationExtractor, logger.AccountIDExtractor),
	)
	logger.SetAsDefault(log)
	cmd.SetContext(logger.WithOperation(cmd.Context(), cmd.Name()))
	return nil
}
