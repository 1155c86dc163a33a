package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/totpvault/pkg/vault"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set the vault password",
	Long: `Set the password that encrypts your accounts.

The password cannot be recovered. Use 'totpvault passwd' to change it later.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the vault state and storage driver",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(initCmd, statusCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.store.State() != vault.StateUninitialized {
		return fmt.Errorf("vault password already set, use 'totpvault passwd' to change it")
	}

	password := appCfg.Password
	if password == "" {
		password, err = promptNewPassword("New password: ")
		if err != nil {
			return err
		}
	}

	if err := s.store.SetPassword(ctx, password); err != nil {
		return err
	}

	Success("Vault password set")
	Info("Add an account with: totpvault add --issuer NAME --name ACCOUNT --secret SECRET")
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	status := struct {
		State  string `json:"state"`
		Driver string `json:"driver"`
	}{
		State:  s.store.State().String(),
		Driver: appCfg.Storage.Driver,
	}
	if jsonOutput {
		return PrintJSON(status)
	}

	fmt.Printf("%s %s\n", Bold("State:"), status.State)
	fmt.Printf("%s %s\n", Bold("Storage:"), status.Driver)
	return nil
}
