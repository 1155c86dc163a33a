package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/totpvault/pkg/totp"
	"github.com/dmitrymomot/totpvault/pkg/vault"
)

var (
	editFlags   accountFlags
	deleteForce bool
	clearForce  bool
)

var editCmd = &cobra.Command{
	Use:   "edit <account>",
	Short: "Change an account",
	Long: `Change the fields given as flags. Other fields keep their values.

<account> is an id, an id prefix, "issuer:name" or a unique name.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var deleteCmd = &cobra.Command{
	Use:     "delete <account>",
	Short:   "Delete an account",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all accounts",
	Long: `Delete all accounts. The vault password stays set.

Export your accounts first if you may need them again.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	editFlags.register(editCmd)
	deleteCmd.Flags().BoolVarP(&deleteForce, "yes", "y", false, "skip confirmation prompt")
	clearCmd.Flags().BoolVarP(&clearForce, "yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(editCmd, deleteCmd, clearCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := unlockSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	acc, err := findAccount(s.store, args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		acc.Name = editFlags.name
	}
	if flags.Changed("issuer") {
		acc.Issuer = editFlags.issuer
	}
	if flags.Changed("secret") {
		acc.Secret = editFlags.secret
	}
	if flags.Changed("algorithm") {
		acc.Algorithm = totp.Algorithm(editFlags.algorithm)
	}
	if flags.Changed("digits") {
		acc.Digits = editFlags.digits
	}
	if flags.Changed("period") {
		acc.Period = editFlags.period
	}
	if flags.Changed("category") {
		acc.Category = editFlags.category
	}
	if flags.Changed("color") {
		acc.Color = resolveColor(editFlags.color)
	}
	if flags.Changed("icon") {
		acc.Icon = vault.ParseIcon(editFlags.icon)
	}

	if err := s.store.Update(ctx, acc); err != nil {
		return err
	}
	Success("Updated %s (%s)", Bold("%s", acc.Issuer), acc.Name)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := unlockSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	acc, err := findAccount(s.store, args[0])
	if err != nil {
		return err
	}

	if !deleteForce && !PromptConfirm(fmt.Sprintf("Delete %s (%s)? Codes for it will no longer be available.", acc.Issuer, acc.Name)) {
		Info("Canceled")
		return nil
	}

	if err := s.store.Delete(ctx, acc.ID); err != nil {
		return err
	}
	Success("Deleted %s (%s)", acc.Issuer, acc.Name)
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := unlockSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	n := len(s.store.Accounts())
	if !clearForce && !PromptConfirm(fmt.Sprintf("Delete all %d accounts? This cannot be undone.", n)) {
		Info("Canceled")
		return nil
	}

	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	Success("Deleted %d accounts", n)
	return nil
}
