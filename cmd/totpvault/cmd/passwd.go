package cmd

import "github.com/spf13/cobra"

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the vault password",
	Args:  cobra.NoArgs,
	RunE:  runPasswd,
}

func init() {
	rootCmd.AddCommand(passwdCmd)
}

func runPasswd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := unlockSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	next, err := promptNewPassword("New password: ")
	if err != nil {
		return err
	}

	if err := s.store.ChangePassword(ctx, s.password, next); err != nil {
		return err
	}
	Success("Password changed")
	return nil
}
