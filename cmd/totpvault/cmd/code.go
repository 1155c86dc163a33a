package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/totpvault/pkg/qrcode"
	"github.com/dmitrymomot/totpvault/pkg/totp"
	"github.com/dmitrymomot/totpvault/pkg/vault"
)

var (
	codeAt     int64
	verifySkew int
	qrOutput   string
	qrSize     int
)

var codeCmd = &cobra.Command{
	Use:   "code <account>",
	Short: "Print the current code of an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runCode,
}

var verifyCmd = &cobra.Command{
	Use:   "verify <account> <code>",
	Short: "Check a code against an account",
	Args:  cobra.ExactArgs(2),
	RunE:  runVerify,
}

var uriCmd = &cobra.Command{
	Use:   "uri <account>",
	Short: "Print the otpauth URI of an account",
	Long: `Print the otpauth://totp URI of an account, for moving it to another
authenticator. The URI contains the secret.`,
	Args: cobra.ExactArgs(1),
	RunE: runURI,
}

var qrCmd = &cobra.Command{
	Use:   "qr <account>",
	Short: "Show the account as a QR code",
	Long: `Render the otpauth URI of an account as a QR code in the terminal,
or write it as a PNG image with --out.`,
	Args: cobra.ExactArgs(1),
	RunE: runQR,
}

func init() {
	codeCmd.Flags().Int64Var(&codeAt, "at", 0, "unix time to generate the code for (default now)")
	verifyCmd.Flags().IntVar(&verifySkew, "skew", 1, "adjacent windows to accept on each side")
	qrCmd.Flags().StringVarP(&qrOutput, "out", "o", "", "write a PNG image to this file")
	qrCmd.Flags().IntVar(&qrSize, "size", 0, "PNG size in pixels (default TOTPVAULT_QR_SIZE)")
	rootCmd.AddCommand(codeCmd, verifyCmd, uriCmd, qrCmd)
}

func withAccount(cmd *cobra.Command, ref string, fn func(*session, vault.Account) error) error {
	s, err := unlockSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	acc, err := findAccount(s.store, ref)
	if err != nil {
		return err
	}
	return fn(s, acc)
}

func runCode(cmd *cobra.Command, args []string) error {
	return withAccount(cmd, args[0], func(_ *session, acc vault.Account) error {
		t := time.Now()
		if cmd.Flags().Changed("at") {
			t = time.Unix(codeAt, 0)
		}

		code, err := acc.Code(t)
		if err != nil {
			return err
		}
		if jsonOutput {
			return PrintJSON(map[string]any{
				"id":        acc.ID,
				"code":      code,
				"remaining": acc.Remaining(t),
			})
		}
		fmt.Println(code)
		return nil
	})
}

func runVerify(cmd *cobra.Command, args []string) error {
	return withAccount(cmd, args[0], func(_ *session, acc vault.Account) error {
		ok, err := totp.Validate(acc.Params(), args[1], time.Now(), verifySkew)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("code does not match %s (%s)", acc.Issuer, acc.Name)
		}
		Success("Code matches %s (%s)", acc.Issuer, acc.Name)
		return nil
	})
}

func runURI(cmd *cobra.Command, args []string) error {
	return withAccount(cmd, args[0], func(_ *session, acc vault.Account) error {
		uri, err := vault.AccountURI(acc)
		if err != nil {
			return err
		}
		fmt.Println(uri)
		return nil
	})
}

func runQR(cmd *cobra.Command, args []string) error {
	return withAccount(cmd, args[0], func(s *session, acc vault.Account) error {
		if qrOutput != "" {
			size := qrSize
			if size <= 0 {
				size = appCfg.QRSize
			}
			png, err := s.store.QRCode(acc.ID, size)
			if err != nil {
				return err
			}
			if err := os.WriteFile(qrOutput, png, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", qrOutput, err)
			}
			Success("QR code written to %s", qrOutput)
			return nil
		}

		uri, err := s.store.URI(acc.ID)
		if err != nil {
			return err
		}
		art, err := qrcode.Terminal(uri)
		if err != nil {
			return err
		}
		fmt.Print(art)
		fmt.Printf("%s (%s)\n", Bold("%s", acc.Issuer), acc.Name)
		return nil
	})
}
