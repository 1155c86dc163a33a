package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/totpvault/pkg/qrcode"
	"github.com/dmitrymomot/totpvault/pkg/totp"
	"github.com/dmitrymomot/totpvault/pkg/vault"
)

// accountFlags holds the flags shared by add and edit.
type accountFlags struct {
	name      string
	issuer    string
	secret    string
	algorithm string
	digits    int
	period    int
	category  string
	color     string
	icon      string
	generate  bool
	uri       string
}

func (f *accountFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "account name, e.g. alice@example.com")
	cmd.Flags().StringVar(&f.issuer, "issuer", "", "service name, e.g. Google")
	cmd.Flags().StringVar(&f.secret, "secret", "", "Base32 shared secret")
	cmd.Flags().StringVar(&f.algorithm, "algorithm", "SHA1", "SHA1, SHA256 or SHA512")
	cmd.Flags().IntVar(&f.digits, "digits", totp.DefaultDigits, "code length (4-10)")
	cmd.Flags().IntVar(&f.period, "period", totp.DefaultPeriod, "window length in seconds (10-60)")
	cmd.Flags().StringVar(&f.category, "category", vault.DefaultCategory, "category")
	cmd.Flags().StringVar(&f.color, "color", vault.DefaultColor, "palette name or #rrggbb value")
	cmd.Flags().StringVar(&f.icon, "icon", "", "service icon (default: guessed from issuer)")
}

func resolveColor(value string) string {
	if c, ok := vault.ColorByName(value); ok {
		return c
	}
	return value
}

var addFlags accountFlags

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an account",
	Long: `Add a TOTP account by entering its secret.

Examples:
  totpvault add --issuer Google --name alice@example.com --secret JBSWY3DPEHPK3PXP
  totpvault add --issuer Acme --name bob --generate --digits 8
  totpvault add --uri "otpauth://totp/GitHub:bob?secret=JBSWY3DPEHPK3PXP"`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var scanCmd = &cobra.Command{
	Use:   "scan [uri]",
	Short: "Add an account from a scanned QR code payload",
	Long: `Add an account from the text of a scanned QR code, an otpauth://totp URI.

The payload is read from stdin when no argument is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	addFlags.register(addCmd)
	addCmd.Flags().BoolVar(&addFlags.generate, "generate", false, "generate a random secret")
	addCmd.Flags().StringVar(&addFlags.uri, "uri", "", "add from an otpauth://totp URI instead of flags")
	rootCmd.AddCommand(addCmd, scanCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if addFlags.uri != "" {
		return addFromURI(cmd, addFlags.uri)
	}

	secret := addFlags.secret
	if addFlags.generate {
		if secret != "" {
			return fmt.Errorf("--secret and --generate cannot be used together")
		}
		var err error
		if secret, err = totp.GenerateSecret(); err != nil {
			return err
		}
	}

	icon := vault.ParseIcon(addFlags.icon)
	if icon == vault.IconNone {
		icon = vault.SuggestIcon(addFlags.issuer)
	}

	s, err := unlockSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	acc, err := s.store.Add(ctx, vault.NewAccount{
		Name:      addFlags.name,
		Issuer:    addFlags.issuer,
		Secret:    secret,
		Algorithm: totp.Algorithm(addFlags.algorithm),
		Digits:    addFlags.digits,
		Period:    addFlags.period,
		Category:  addFlags.category,
		Color:     resolveColor(addFlags.color),
		Icon:      icon,
	})
	if acc.ID == "" {
		return err
	}
	if err != nil {
		Warning("%v", err)
	}

	return printAdded(acc, addFlags.generate)
}

func runScan(cmd *cobra.Command, args []string) error {
	var payload string
	if len(args) == 1 {
		payload = args[0]
	} else {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
		payload = strings.TrimSpace(string(b))
	}

	uri, err := qrcode.ValidateScanned(payload)
	if err != nil {
		return err
	}
	return addFromURI(cmd, uri)
}

func addFromURI(cmd *cobra.Command, uri string) error {
	ctx := cmd.Context()
	s, err := unlockSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	acc, err := s.store.AddURI(ctx, uri)
	if acc.ID == "" {
		return err
	}
	if err != nil {
		Warning("%v", err)
	}
	return printAdded(acc, false)
}

func printAdded(acc vault.Account, showSecret bool) error {
	if jsonOutput {
		return PrintJSON(acc)
	}

	Success("Added %s (%s)", Bold("%s", acc.Issuer), acc.Name)
	fmt.Printf("%s %s\n", Bold("ID:"), acc.ID)
	if showSecret {
		fmt.Printf("%s %s\n", Bold("Secret:"), acc.Secret)
	}
	fmt.Printf("%s %s\n", Bold("Code:"), FormatCode(vault.CodeOrPlaceholder(acc, time.Now())))
	return nil
}
