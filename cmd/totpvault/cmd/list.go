package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/totpvault/pkg/vault"
)

var (
	listSearch   string
	listCategory string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List accounts with their current codes",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories in use and the default ones",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "List the color names and icons accepted by add and edit",
	Args:  cobra.NoArgs,
	RunE:  runPalette,
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "filter by name or issuer")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "filter by category")
	rootCmd.AddCommand(listCmd, categoriesCmd, paletteCmd)
}

// listedAccount is the JSON form of a list row.
type listedAccount struct {
	vault.Account
	Code      string `json:"code"`
	Remaining int    `json:"remaining"`
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := unlockSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	accounts := s.store.Filter(vault.Query{Search: listSearch, Category: listCategory})
	now := time.Now()

	if jsonOutput {
		rows := make([]listedAccount, 0, len(accounts))
		for _, a := range accounts {
			rows = append(rows, listedAccount{
				Account:   a,
				Code:      vault.CodeOrPlaceholder(a, now),
				Remaining: a.Remaining(now),
			})
		}
		return PrintJSON(rows)
	}

	if len(accounts) == 0 {
		Info("No accounts found.")
		Info("Add one with: totpvault add --issuer NAME --name ACCOUNT --secret SECRET")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tISSUER\tNAME\tCATEGORY\tCODE\tTTL")
	for _, a := range accounts {
		issuer := a.Issuer
		if a.Icon.Valid() && a.Icon.Symbol() != a.Issuer {
			issuer += " " + Dim("[%s]", a.Icon.Symbol())
		}
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\t%s\n",
			shortID(a.ID),
			Swatch(a.Color), issuer,
			a.Name,
			a.Category,
			Bold("%s", FormatCode(vault.CodeOrPlaceholder(a, now))),
			Countdown(a.Remaining(now)),
		)
	}
	return w.Flush()
}

func runCategories(cmd *cobra.Command, _ []string) error {
	s, err := unlockSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	categories := s.store.Categories()
	if jsonOutput {
		return PrintJSON(categories)
	}
	for _, c := range categories {
		fmt.Println(c)
	}
	return nil
}

func runPalette(_ *cobra.Command, _ []string) error {
	if jsonOutput {
		return PrintJSON(struct {
			Colors []vault.ColorOption `json:"colors"`
			Icons  []vault.Icon        `json:"icons"`
		}{vault.ColorOptions, vault.Icons})
	}

	fmt.Println(Bold("Colors"))
	for _, c := range vault.ColorOptions {
		fmt.Printf("  %s %-8s %s\n", Swatch(c.Value), c.Name, Dim("%s", c.Value))
	}
	fmt.Println(Bold("Icons"))
	for _, i := range vault.Icons {
		fmt.Printf("  %-10s %s\n", i, Dim("%s", i.Domain()))
	}
	return nil
}
