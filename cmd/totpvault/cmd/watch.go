package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/totpvault/pkg/ticker"
	"github.com/dmitrymomot/totpvault/pkg/vault"
)

var (
	watchSearch   string
	watchCategory string
)

var watchCmd = &cobra.Command{
	Use:   "watch [account...]",
	Short: "Show live codes with a countdown",
	Long: `Show codes that refresh every second until interrupted with Ctrl+C.

Without arguments every account matching --search and --category is shown.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchSearch, "search", "s", "", "filter by name or issuer")
	watchCmd.Flags().StringVarP(&watchCategory, "category", "c", "", "filter by category")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := unlockSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	accounts, err := watchedAccounts(s.store, args)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		Info("No accounts to watch")
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tk := ticker.New(ticker.WithInterval(time.Second))
	defer tk.Close()

	updates := make(chan ticker.Update, len(accounts))
	var wg sync.WaitGroup
	for _, acc := range accounts {
		w := tk.Watch(ctx, ticker.Source{AccountID: acc.ID, Params: acc.Params()})
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range w.Updates() {
				select {
				case updates <- u:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(updates)
	}()

	latest := make(map[string]ticker.Update, len(accounts))
	for u := range updates {
		latest[u.AccountID] = u
		if len(latest) == len(accounts) {
			render(accounts, latest)
		}
	}
	fmt.Println()
	return nil
}

// watchedAccounts resolves refs to distinct accounts, in first-seen order.
// Without refs it applies the --search and --category filters.
func watchedAccounts(store *vault.Store, refs []string) ([]vault.Account, error) {
	if len(refs) == 0 {
		return store.Filter(vault.Query{Search: watchSearch, Category: watchCategory}), nil
	}
	seen := make(map[string]bool, len(refs))
	accounts := make([]vault.Account, 0, len(refs))
	for _, ref := range refs {
		acc, err := findAccount(store, ref)
		if err != nil {
			return nil, err
		}
		if seen[acc.ID] {
			continue
		}
		seen[acc.ID] = true
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// render redraws the watch table in place.
func render(accounts []vault.Account, latest map[string]ticker.Update) {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, a := range accounts {
		u := latest[a.ID]
		code := FormatCode(u.Code)
		if u.Err != nil {
			code = vault.CodePlaceholder
		}
		fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\n", Swatch(a.Color), a.Issuer, a.Name, Bold("%s", code), Countdown(u.Remaining))
	}
	_ = w.Flush()

	// move the cursor to the top left and clear the screen
	fmt.Fprint(os.Stdout, "\033[H\033[2J")
	fmt.Fprint(os.Stdout, b.String())
	fmt.Fprint(os.Stdout, Dim("Press Ctrl+C to exit"))
}
