package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/totpvault/pkg/vault"
)

var (
	importFormat string
	exportFormat string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import accounts from an export file",
	Long: `Import accounts from a JSON or YAML export.

Accounts whose issuer and name already exist are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export accounts to a file",
	Long: `Export all accounts as JSON or YAML. Writes to stdout when no file is given.

The export is NOT encrypted and contains every secret. Keep it safe.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "json or yaml (default: from file extension)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "json or yaml (default: from file extension, else json)")
	rootCmd.AddCommand(importCmd, exportCmd)
}

// fileFormat picks "json" or "yaml" from the flag value or the file extension.
func fileFormat(flag, path string) (string, error) {
	format := strings.ToLower(flag)
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}
	switch format {
	case "json", "yaml":
		return format, nil
	case "yml":
		return "yaml", nil
	}
	return "", fmt.Errorf("unsupported format %q, use json or yaml", flag)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	format, err := fileFormat(importFormat, args[0])
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	s, err := unlockSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	var res vault.ImportResult
	if format == "yaml" {
		res, err = s.store.ImportYAML(ctx, data)
	} else {
		res, err = s.store.ImportJSON(ctx, data)
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		return PrintJSON(res)
	}
	Success("Imported %d accounts", res.Added)
	if res.Duplicates > 0 {
		Info("Skipped %d accounts that already exist", res.Duplicates)
	}
	if res.Invalid > 0 {
		Warning("Skipped %d invalid entries", res.Invalid)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	}
	format, err := fileFormat(exportFormat, path)
	if err != nil {
		return err
	}

	s, err := unlockSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	var data []byte
	if format == "yaml" {
		data, err = s.store.ExportYAML()
	} else {
		data, err = s.store.Export()
	}
	if err != nil {
		return err
	}

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	Success("Exported %d accounts to %s", len(s.store.Accounts()), path)
	Warning("The export is not encrypted")
	return nil
}
