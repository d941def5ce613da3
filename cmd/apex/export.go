// ABOUTME: CLI commands for exporting and importing apex data.
// ABOUTME: Supports JSON, YAML, and Markdown export with optional age encryption.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/apex/internal/models"
	"github.com/harperreed/apex/internal/storage"
	"github.com/harperreed/apex/internal/tracker"
)

// passphraseEnv supplies the encryption passphrase without a flag.
const passphraseEnv = "APEX_PASSPHRASE"

var (
	exportOutput     string
	exportSince      string
	exportEncrypt    bool
	exportPassphrase string
	importPassphrase string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export apex data",
	Long: `Export apex data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable, also importable)
  markdown   Routines, tasks, and journal as Markdown

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include journal entries since this date (markdown only)
  --encrypt      Encrypt with a passphrase (age, ASCII armored)
  --passphrase   Passphrase for --encrypt (or set APEX_PASSPHRASE)

EXAMPLES:

  apex export json -o backup.json
  apex export yaml
  apex export markdown --since 2024-01-01
  APEX_PASSPHRASE=secret apex export json --encrypt -o backup.age`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		st := app.State()
		now := app.Now()

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(st, now)
		case "yaml":
			data, err = storage.ExportYAML(st, now)
		case "markdown":
			var since *time.Time
			if exportSince != "" {
				t, perr := time.ParseInLocation(models.DateLayout, exportSince, time.Local)
				if perr != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			data = []byte(storage.ExportMarkdown(st, since, now))
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportEncrypt {
			pass := passphrase(exportPassphrase)
			if pass == "" {
				return storage.ErrPassphraseRequired
			}
			if data, err = storage.Encrypt(data, pass); err != nil {
				return fmt.Errorf("encrypt: %w", err)
			}
		}

		w := cmd.OutOrStdout()
		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			success(w, "Exported to %s", exportOutput)
		} else {
			fmt.Fprintln(w, string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import apex data from a JSON or YAML export",
	Long: `Import apex data from a previous export. This REPLACES all current data.

Encrypted exports are detected automatically; supply --passphrase or
APEX_PASSPHRASE.

EXAMPLES:

  apex import backup.json
  apex import backup.age --passphrase secret`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		export, err := storage.ParseExport(data, passphrase(importPassphrase))
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		st := export.State(app.Now())
		if _, err := app.Dispatch(tracker.Replace{State: st}); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		w := cmd.OutOrStdout()
		success(w, "Imported from %s", filename)
		fmt.Fprintf(w, "  %d routines, %d tasks, %d journal entries\n", len(st.Routines), len(st.Tasks), len(st.Journal))
		return nil
	},
}

func passphrase(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(passphraseEnv)
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include journal entries since date (YYYY-MM-DD)")
	exportCmd.Flags().BoolVar(&exportEncrypt, "encrypt", false, "encrypt the export with a passphrase")
	exportCmd.Flags().StringVar(&exportPassphrase, "passphrase", "", "encryption passphrase")
	importCmd.Flags().StringVar(&importPassphrase, "passphrase", "", "passphrase for encrypted exports")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
