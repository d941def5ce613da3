// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies every key from the active backend into another one.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/apex/internal/storage"
)

var (
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
	migrateSwitch bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate --to <backend>",
	Short: "Copy data to another storage backend",
	Long: `Copy all apex data from the active backend to another one.

BACKENDS:

  sqlite   ~/.local/share/apex/apex.db (default)
  badger   ~/.local/share/apex/badger/
  charm    Charm Cloud synced KV

IMPORTANT:

  - The destination must be empty unless --force is given
  - The source is left untouched
  - Run with --dry-run first to see what would be copied
  - --switch updates your config to use the new backend afterwards

USAGE:

  apex migrate --to badger --dry-run
  apex migrate --to charm --switch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		from := cfg.GetBackend()
		if migrateTo == "" {
			return fmt.Errorf("--to is required")
		}
		if migrateTo == from {
			return fmt.Errorf("already using %s", from)
		}

		keys, err := store.Keys()
		if err != nil {
			return fmt.Errorf("list keys: %w", err)
		}

		if migrateDryRun {
			yellow.Fprintln(w, "Dry run mode - no changes will be made")
			fmt.Fprintf(w, "Would copy %d keys from %s to %s\n", len(keys), from, migrateTo)
			st := app.State()
			fmt.Fprintf(w, "  Routines: %d\n  Tasks: %d\n  Journal entries: %d\n", len(st.Routines), len(st.Tasks), len(st.Journal))
			return nil
		}

		dst, err := cfg.OpenBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("open %s: %w", migrateTo, err)
		}
		defer dst.Close()

		empty, err := storage.IsStoreEmpty(dst)
		if err != nil {
			return fmt.Errorf("inspect %s: %w", migrateTo, err)
		}
		if !empty && !migrateForce {
			return fmt.Errorf("%s already has data (use --force to overwrite matching keys)", migrateTo)
		}

		// Make sure the source reflects the latest schema before copying.
		st := app.State()
		if err := snap.PersistAll(&st); err != nil {
			return fmt.Errorf("flush source: %w", err)
		}

		summary, err := storage.MigrateData(store, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		success(w, "Migrated %s → %s", from, migrateTo)
		fmt.Fprintf(w, "  Keys: %d\n  Routines: %d\n  Tasks: %d\n  Journal entries: %d\n",
			summary.Keys, summary.Routines, summary.Tasks, summary.JournalEntries)

		if migrateSwitch {
			cfg.Backend = migrateTo
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			success(w, "Config now uses %s", migrateTo)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: sqlite, badger, charm")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "write into a non-empty destination")
	migrateCmd.Flags().BoolVar(&migrateSwitch, "switch", false, "switch the config to the destination backend")
	rootCmd.AddCommand(migrateCmd)
}
