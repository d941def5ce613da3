// ABOUTME: CLI commands for Charm-based sync.
// ABOUTME: Supports link, unlink, status, repair, reset, and wipe operations.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/charm/kv"
	"github.com/spf13/cobra"

	"github.com/harperreed/apex/internal/config"
	"github.com/harperreed/apex/internal/storage"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync apex data across devices",
	Long: `Sync apex data across devices using Charm Cloud.

Sync applies to the charm backend. Switch to it with:

  apex migrate --to charm --switch

Your data is E2E encrypted with your SSH key before upload.

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and account info
  repair      Repair database corruption (checkpoints WAL, removes SHM, vacuums)
  reset       Reset local data and restore from cloud (destructive)
  wipe        Delete cloud and local data (destructive)

Data syncs automatically after each write.`,
	Annotations: map[string]string{skipSetup: "true"},
}

var syncLinkCmd = &cobra.Command{
	Use:         "link",
	Short:       "Link this device to Charm",
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}
		w := cmd.OutOrStdout()
		success(w, "Device linked to Charm")

		cs, err := storage.OpenCharm()
		if err != nil {
			warn(w, "Initial sync skipped: %v", err)
			return nil
		}
		defer cs.Close()
		if err := cs.Sync(); err != nil {
			warn(w, "Initial sync failed: %v", err)
		} else {
			success(w, "Initial sync complete")
		}
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:         "unlink",
	Short:       "Disconnect from Charm",
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}
		success(cmd.OutOrStdout(), "Device unlinked from Charm")
		fmt.Fprintln(cmd.OutOrStdout(), "Your local apex data is preserved.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "Backend:", cfg.GetBackend())

		cs, ok := store.(*storage.CharmStore)
		if cfg.GetBackend() != config.BackendCharm || !ok {
			yellow.Fprintln(w, "Sync is only available with the charm backend.")
			fmt.Fprintln(w, "\nRun 'apex migrate --to charm --switch' to enable it.")
			return nil
		}

		id, err := cs.ID()
		if err != nil {
			yellow.Fprintln(w, "Not linked to Charm")
			fmt.Fprintln(w, "\nRun 'apex sync link' to connect to Charm.")
			return nil
		}

		host := os.Getenv("CHARM_HOST")
		fmt.Fprintln(w, "Charm ID:", id)
		fmt.Fprintln(w, "Server:", host)
		if cs.IsReadOnly() {
			yellow.Fprintln(w, "Read-only: another apex process holds the database")
		}
		fmt.Fprintln(w)

		st := app.State()
		success(w, "Connected to Charm")
		fmt.Fprintf(w, "  Routines: %d\n  Tasks: %d\n  Journal entries: %d\n", len(st.Routines), len(st.Tasks), len(st.Journal))
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:         "wipe",
	Short:       "Delete all cloud and local data",
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "This will PERMANENTLY DELETE all cloud backups and local apex data.")
		fmt.Fprint(w, "Type 'wipe' to confirm: ")
		var confirm string
		fmt.Fscanln(cmd.InOrStdin(), &confirm)
		if confirm != "wipe" {
			fmt.Fprintln(w, "Canceled.")
			return nil
		}

		result, err := kv.Wipe(storage.CharmDBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		success(w, "Data wiped successfully")
		fmt.Fprintf(w, "  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Fprintf(w, "  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:         "repair",
	Short:       "Repair database corruption",
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		force, _ := cmd.Flags().GetBool("force")

		fmt.Fprintln(w, "Repairing apex database...")
		result, err := kv.Repair(storage.CharmDBName, force)

		// Show what happened
		if result.WalCheckpointed {
			success(w, "WAL checkpointed")
		}
		if result.ShmRemoved {
			success(w, "SHM file removed")
		}
		if result.IntegrityOK {
			success(w, "Integrity check passed")
		} else {
			red.Fprintln(w, "✗ Integrity check failed")
		}
		if result.Vacuumed {
			success(w, "Database vacuumed")
		}

		if err != nil {
			if !force {
				yellow.Fprintln(w, "\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}

		success(w, "Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:         "reset",
	Short:       "Reset local data and restore from cloud",
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "This will DELETE all local apex data and restore from cloud.")
		fmt.Fprint(w, "Continue? [y/N]: ")
		var confirm string
		fmt.Fscanln(cmd.InOrStdin(), &confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Fprintln(w, "Canceled.")
			return nil
		}

		if err := kv.Reset(storage.CharmDBName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		success(w, "Local data reset and restored from cloud")
		return nil
	},
}

func runCharm(sub string) error {
	if os.Getenv("CHARM_HOST") == "" {
		_ = os.Setenv("CHARM_HOST", storage.DefaultCharmHost)
	}
	c := exec.Command("charm", sub)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func init() {
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)

	syncRepairCmd.Flags().Bool("force", false, "Attempt recovery even if integrity checks fail")

	rootCmd.AddCommand(syncCmd)
}
