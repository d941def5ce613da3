// ABOUTME: CLI commands for progress: stats, analytics, share, upgrade, theme.
// ABOUTME: Everything shown here is derived from state on read.
package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/harperreed/apex/internal/tracker"
	"github.com/harperreed/apex/internal/ui"
)

// copyToClipboard is swapped in tests.
var copyToClipboard = clipboard.WriteAll

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show level and weekly completion",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		th := currentTheme()
		level := app.Level()
		stats := app.Stats()

		fmt.Fprintln(w, th.Heading(ui.IconBolt, fmt.Sprintf("Level %d · %s", level.Level, level.Title)))
		fmt.Fprintln(w, th.LabelValue("XP", level.XP))
		if level.NextTitle != "" {
			fmt.Fprintln(w, th.LabelValue("Next", fmt.Sprintf("%s at %d XP", level.NextTitle, level.NextThreshold)))
		}
		fmt.Fprintf(w, "%s %d%%\n", th.Bar(level.Progress, 30), level.Progress)
		fmt.Fprintln(w)
		fmt.Fprintln(w, th.LabelValue("Scheduled", fmt.Sprintf("%d/%d days done (%d%%)", stats.CompletedScheduled, stats.TotalScheduled, stats.Percentage)))
		fmt.Fprintln(w, th.LabelValue("On track", fmt.Sprintf("%d of %d habits at %d%%+", stats.OnTrack, stats.PositiveCount, tracker.OnTrackThreshold)))
		return nil
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show category balance and badges",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		th := currentTheme()
		st := app.State()

		fmt.Fprintln(w, th.H2.Render("Category balance"))
		for _, cw := range tracker.CategoryBalance(st.Routines) {
			fmt.Fprintf(w, "%s %s %3d%%\n", padRight(string(cw.Category), 8), th.Bar(cw.Percent, 20), cw.Percent)
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, th.H2.Render("Badges"))
		for _, b := range tracker.ComputeBadges(st.Routines, st.Tasks, app.Level()) {
			icon := ui.IconLock
			name := th.Muted.Render(b.Name)
			if b.Unlocked {
				icon = ui.IconTrophy
				name = th.Gold.Render(b.Name)
			}
			fmt.Fprintf(w, "%s %s %s\n", icon, name, th.Muted.Render(b.Description))
		}
		return nil
	},
}

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Copy a progress summary to the clipboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		summary := tracker.ShareSummary(app.Level(), len(app.State().Routines))

		if err := copyToClipboard(summary); err != nil {
			warn(w, "Clipboard unavailable (%v); here it is instead:", err)
			fmt.Fprintln(w, summary)
			return nil
		}
		success(w, "Copied to clipboard")
		fmt.Fprintln(w, faint.Sprint(summary))
		return nil
	},
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Unlock Apex Pro",
	Long: `Unlock Apex Pro: unlimited routines, unlimited Guru messages,
and titan blueprints.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := app.Dispatch(tracker.Upgrade{})
		if err != nil {
			return err
		}
		if len(out.Changed) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "You already have Apex Pro.")
			return nil
		}
		success(cmd.OutOrStdout(), "%s", out.Message)
		return nil
	},
}

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or change the color theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"dark", "light", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintln(w, app.State().Theme)
			return nil
		}

		var action tracker.Action = tracker.ToggleTheme{}
		if arg := strings.ToLower(args[0]); arg != "toggle" {
			t, err := tracker.ParseTheme(arg)
			if err != nil {
				return err
			}
			action = tracker.SetTheme{Theme: t}
		}
		if _, err := app.Dispatch(action); err != nil {
			return err
		}
		success(w, "Theme: %s", app.State().Theme)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(themeCmd)
}
