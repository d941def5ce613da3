// ABOUTME: CLI commands for the daily journal.
// ABOUTME: Entries are rendered as Markdown through glamour.
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/harperreed/apex/internal/models"
	"github.com/harperreed/apex/internal/storage"
	"github.com/harperreed/apex/internal/tracker"
)

var (
	journalMood string
	journalDate string
	journalRaw  bool
)

var journalCmd = &cobra.Command{
	Use:     "journal",
	Aliases: []string{"j"},
	Short:   "Write and read the daily journal",
	Long: `One journal entry per day, with a mood and the notes you saved on routines.

MOODS:

  great, good, neutral (default), bad, awful`,
}

var journalWriteCmd = &cobra.Command{
	Use:     "write <text>",
	Aliases: []string{"w"},
	Short:   "Write today's entry (replaces the text, keeps habit notes)",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := journalDate
		if date == "" {
			date = models.DateKey(app.Now())
		}
		entry := models.NewJournalEntry(date)
		entry.Content = strings.Join(args, " ")
		entry.Mood = models.Mood(strings.ToLower(journalMood))
		entry.HabitLog = nil

		out, err := app.Dispatch(tracker.SaveJournalEntry{Entry: *entry})
		if err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}
		success(cmd.OutOrStdout(), "%s (%s)", out.Message, date)
		return nil
	},
}

var journalShowCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show the entry for a date (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := models.DateKey(app.Now())
		if len(args) == 1 {
			date = args[0]
		}
		if !models.IsValidDateKey(date) {
			return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", date)
		}

		st := app.State()
		i := st.FindJournal(date)
		if i < 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No journal entry for %s.\n", date)
			return nil
		}
		return renderMarkdown(cmd, storage.JournalMarkdown(st.Journal[i]))
	},
}

var journalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List journal entries, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		entries := app.State().Journal
		if len(entries) == 0 {
			fmt.Fprintln(w, "No journal entries yet.")
			return nil
		}
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			fmt.Fprintf(w, "%s %s %s %s\n",
				e.Date,
				padRight(string(e.Mood), 8),
				faint.Sprintf("%d notes", len(e.HabitLog)),
				truncate(strings.ReplaceAll(e.Content, "\n", " "), 50))
		}
		return nil
	},
}

func renderMarkdown(cmd *cobra.Command, md string) error {
	w := cmd.OutOrStdout()
	if journalRaw {
		fmt.Fprint(w, md)
		return nil
	}
	style := "dark"
	if app.State().Theme == tracker.ThemeLight {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	fmt.Fprint(w, out)
	return nil
}

func init() {
	journalWriteCmd.Flags().StringVarP(&journalMood, "mood", "m", string(models.MoodNeutral), "great, good, neutral, bad, awful")
	journalWriteCmd.Flags().StringVar(&journalDate, "date", "", "date (YYYY-MM-DD, default today)")
	journalShowCmd.Flags().BoolVar(&journalRaw, "raw", false, "print Markdown without rendering")

	journalCmd.AddCommand(journalWriteCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalListCmd)
	rootCmd.AddCommand(journalCmd)
}
