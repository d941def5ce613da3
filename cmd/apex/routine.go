// ABOUTME: CLI commands for routines: add, list, delete, toggle, reset, note.
// ABOUTME: Routine IDs accept any unique prefix.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/apex/internal/models"
	"github.com/harperreed/apex/internal/tracker"
)

var (
	routineCategory string
	routineNegative bool
	routineDays     string
	routineTarget   int
)

var routineCmd = &cobra.Command{
	Use:     "routine",
	Aliases: []string{"r", "habit"},
	Short:   "Manage routines",
	Long: `Manage the habits you track each week.

Positive routines are checked off per day and earn 10 XP per check.
Negative routines (--negative) track a habit you are quitting; they
count days clean instead of check-offs.

The free plan holds 10 routines. 'apex upgrade' removes the limit.`,
}

var routineAddCmd = &cobra.Command{
	Use:     "add <title>",
	Aliases: []string{"a"},
	Short:   "Add a routine",
	Long: `Add a routine.

CATEGORIES:

  career, growth (default), health, mindset

SCHEDULE:

  --days takes weekday names or indexes (0=Mon..6=Sun). Unscheduled
  days are rest days and don't count toward consistency.

EXAMPLES:

  apex routine add "Morning Run" --category health
  apex routine add "Gym" --days mon,wed,fri
  apex routine add "Doomscrolling" --negative --category mindset`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		title := strings.TrimSpace(strings.Join(args, " "))

		category := models.DefaultCategory
		if routineCategory != "" {
			c, ok := models.ParseCategory(routineCategory)
			if !ok {
				return fmt.Errorf("unknown category: %s (use career, growth, health, or mindset)", routineCategory)
			}
			category = c
		}

		r := models.NewRoutine(title, category)
		if routineNegative {
			r.WithType(models.RoutineNegative, app.Now())
		}
		if routineDays != "" {
			days, err := parseDays(routineDays)
			if err != nil {
				return err
			}
			r.WithFrequency(days)
		}
		if routineTarget > 0 {
			r.WithTarget(routineTarget)
		}

		out, err := app.Dispatch(tracker.AddRoutines{Source: tracker.SourceManual, Routines: []models.Routine{*r}})
		if err != nil {
			return fmt.Errorf("failed to add routine: %w", err)
		}
		if printOutcome(w, out) {
			return nil
		}
		for _, added := range out.Added {
			success(w, "Added %s", added.Title)
			fmt.Fprintf(w, "  %s %s\n", faint.Sprint(added.ShortID()), added.Category)
		}
		return nil
	},
}

var routineListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List routines",
	Long: `List routines with this week's check-offs.

OUTPUT FORMAT:

  ID  TITLE  WEEK  CONSISTENCY  STREAK  CATEGORY

  Week cells: ■ done, □ scheduled, · rest day.
  The ID is an 8-character prefix you can use with other commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printRoutines(cmd.OutOrStdout(), currentTheme(), app.State().Routines, app.Now())
		return nil
	},
}

var routineDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm", "del"},
	Short:   "Delete a routine",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := app.ResolveRoutine(args[0])
		if err != nil {
			return err
		}
		if _, err := app.Dispatch(tracker.DeleteRoutine{RoutineID: r.ID}); err != nil {
			return fmt.Errorf("failed to delete routine: %w", err)
		}
		success(cmd.OutOrStdout(), "Deleted %s", r.Title)
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:     "toggle <id> [day]",
	Aliases: []string{"t", "check"},
	Short:   "Check or uncheck a routine for a day",
	Long: `Check or uncheck a routine for a weekday (default today).

Days may be names (mon, tuesday) or indexes 0-6 starting Monday.
Checking a day earns 10 XP; unchecking takes it back.
Rest days and quit-habits can't be toggled.

EXAMPLES:

  apex toggle a1b2          # today
  apex toggle a1b2 fri`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		r, err := app.ResolveRoutine(args[0])
		if err != nil {
			return err
		}
		day := models.DayIndex(app.Now())
		if len(args) == 2 {
			if day, err = models.ParseDay(args[1]); err != nil {
				return err
			}
		}

		out, err := app.Dispatch(tracker.ToggleDay{RoutineID: r.ID, Day: day})
		if err != nil {
			return fmt.Errorf("failed to toggle: %w", err)
		}
		switch {
		case len(out.Changed) == 0 && r.IsNegative():
			warn(w, "%s is a quit-habit; use 'apex reset' after a slip", r.Title)
		case len(out.Changed) == 0:
			warn(w, "%s is a rest day for %s", models.DayNames[day], r.Title)
		case out.XPDelta >= 0:
			success(w, "%s checked for %s", r.Title, models.DayNames[day])
		default:
			success(w, "%s unchecked for %s", r.Title, models.DayNames[day])
		}
		printOutcome(w, out)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset <id>",
	Short: "Clear a routine's week or restart a clean streak",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := app.ResolveRoutine(args[0])
		if err != nil {
			return err
		}
		out, err := app.Dispatch(tracker.ResetWeek{RoutineID: r.ID})
		if err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}
		success(cmd.OutOrStdout(), "Reset %s", r.Title)
		printOutcome(cmd.OutOrStdout(), out)
		return nil
	},
}

var noteCmd = &cobra.Command{
	Use:   "note <id> <text>",
	Short: "Attach a note to a routine and today's journal",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := app.ResolveRoutine(args[0])
		if err != nil {
			return err
		}
		out, err := app.Dispatch(tracker.SaveNote{RoutineID: r.ID, Text: strings.Join(args[1:], " ")})
		if err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}
		success(cmd.OutOrStdout(), "%s", out.Message)
		return nil
	},
}

func parseDays(s string) ([]int, error) {
	days := []int{}
	seen := map[int]bool{}
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := models.ParseDay(part)
		if err != nil {
			return nil, err
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	return days, nil
}

func init() {
	routineAddCmd.Flags().StringVarP(&routineCategory, "category", "c", "", "career, growth, health, or mindset")
	routineAddCmd.Flags().BoolVar(&routineNegative, "negative", false, "track a habit you are quitting")
	routineAddCmd.Flags().StringVar(&routineDays, "days", "", "scheduled weekdays, e.g. mon,wed,fri")
	routineAddCmd.Flags().IntVar(&routineTarget, "target", 0, "optional numeric goal")

	routineCmd.AddCommand(routineAddCmd)
	routineCmd.AddCommand(routineListCmd)
	routineCmd.AddCommand(routineDeleteCmd)
	rootCmd.AddCommand(routineCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(noteCmd)
}
