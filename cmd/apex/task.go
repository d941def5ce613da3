// ABOUTME: CLI commands for one-off tasks.
// ABOUTME: Tasks belong to a date and earn 5 XP when completed.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/apex/internal/models"
	"github.com/harperreed/apex/internal/tracker"
)

var (
	taskDate string
	taskAll  bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage one-off tasks",
}

var taskAddCmd = &cobra.Command{
	Use:     "add <title>",
	Aliases: []string{"a"},
	Short:   "Add a task (default today)",
	Long: `Add a task for a date.

EXAMPLES:

  apex task add "Call the bank"
  apex task add "Renew passport" --date 2024-03-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := taskDate
		if date == "" {
			date = models.DateKey(app.Now())
		}
		out, err := app.Dispatch(tracker.AddTask{Title: strings.Join(args, " "), Date: date})
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}
		w := cmd.OutOrStdout()
		success(w, "Added task %s", out.Task.Title)
		fmt.Fprintf(w, "  %s %s\n", faint.Sprint(out.Task.ShortID()), out.Task.Date)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List tasks for a date",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st := app.State()
		th := currentTheme()
		w := cmd.OutOrStdout()
		if taskAll {
			if len(st.Tasks) == 0 {
				fmt.Fprintln(w, "No tasks found.")
				return nil
			}
			for _, t := range st.Tasks {
				box := "[ ]"
				if t.Completed {
					box = "[x]"
				}
				fmt.Fprintf(w, "%s %s %s %s\n", faint.Sprint(t.ShortID()), faint.Sprint(padRight(t.Date, 10)), box, t.Title)
			}
			return nil
		}

		date := taskDate
		if date == "" {
			date = models.DateKey(app.Now())
		}
		if !models.IsValidDateKey(date) {
			return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", date)
		}
		printTasks(w, th, tasksFor(st.Tasks, date), date)
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:     "done <id>",
	Aliases: []string{"toggle"},
	Short:   "Toggle a task's completion",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := app.ResolveTask(args[0])
		if err != nil {
			return err
		}
		out, err := app.Dispatch(tracker.ToggleTask{TaskID: t.ID})
		if err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}
		w := cmd.OutOrStdout()
		if out.Task != nil && out.Task.Completed {
			success(w, "Completed %s", t.Title)
		} else {
			success(w, "Reopened %s", t.Title)
		}
		printOutcome(w, out)
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm", "del"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := app.ResolveTask(args[0])
		if err != nil {
			return err
		}
		if _, err := app.Dispatch(tracker.DeleteTask{TaskID: t.ID}); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		success(cmd.OutOrStdout(), "Deleted task %s", t.Title)
		return nil
	},
}

func init() {
	taskAddCmd.Flags().StringVar(&taskDate, "date", "", "date (YYYY-MM-DD, default today)")
	taskListCmd.Flags().StringVar(&taskDate, "date", "", "date (YYYY-MM-DD, default today)")
	taskListCmd.Flags().BoolVarP(&taskAll, "all", "a", false, "list every task")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}
