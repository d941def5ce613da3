// ABOUTME: CLI command running the focus timer TUI.
// ABOUTME: A finished session dispatches the +50 XP reward once.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/harperreed/apex/internal/focus"
	"github.com/harperreed/apex/internal/tracker"
)

var focusMinutes int

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Run a focus session timer",
	Long: `Run a full-screen focus timer. Completing a session earns 50 XP.

KEYS:

  space   start / pause
  r       reset
  + / -   change duration by 5 minutes (while stopped)
  q       quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		timer, err := focus.NewTimer(focusMinutes)
		if err != nil {
			return err
		}
		m := focus.NewModel(timer, focusReward, currentTheme())

		p := tea.NewProgram(m, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("focus timer: %w", err)
		}
		return m.Err()
	},
}

func focusReward() (string, error) {
	out, err := app.Dispatch(tracker.CompleteFocusSession{})
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

func init() {
	focusCmd.Flags().IntVarP(&focusMinutes, "minutes", "m", focus.DefaultMinutes, "session length in minutes (1-180)")
	rootCmd.AddCommand(focusCmd)
}
