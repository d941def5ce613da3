// ABOUTME: CLI commands for AI suggestions, the Guru coach, and blueprints.
// ABOUTME: AI calls show a spinner; nothing is added until the user accepts.
package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/apex/internal/models"
	"github.com/harperreed/apex/internal/suggest"
	"github.com/harperreed/apex/internal/tracker"
	"github.com/harperreed/apex/internal/ui"
)

var (
	suggestCount int
	guruPicks    string
	guruLimit    int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <goal>",
	Short: "Ask the AI for routines toward a goal",
	Long: `Ask the AI for routines toward a goal. Suggestions are held for review:

  apex suggest "run a marathon"   # generate and preselect what fits your plan
  apex suggest pick 3             # select suggestion #3
  apex suggest unpick 1           # deselect suggestion #1
  apex suggest accept             # add the selected routines
  apex suggest clear              # discard the suggestions

Free users can only select as many suggestions as they have free slots.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		goal := strings.Join(args, " ")

		out, err := ui.Spin(cmd.Context(), cmd.ErrOrStderr(), "Designing your routines...",
			func(ctx context.Context) (tracker.Outcome, error) {
				return app.GenerateSuggestions(ctx, goal, suggestCount)
			})
		if err != nil {
			return err
		}
		if printOutcome(w, out) || len(out.Changed) == 0 {
			return nil
		}
		printPending(w, app.State())
		return nil
	},
}

var suggestShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show pending suggestions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printPending(cmd.OutOrStdout(), app.State())
		return nil
	},
}

var suggestPickCmd = &cobra.Command{
	Use:   "pick <n>...",
	Short: "Select pending suggestions by number",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeSelection(cmd, args, func(i int) tracker.Action { return tracker.SelectSuggestion{Index: i} })
	},
}

var suggestUnpickCmd = &cobra.Command{
	Use:   "unpick <n>...",
	Short: "Deselect pending suggestions by number",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeSelection(cmd, args, func(i int) tracker.Action { return tracker.DeselectSuggestion{Index: i} })
	},
}

var suggestAcceptCmd = &cobra.Command{
	Use:   "accept",
	Short: "Add the selected suggestions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		out, err := app.Dispatch(tracker.AcceptPendingSuggestions{})
		if err != nil {
			return err
		}
		printOutcome(w, out)
		printAdded(w, out.Added)
		return nil
	},
}

var suggestClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard pending suggestions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := app.Dispatch(tracker.ClearPendingSuggestions{}); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Suggestions cleared")
		return nil
	},
}

func changeSelection(cmd *cobra.Command, args []string, action func(int) tracker.Action) error {
	w := cmd.OutOrStdout()
	idxs, err := parseIndexes(strings.Join(args, ","))
	if err != nil {
		return err
	}
	for _, i := range idxs {
		out, err := app.Dispatch(action(i))
		if err != nil {
			return err
		}
		printOutcome(w, out)
	}
	printPending(w, app.State())
	return nil
}

func printPending(w io.Writer, st tracker.State) {
	if st.Pending == nil {
		fmt.Fprintln(w, "No pending suggestions. Try 'apex suggest <goal>'.")
		return
	}
	th := ui.NewTheme(string(st.Theme))
	fmt.Fprintln(w, th.H2.Render("Suggestions for: "+st.Pending.Goal))
	selected := map[int]bool{}
	for _, i := range st.Pending.Selected {
		selected[i] = true
	}
	for i, r := range st.Pending.Candidates {
		box := "[ ]"
		if selected[i] {
			box = th.Good.Render("[x]")
		}
		fmt.Fprintf(w, "%2d %s %s %s\n", i+1, box, padRight(r.Title, 32), th.Category(r.Category))
	}
	if slots := tracker.RemainingSlots(st.IsPro, len(st.Routines)); slots != tracker.Unlimited {
		faint.Fprintf(w, "  %d free slots left\n", slots)
	}
	faint.Fprintln(w, "  apex suggest accept to add the selected routines")
}

func printAdded(w io.Writer, added []models.Routine) {
	for _, r := range added {
		success(w, "Added %s", r.Title)
		fmt.Fprintf(w, "  %s %s\n", faint.Sprint(r.ShortID()), r.Category)
	}
}

var guruCmd = &cobra.Command{
	Use:   "guru <message>",
	Short: "Talk to the Guru coach",
	Long: `Talk to the Guru, an AI performance coach. Replies may include routine
suggestions you can add with 'apex guru accept'.

  apex guru "I keep skipping workouts"
  apex guru history
  apex guru accept last --pick 1,2

Free users get 5 messages per day.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		text := strings.Join(args, " ")

		out, err := ui.Spin(cmd.Context(), cmd.ErrOrStderr(), "The Guru is thinking...",
			func(ctx context.Context) (tracker.Outcome, error) {
				return app.SendGuruMessage(ctx, text)
			})
		if err != nil {
			return err
		}
		if printOutcome(w, out) || out.Chat == nil {
			return nil
		}
		printChatMessage(w, currentTheme(), *out.Chat)
		if !app.State().IsPro {
			faint.Fprintf(w, "  %d of %d messages left today\n",
				max(0, tracker.FreeMessageLimit-app.State().Usage.Count), tracker.FreeMessageLimit)
		}
		return nil
	},
}

var guruHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the conversation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		th := currentTheme()
		chat := app.State().Chat
		if guruLimit > 0 && len(chat) > guruLimit {
			chat = chat[len(chat)-guruLimit:]
		}
		for _, m := range chat {
			printChatMessage(w, th, m)
		}
		return nil
	},
}

var guruAcceptCmd = &cobra.Command{
	Use:   "accept <message-id|last>",
	Short: "Add routines suggested in a Guru reply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		msg, err := resolveGuruMessage(args[0])
		if err != nil {
			return err
		}
		var picks []int
		if guruPicks != "" {
			if picks, err = parseIndexes(guruPicks); err != nil {
				return err
			}
		}

		out, err := app.Dispatch(tracker.AcceptChatSuggestions{MessageID: msg.ID, Picks: picks})
		if err != nil {
			return err
		}
		printOutcome(w, out)
		printAdded(w, out.Added)
		return nil
	},
}

// resolveGuruMessage maps "last" to the newest reply carrying suggestions.
func resolveGuruMessage(ref string) (models.ChatMessage, error) {
	if ref != "last" {
		return app.ResolveMessage(ref)
	}
	chat := app.State().Chat
	for i := len(chat) - 1; i >= 0; i-- {
		if len(chat[i].SuggestedRoutines) > 0 {
			return chat[i], nil
		}
	}
	return models.ChatMessage{}, tracker.ErrNoSuggestions
}

func printChatMessage(w io.Writer, th ui.Theme, m models.ChatMessage) {
	who := th.Key.Render("you")
	if m.Role == models.RoleModel {
		who = th.Title.Render(ui.IconBrain + " guru")
	}
	fmt.Fprintf(w, "%s %s\n", who, faint.Sprint(m.ID))
	fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(m.Text, "\n", "\n  "))
	if len(m.SuggestedRoutines) == 0 {
		return
	}
	for i, r := range m.SuggestedRoutines {
		fmt.Fprintf(w, "  %2d. %s %s\n", i+1, padRight(r.Title, 32), th.Category(r.Category))
	}
	if m.Accepted {
		faint.Fprintln(w, "  added")
	} else {
		faint.Fprintf(w, "  apex guru accept %s to add them\n", m.ID)
	}
}

var blueprintCmd = &cobra.Command{
	Use:     "blueprint",
	Aliases: []string{"bp"},
	Short:   "Browse and import titan blueprints (Pro)",
}

var blueprintListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List blueprints",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		th := currentTheme()
		for _, bp := range tracker.Blueprints {
			fmt.Fprintf(w, "%s %s %s\n", faint.Sprint(padRight(bp.ID, 8)), th.H2.Render(bp.Title), th.Muted.Render("by "+bp.Author))
			fmt.Fprintf(w, "  %s\n", bp.Description)
			for _, r := range bp.Routines {
				fmt.Fprintf(w, "  · %s\n", r.Title)
			}
		}
		if !app.State().IsPro {
			fmt.Fprintln(w)
			warn(w, "Blueprints are an Apex Pro feature. Run 'apex upgrade' to unlock.")
		}
		return nil
	},
}

var blueprintImportCmd = &cobra.Command{
	Use:   "import <id>",
	Short: "Import every routine in a blueprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		out, err := app.Dispatch(tracker.ImportBlueprint{BlueprintID: args[0]})
		if err != nil {
			return err
		}
		if printOutcome(w, out) {
			return nil
		}
		printAdded(w, out.Added)
		return nil
	},
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestCount, "count", "n", suggest.DefaultCount, "number of suggestions")
	suggestCmd.AddCommand(suggestShowCmd)
	suggestCmd.AddCommand(suggestPickCmd)
	suggestCmd.AddCommand(suggestUnpickCmd)
	suggestCmd.AddCommand(suggestAcceptCmd)
	suggestCmd.AddCommand(suggestClearCmd)
	rootCmd.AddCommand(suggestCmd)

	guruAcceptCmd.Flags().StringVar(&guruPicks, "pick", "", "comma separated suggestion numbers (default: as many as fit)")
	guruHistoryCmd.Flags().IntVarP(&guruLimit, "limit", "n", 0, "show only the last n messages")
	guruCmd.AddCommand(guruHistoryCmd)
	guruCmd.AddCommand(guruAcceptCmd)
	rootCmd.AddCommand(guruCmd)

	blueprintCmd.AddCommand(blueprintListCmd)
	blueprintCmd.AddCommand(blueprintImportCmd)
	rootCmd.AddCommand(blueprintCmd)
}
