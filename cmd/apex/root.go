// ABOUTME: Root Cobra command for apex CLI.
// ABOUTME: Builds config, logger, storage, and the tracker App in PersistentPreRunE.
package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harperreed/apex/internal/config"
	"github.com/harperreed/apex/internal/models"
	"github.com/harperreed/apex/internal/storage"
	"github.com/harperreed/apex/internal/suggest"
	"github.com/harperreed/apex/internal/tracker"
	"github.com/harperreed/apex/internal/ui"
)

// skipSetup marks commands that must not open the store.
const skipSetup = "apex/skip-setup"

var (
	flagBackend  string
	flagDataDir  string
	flagLogLevel string

	cfg    *config.Config
	store  storage.Store
	snap   *storage.Snapshot
	app    *tracker.App
	logger *log.Logger

	// clock is swapped in tests.
	clock = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "apex",
	Short: "Gamified habit, task, and journal tracker",
	Long: `Apex turns your week into a scoreboard.

WHAT IT TRACKS:

  Routines   weekly habits to build (check off days) or quit (days clean)
  Tasks      one-off todos for a day
  Journal    one entry per day with a mood and your habit notes
  XP         +10 per habit check, +5 per task, +50 per focus session

QUICK START:

  $ apex routine add "Morning Run" --category health   # Add a habit
  $ apex toggle a1b2 mon                               # Check it off Monday
  $ apex task add "Ship the release"                   # Add a task for today
  $ apex                                               # See your dashboard

AI COACH:

  $ apex suggest "run a marathon"     # Get habit suggestions, then 'apex suggest accept'
  $ apex guru "how do I stop snoozing?"

  Set GEMINI_API_KEY (or gemini_api_key in ~/.config/apex/config.json).
  Free plan: 10 habits and 5 Guru messages per day. 'apex upgrade' lifts both.

STORAGE:

  Data lives in ~/.local/share/apex/apex.db by default. Choose another backend
  with "backend" in the config file or --backend: sqlite, badger, charm, memory.
  The charm backend syncs across devices through Charm Cloud.

MCP INTEGRATION:

  Run 'apex mcp' to expose your tracker to MCP-compatible assistants:

  {
    "mcpServers": {
      "apex": { "command": "apex", "args": ["mcp"] }
    }
  }`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Annotations[skipSetup] != "" {
			return nil
		}
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
	SilenceUsage: true,
	RunE:         runDashboard,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: sqlite, badger, charm, memory")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.local/share/apex)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// Execute runs the root command. The store is closed even when the
// command fails and PersistentPostRunE is skipped.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := teardown(); err == nil {
		err = cerr
	}
	return err
}

func setup(cmd *cobra.Command) error {
	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flagBackend != "" {
		c.Backend = flagBackend
	}
	if flagDataDir != "" {
		c.DataDir = flagDataDir
	}
	if flagLogLevel != "" {
		c.LogLevel = flagLogLevel
	}
	cfg = c

	logger, err = newLogger(cmd.ErrOrStderr(), c.GetLogLevel())
	if err != nil {
		return err
	}

	store, err = c.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", c.GetBackend(), err)
	}
	snap = storage.NewSnapshot(store, logger)

	st, err := snap.Load(clock())
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	adapter := suggest.NewAdapter(newGenerator(cmd.Context(), c), logger)
	app = tracker.NewApp(st, snap,
		tracker.WithClock(clock),
		tracker.WithLogger(logger),
		tracker.WithAdapter(adapter),
	)
	return nil
}

func teardown() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store, snap, app = nil, nil, nil
	return err
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "apex",
	}), nil
}

// newGenerator returns Gemini when a key is configured and the offline
// generator otherwise.
func newGenerator(ctx context.Context, c *config.Config) suggest.Generator {
	key := c.GetAPIKey()
	if key == "" {
		return suggest.Static{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	g, err := suggest.NewGemini(ctx, key, c.Model, c.GetLanguage())
	if err != nil {
		logger.Warn("gemini unavailable, using offline coach", "err", err)
		return suggest.Static{}
	}
	return g
}

func currentTheme() ui.Theme {
	return ui.NewTheme(string(app.State().Theme))
}

func runDashboard(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	th := currentTheme()
	st := app.State()
	now := app.Now()

	if !st.HasEntered {
		fmt.Fprintln(w, th.Title.Render("APEX"))
		fmt.Fprintln(w, th.Muted.Render("Build the habits. Earn the XP. Become the titan."))
		fmt.Fprintln(w)
		if _, err := app.Dispatch(tracker.Enter{}); err != nil {
			return err
		}
	}

	level := app.Level()
	stats := app.Stats()
	fmt.Fprintln(w, th.Heading(ui.IconBolt, fmt.Sprintf("Level %d · %s", level.Level, level.Title)))
	fmt.Fprintf(w, "%s %s\n", th.Bar(level.Progress, 30), th.Muted.Render(fmt.Sprintf("%d/%d XP", level.XP, level.NextThreshold)))
	fmt.Fprintf(w, "%s  %s\n",
		th.LabelValue("Week", fmt.Sprintf("%d%%", stats.Percentage)),
		th.LabelValue("On track", fmt.Sprintf("%d/%d", stats.OnTrack, stats.PositiveCount)))
	fmt.Fprintln(w, th.Muted.Render("“"+tracker.DailyQuote(now)+"”"))
	fmt.Fprintln(w)

	printRoutines(w, th, st.Routines, now)
	fmt.Fprintln(w)
	printTasks(w, th, tasksFor(st.Tasks, models.DateKey(now)), models.DateKey(now))
	return nil
}

// parseIndexes parses comma separated 1-based numbers into 0-based indexes.
func parseIndexes(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var n int
		if _, err := fmt.Sscanf(part, "%d", &n); err != nil || n < 1 {
			return nil, fmt.Errorf("invalid number: %q", part)
		}
		out = append(out, n-1)
	}
	return out, nil
}
