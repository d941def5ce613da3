// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/apex/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and applies the same plan limits
as the CLI.

CONFIGURATION:

  {
    "mcpServers": {
      "apex": {
        "command": "apex",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_routines    List habits with this week's check-offs
  add_routine      Add a habit
  toggle_day       Check or uncheck a habit for a weekday
  reset_week       Clear a habit's week
  save_note        Attach a note to a habit
  add_task         Add a task
  list_tasks       List tasks for a date
  toggle_task      Complete or reopen a task
  get_stats        Weekly stats, category balance, badges
  get_level        XP and level progress
  list_blueprints  Titan blueprints

AVAILABLE RESOURCES:

  apex://dashboard       Level, stats, habits, and today's tasks
  apex://journal/today   Today's journal entry`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(app)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		logger.Info("mcp server listening on stdio", "backend", cfg.GetBackend())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
