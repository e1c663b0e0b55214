package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pageza/macrotrack/backend/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.
The server acts as the --user account and communicates via stdin/stdout.

CLIENT CONFIGURATION:

  {
    "mcpServers": {
      "macrotrack": {
        "command": "macrotrack",
        "args": ["--user", "ada@example.com", "mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  get_daily_summary   Totals and goal progress for a day
  list_meals          Meals and foods for a day or range
  log_food            Log a food into a meal slot
  get_goals           Current daily goals
  update_goals        Change one or more goals

AVAILABLE RESOURCES:

  macrotrack://today  Today's summary as JSON`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := mcp.NewServer(currentUser.ID, services.Meals, services.Goals, services.Summary)
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
