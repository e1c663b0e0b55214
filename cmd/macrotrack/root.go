package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/pageza/macrotrack/backend/config"
	"github.com/pageza/macrotrack/backend/internal/database"
	"github.com/pageza/macrotrack/backend/internal/logging"
	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/service"
)

var (
	userEmail string

	services    *service.Services
	currentUser *models.User
	redisClient *redis.Client
	now         = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "macrotrack",
	Short: "Daily calorie and macro tracker",
	Long: `Macrotrack logs the foods you eat into daily meal slots and keeps
running totals of calories, protein, carbs and fat against your goals.

It shares the database of the macrotrack API, so an account must exist
first (register through the API or run the seed command).

QUICK START:

  $ macrotrack --user ada@example.com summary
  $ macrotrack log lunch "Chicken breast" --protein 31 --fat 3.6
  $ macrotrack meals --date 2024-03-01
  $ macrotrack goals set --calories 1800
  $ macrotrack export csv -o log.csv

The user can also be set with MACROTRACK_USER.

MCP INTEGRATION:

  Run 'macrotrack mcp' to serve the same log to MCP clients over stdio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsStore(cmd) {
			return nil
		}
		return connect(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if redisClient != nil {
			return redisClient.Close()
		}
		return nil
	},
}

// needsStore is false for cobra's own help and completion commands
func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// connect opens the configured stores and resolves the acting user
func connect(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	email := userEmail
	if email == "" {
		email = os.Getenv("MACROTRACK_USER")
	}
	if email == "" {
		return errors.New("no user selected: pass --user or set MACROTRACK_USER")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	opts := service.Options{
		JWTSecret:    cfg.JWTSecret,
		ExportURLTTL: cfg.ExportURLTTL,
		Logger:       logging.New("macrotrack"),
	}
	// Share the API's summary cache so both sides see the same view
	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(ctx, cfg)
		if err != nil {
			return err
		}
		redisClient = client
		opts.Cache = service.NewRedisSummaryCache(client, 24*time.Hour)
	}
	services = service.New(db, opts)

	currentUser, err = services.Auth.GetUserByEmail(ctx, email)
	if errors.Is(err, service.ErrUserNotFound) {
		return fmt.Errorf("no account for %s", email)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userEmail, "user", "u", "", "email of the account to act as")
}
