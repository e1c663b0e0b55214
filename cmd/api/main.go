package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/macrotrack/backend/config"
	"github.com/pageza/macrotrack/backend/internal/database"
	"github.com/pageza/macrotrack/backend/internal/server"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	deps := server.Deps{DB: db}

	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		deps.Redis = client
	} else {
		log.Println("Redis not configured, using in-memory summary cache without rate limiting")
	}

	if cfg.S3Enabled() {
		store, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to configure export storage: %v", err)
		}
		deps.Store = store
	}

	srv, err := server.New(cfg, deps)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	log.Println("Starting server...")
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
