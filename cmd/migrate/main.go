package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/pageza/macrotrack/backend/config"
	"github.com/pageza/macrotrack/backend/internal/database"
)

func main() {
	// Parse command line flags
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "", "Migrations directory (defaults to MIGRATIONS_DIR or migrations)")
	flag.Parse()

	db, migrationsDir, err := connect(*dir)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if *rollback {
		name, err := database.Rollback(db, migrationsDir)
		if errors.Is(err, database.ErrNoMigrations) {
			log.Fatal("No migrations to rollback")
		}
		if err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
		fmt.Printf("Successfully rolled back migration: %s\n", name)
		return
	}

	applied, err := database.ApplyMigrations(db, migrationsDir)
	for _, name := range applied {
		fmt.Printf("Successfully applied migration: %s\n", name)
	}
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	fmt.Println("All migrations applied successfully.")
}

// connect prefers DATABASE_URL and falls back to the application config
func connect(dir string) (*sql.DB, string, error) {
	if dir == "" {
		dir = os.Getenv("MIGRATIONS_DIR")
	}
	if dir == "" {
		dir = "migrations"
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, "", err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, "", err
		}
		return db, dir, nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, "", err
	}
	if cfg.DBDriver == config.DriverSQLite {
		return nil, "", errors.New("sqlite databases are migrated by the API at startup")
	}
	db, err := database.New(cfg)
	if err != nil {
		return nil, "", err
	}
	return db.DB, dir, nil
}
