package main

import (
	"fmt"
	"os"
	"strconv"

	"badminton-api/config"
	"badminton-api/migrations"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	config.SetupLogger(cfg)
	config.ConnectDatabase(cfg)

	migrator, err := migrations.NewMigrator(config.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare migrator")
	}
	for _, migration := range migrations.GetAllMigrations() {
		migrator.AddMigration(migration)
	}

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch command := os.Args[1]; command {
	case "migrate":
		if err := migrator.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
	case "rollback":
		steps := 1
		if len(os.Args) > 2 {
			if s, err := strconv.Atoi(os.Args[2]); err == nil {
				steps = s
			}
		}
		if err := migrator.Rollback(steps); err != nil {
			log.Fatal().Err(err).Msg("Rollback failed")
		}
	case "status":
		showStatus(migrator)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/migrate migrate          - Run pending migrations")
	fmt.Println("  go run ./cmd/migrate rollback [steps] - Rollback migrations (default: 1)")
	fmt.Println("  go run ./cmd/migrate status           - Show migration status")
}

func showStatus(migrator *migrations.Migrator) {
	records, err := migrator.Status()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read migration status")
	}
	if len(records) == 0 {
		fmt.Println("No migrations have been run yet.")
		return
	}

	fmt.Println("Migration Status:")
	fmt.Println("Batch | Name")
	fmt.Println("------|-----")
	for _, record := range records {
		fmt.Printf("%-5d | %s\n", record.Batch, record.Name)
	}
}
