package main

import (
	"fmt"
	"os"
	"time"

	"badminton-api/config"
	"badminton-api/fixtures"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const demoRounds = 5

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
	fixtureManager := fixtures.NewFixtures(config.DB, time.Now().UnixNano())

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch command := os.Args[1]; command {
	case "generate":
		session, err := fixtureManager.GenerateTestData(demoRounds)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to generate fixtures")
		}
		fmt.Printf("Demo session ready, share code %s\n", session.ShareCode)
	case "clear":
		if err := fixtureManager.ClearAllData(); err != nil {
			log.Fatal().Err(err).Msg("Failed to clear fixtures")
		}
		fmt.Println("All session data cleared")
	case "regenerate":
		if err := fixtureManager.ClearAllData(); err != nil {
			log.Fatal().Err(err).Msg("Failed to clear fixtures")
		}
		session, err := fixtureManager.GenerateTestData(demoRounds)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to generate fixtures")
		}
		fmt.Printf("Demo session regenerated, share code %s\n", session.ShareCode)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/fixtures generate    - Create a demo session with players and finished games")
	fmt.Println("  go run ./cmd/fixtures clear       - Delete all sessions")
	fmt.Println("  go run ./cmd/fixtures regenerate  - Clear and generate again")
}
