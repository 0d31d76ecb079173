package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"draftkeep/cli"
	"draftkeep/config"
	"draftkeep/pkg/logger"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables from OS")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.LogLevel)
	defer logger.Log.Sync()

	if err := cli.Execute(cfg); err != nil {
		os.Exit(1)
	}
}
