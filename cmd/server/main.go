package main

import (
	"log"

	"central360/cmd"
	"central360/internal/core/config"
)

func main() {
	// .env is optional; the process environment always wins
	if err := config.LoadEnvFile(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute()
}
