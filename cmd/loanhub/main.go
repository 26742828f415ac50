package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/firstcreditunion/loan-status-hub-sub000/internal/app"
	"github.com/firstcreditunion/loan-status-hub-sub000/internal/config"
)

func main() {
	// .env is optional; real deployments inject environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
