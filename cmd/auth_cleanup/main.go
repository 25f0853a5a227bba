// One-shot expired refresh token cleanup, meant for cron in deployments
// where the in-process sweeper is disabled.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"habitflow/internal/config"
	"habitflow/internal/database"
	"habitflow/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connect: %v", err)
	}

	tokenRepo := repository.NewRefreshTokenRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := tokenRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Fatalf("cleanup: %v", err)
	}
	log.Printf("cleanup done deleted=%d", deleted)
}
