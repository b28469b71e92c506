package main

import (
	"context"
	"log"

	"github.com/api-sage/mortgage-quote-service/src/internal/adapter/repository/postgres"
	"github.com/api-sage/mortgage-quote-service/src/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Database.DSN == "" {
		log.Fatal("DATABASE_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()

	if err := postgres.RunMigrations(ctx, cfg.Database.DSN); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	log.Println("migrations completed successfully")
}
