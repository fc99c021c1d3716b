package main

import (
	"context"
	"log"

	"employees/internal/config"
	"employees/internal/employee"
	"employees/internal/seed"
	"employees/internal/store"
)

// Seed is a one-shot job that loads synthetic records into Postgres.
func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	repo := employee.NewPostgresRepository(db.Client)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema setup failed: %v", err)
	}

	if err := seed.Load(ctx, repo, 50); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("seed complete; all accounts use password \"password123\"")
}
