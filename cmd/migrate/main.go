package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/pageza/pantry-finder/backend/config"
	"github.com/pageza/pantry-finder/backend/internal/database"
	"github.com/pageza/pantry-finder/backend/internal/service"
)

func main() {
	pruneAfter := flag.Duration("prune-older-than", 0, "Delete search history older than this age (e.g. 720h); 0 keeps everything")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// database.New applies the schema before returning.
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database handle: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()
	log.Println("Migrations applied")

	if *pruneAfter <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().Add(-*pruneAfter)
	removed, err := service.NewHistoryService(db).Prune(ctx, cutoff)
	if err != nil {
		log.Fatalf("Failed to prune search history: %v", err)
	}
	log.Printf("Removed %d searches recorded before %s", removed, cutoff.Format(time.RFC3339))
}
