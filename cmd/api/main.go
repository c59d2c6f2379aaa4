package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/pantry-finder/backend/config"
	"github.com/pageza/pantry-finder/backend/internal/cache"
	"github.com/pageza/pantry-finder/backend/internal/database"
	"github.com/pageza/pantry-finder/backend/internal/server"
	"github.com/pageza/pantry-finder/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Starting in %s mode", cfg.Environment)

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database handle: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis backs the response cache and the search rate limit. Without it the
	// cache falls back to process memory and searches are not limited.
	var redisClient *redis.Client
	var responseCache service.ResponseCache
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Redis unavailable, using in-memory cache: %v", err)
			redisClient = nil
		}
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		responseCache = cache.NewRedisCache(redisClient)
	} else {
		responseCache = cache.NewMemoryCache()
	}

	client := service.NewRecipeClient(service.RecipeClientConfig{
		APIKey:            cfg.SpoonacularAPIKey,
		BaseURL:           cfg.SpoonacularBaseURL,
		Timeout:           cfg.HTTPTimeout,
		RequestsPerSecond: cfg.ProviderRPS,
		CacheTTL:          cfg.CacheTTL,
	}, responseCache)

	srv, err := server.New(cfg, server.Dependencies{
		Client:  client,
		History: service.NewHistoryService(db),
		Redis:   redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
