package service

import (
	"context"
	"time"

	"github.com/pageza/pantry-finder/backend/internal/model"
	"github.com/pageza/pantry-finder/backend/internal/types"
)

// IRecipeClient defines the recipe provider operations
type IRecipeClient interface {
	Search(ctx context.Context, query types.SearchQuery) ([]types.Recipe, error)
	GetInstructions(ctx context.Context, recipeID int) (types.Instructions, error)
	GetNutrition(ctx context.Context, recipeID int) (types.Nutrition, error)
}

// ResponseCache stores raw provider response bodies
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// IHistoryService defines the recent-searches log operations
type IHistoryService interface {
	Record(ctx context.Context, query types.SearchQuery, resultCount int) error
	Recent(ctx context.Context, limit int) ([]model.SearchRecord, error)
}
