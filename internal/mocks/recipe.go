package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantry-finder/backend/internal/types"
)

// MockRecipeClient is a mock implementation of the recipe provider client
type MockRecipeClient struct {
	mock.Mock
}

// Search mocks the Search method
func (m *MockRecipeClient) Search(ctx context.Context, query types.SearchQuery) ([]types.Recipe, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return []types.Recipe{}, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}

// GetInstructions mocks the GetInstructions method
func (m *MockRecipeClient) GetInstructions(ctx context.Context, recipeID int) (types.Instructions, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return types.Instructions{}, args.Error(1)
	}
	return args.Get(0).(types.Instructions), args.Error(1)
}

// GetNutrition mocks the GetNutrition method
func (m *MockRecipeClient) GetNutrition(ctx context.Context, recipeID int) (types.Nutrition, error) {
	args := m.Called(ctx, recipeID)
	return args.Get(0).(types.Nutrition), args.Error(1)
}
