package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantry-finder/backend/internal/model"
	"github.com/pageza/pantry-finder/backend/internal/types"
)

// MockHistoryService is a mock implementation of the search history service
type MockHistoryService struct {
	mock.Mock
}

// Record mocks the Record method
func (m *MockHistoryService) Record(ctx context.Context, query types.SearchQuery, resultCount int) error {
	args := m.Called(ctx, query, resultCount)
	return args.Error(0)
}

// Recent mocks the Recent method
func (m *MockHistoryService) Recent(ctx context.Context, limit int) ([]model.SearchRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SearchRecord), args.Error(1)
}
