package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/pantry-finder/backend/internal/model"
	"github.com/pageza/pantry-finder/backend/internal/types"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 50
)

// HistoryService keeps the log of recent searches
type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService creates a new HistoryService instance
func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Record stores a completed search.
func (s *HistoryService) Record(ctx context.Context, query types.SearchQuery, resultCount int) error {
	rec := model.SearchRecord{
		Ingredients: model.JSONBStringArray(query.Ingredients),
		Excluded:    model.JSONBStringArray(query.Excluded),
		Diet:        string(query.Diet),
		MaxResults:  query.MaxResults,
		ResultCount: resultCount,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to save search record: %w", err)
	}
	return nil
}

// Recent returns the newest searches first. limit is clamped to 1..MaxHistoryLimit.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]model.SearchRecord, error) {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	records := []model.SearchRecord{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list search records: %w", err)
	}
	return records, nil
}

// Prune deletes searches recorded before cutoff and returns how many were removed.
func (s *HistoryService) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.SearchRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune search records: %w", res.Error)
	}
	return res.RowsAffected, nil
}
