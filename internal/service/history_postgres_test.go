package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantry-finder/backend/internal/model"
	"github.com/pageza/pantry-finder/backend/internal/testdb"
	"github.com/pageza/pantry-finder/backend/internal/types"
)

func TestHistoryService_Postgres(t *testing.T) {
	tdb := testdb.SetupPostgres(t)
	svc := NewHistoryService(tdb.DB)
	ctx := context.Background()

	query := types.SearchQuery{
		Ingredients: []string{"chicken", "rice"},
		Excluded:    []string{},
		Diet:        types.DietVegan,
		MaxResults:  3,
	}
	require.NoError(t, svc.Record(ctx, query, 3))

	recent, err := svc.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, model.JSONBStringArray{"chicken", "rice"}, recent[0].Ingredients)
	assert.Equal(t, model.JSONBStringArray{}, recent[0].Excluded)
	assert.Equal(t, "vegan", recent[0].Diet)
}
