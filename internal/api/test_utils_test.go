package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantry-finder/backend/internal/middleware"
	"github.com/pageza/pantry-finder/backend/internal/mocks"
	"github.com/pageza/pantry-finder/backend/internal/service"
	"github.com/pageza/pantry-finder/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestRouter wires the page and JSON handlers over mocked collaborators.
func setupTestRouter(t *testing.T, client *mocks.MockRecipeClient, history service.IHistoryService, limiter SearchLimiter) *gin.Engine {
	t.Helper()

	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.SetHTMLTemplate(tmpl)

	finder := service.NewFinder(client, history, 2)
	router.GET("/", NewPageHandler(finder, history, limiter).Index)
	NewRecipeHandler(client, finder, history).RegisterRoutes(router.Group("/api/v1"), nil)
	return router
}

// PerformRequest sends a GET request through the router.
func PerformRequest(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func sampleRecipes() []types.Recipe {
	return []types.Recipe{
		{
			ID:                1,
			Title:             "Chicken Fried Rice",
			Image:             "https://img.test/1.jpg",
			UsedIngredients:   []types.Ingredient{{Name: "chicken"}, {Name: "rice"}},
			MissedIngredients: []types.Ingredient{{Name: "egg"}},
		},
		{
			ID:              5,
			Title:           "Chicken Rice Soup",
			Image:           "https://img.test/5.jpg",
			UsedIngredients: []types.Ingredient{{Name: "chicken"}, {Name: "rice"}},
		},
	}
}

func chickenAndRice() types.SearchQuery {
	return types.SearchQuery{
		Ingredients: []string{"chicken", "rice"},
		Excluded:    []string{},
		MaxResults:  types.DefaultResults,
	}
}
