package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-finder/backend/internal/types"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Pantry Finder is running",
		"version": "v1.0.0",
	})
}

// searchForm is the raw user input of a search, kept so the page can
// redisplay exactly what was typed.
type searchForm struct {
	Ingredients string
	Exclude     string
	Diet        string
	Number      string
}

func readSearchForm(c *gin.Context) searchForm {
	return searchForm{
		Ingredients: c.Query("ingredients"),
		Exclude:     c.Query("exclude"),
		Diet:        c.Query("diet"),
		Number:      c.Query("number"),
	}
}

// Query converts the form into a SearchQuery. Missing ingredients are not an
// error here; the finder reports them to the user.
func (f searchForm) Query() (types.SearchQuery, error) {
	diet, err := types.ParseDiet(f.Diet)
	if err != nil {
		return types.SearchQuery{}, err
	}

	number := types.DefaultResults
	if s := strings.TrimSpace(f.Number); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return types.SearchQuery{}, fmt.Errorf("number must be an integer: %q", s)
		}
		if n < types.MinResults || n > types.MaxResults {
			return types.SearchQuery{}, types.ErrMaxResults
		}
		number = n
	}

	return types.SearchQuery{
		Ingredients: types.ParseList(f.Ingredients),
		Excluded:    types.ParseList(f.Exclude),
		Diet:        diet,
		MaxResults:  number,
	}, nil
}

func parseRecipeID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return 0, false
	}
	return id, true
}
