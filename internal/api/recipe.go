package api

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-finder/backend/internal/export"
	"github.com/pageza/pantry-finder/backend/internal/service"
)

// RecipeHandler serves the JSON API over the recipe provider.
type RecipeHandler struct {
	client  service.IRecipeClient
	finder  *service.Finder
	history service.IHistoryService
}

func NewRecipeHandler(client service.IRecipeClient, finder *service.Finder, history service.IHistoryService) *RecipeHandler {
	return &RecipeHandler{
		client:  client,
		finder:  finder,
		history: history,
	}
}

// RegisterRoutes mounts the handlers. limit, when non-nil, guards the
// routes that spend provider quota on a full search.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, limit gin.HandlerFunc) {
	guarded := []gin.HandlerFunc{}
	if limit != nil {
		guarded = append(guarded, limit)
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("/search", append(guarded, h.SearchRecipes)...)
		recipes.GET("/export.xlsx", append(guarded, h.ExportRecipes)...)
		recipes.GET("/:id/instructions", h.GetInstructions)
		recipes.GET("/:id/nutrition", h.GetNutrition)
	}
	router.GET("/history", h.ListHistory)
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	query, err := readSearchForm(c).Query()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.finder.Find(c.Request.Context(), query))
}

func (h *RecipeHandler) ExportRecipes(c *gin.Context) {
	query, err := readSearchForm(c).Query()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := query.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.finder.Find(c.Request.Context(), query)
	if len(result.Recipes) == 0 {
		for _, n := range result.Notices {
			if n.Level == service.NoticeError {
				c.JSON(http.StatusBadGateway, gin.H{"error": n.Message})
				return
			}
		}
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, result.Recipes); err != nil {
		c.Status(http.StatusInternalServerError)
		_ = c.Error(err)
		return
	}

	filename := "recipes-" + time.Now().UTC().Format("20060102-150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("X-Recipe-Count", strconv.Itoa(len(result.Recipes)))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *RecipeHandler) GetInstructions(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	notices := []service.Notice{}
	instructions, err := h.client.GetInstructions(c.Request.Context(), id)
	if err != nil {
		notices = append(notices, service.ErrorNotice(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe_id":    id,
		"instructions": instructions,
		"steps":        service.FormatInstructions(instructions),
		"notices":      notices,
	})
}

func (h *RecipeHandler) GetNutrition(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	notices := []service.Notice{}
	nutrition, err := h.client.GetNutrition(c.Request.Context(), id)
	if err != nil {
		notices = append(notices, service.ErrorNotice(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe_id": id,
		"nutrition": nutrition,
		"html":      service.FormatNutrition(nutrition),
		"text":      service.FormatNutritionText(nutrition),
		"notices":   notices,
	})
}

func (h *RecipeHandler) ListHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusOK, gin.H{"searches": []any{}})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	records, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"searches": records})
}
