package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/pantry-finder/backend/config"
	"github.com/pageza/pantry-finder/backend/internal/api"
	"github.com/pageza/pantry-finder/backend/internal/middleware"
)

// SetupRouter configures the application routes. limiter may be nil, in
// which case searches are not rate limited.
func SetupRouter(
	cfg *config.Config,
	pageHandler *api.PageHandler,
	recipeHandler *api.RecipeHandler,
	limiter *middleware.RateLimiter,
) (*gin.Engine, error) {
	router := gin.Default()

	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	tmpl, err := api.LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// Health and metrics endpoints
	router.GET("/health", api.HealthCheck)
	router.GET("/api/health", api.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", pageHandler.Index)

	var searchLimit gin.HandlerFunc
	if limiter != nil {
		searchLimit = limiter.RateLimitMiddleware()
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	recipeHandler.RegisterRoutes(v1, searchLimit)

	return router, nil
}
