package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/pantry-finder/backend/config"
	"github.com/pageza/pantry-finder/backend/internal/api"
	"github.com/pageza/pantry-finder/backend/internal/middleware"
	"github.com/pageza/pantry-finder/backend/internal/router"
	"github.com/pageza/pantry-finder/backend/internal/service"
)

// Dependencies are the collaborators the server is built from. History and
// Redis are optional.
type Dependencies struct {
	Client  service.IRecipeClient
	History service.IHistoryService
	Redis   *redis.Client
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, deps Dependencies) (*Server, error) {
	gin.SetMode(cfg.Environment.GinMode())

	finder := service.NewFinder(deps.Client, deps.History, cfg.FetchWorkers)

	var limiter *middleware.RateLimiter
	var pageLimiter api.SearchLimiter
	if deps.Redis != nil && cfg.RateLimitPerHour > 0 {
		limiter = middleware.NewSearchRateLimiter(deps.Redis, cfg.RateLimitPerHour)
		pageLimiter = limiter
	} else {
		log.Printf("[Server] Search rate limiting disabled")
	}

	r, err := router.SetupRouter(cfg,
		api.NewPageHandler(finder, deps.History, pageLimiter),
		api.NewRecipeHandler(deps.Client, finder, deps.History),
		limiter,
	)
	if err != nil {
		return nil, err
	}

	return &Server{
		router: r,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler exposes the routed engine.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("[Server] Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
