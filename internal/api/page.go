package api

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-finder/backend/internal/model"
	"github.com/pageza/pantry-finder/backend/internal/service"
	"github.com/pageza/pantry-finder/backend/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

const recentSearches = 5

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templateFS, "templates/*.html")
}

// SearchLimiter is satisfied by middleware.RateLimiter.
type SearchLimiter interface {
	IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error)
	Remaining(ctx context.Context, key string) (int, time.Time, error)
}

// PageHandler renders the recipe finder page.
type PageHandler struct {
	finder  *service.Finder
	history service.IHistoryService
	limiter SearchLimiter
}

// NewPageHandler creates a PageHandler. history and limiter may be nil.
func NewPageHandler(finder *service.Finder, history service.IHistoryService, limiter SearchLimiter) *PageHandler {
	return &PageHandler{finder: finder, history: history, limiter: limiter}
}

type pageData struct {
	Form         searchForm
	SelectedDiet types.Diet
	Diets        []types.Diet
	MinResults   int
	MaxResults   int
	Searched     bool
	Result       *service.SearchResult
	Recent       []model.SearchRecord
	// SearchesLeft is nil when searches are not rate limited.
	SearchesLeft *int
}

// Index shows the form, and runs the search when the form was submitted.
func (h *PageHandler) Index(c *gin.Context) {
	form := readSearchForm(c)
	if form.Number == "" {
		form.Number = fmt.Sprint(types.DefaultResults)
	}

	data := pageData{
		Form:       form,
		Diets:      types.Diets(),
		MinResults: types.MinResults,
		MaxResults: types.MaxResults,
	}
	if diet, err := types.ParseDiet(form.Diet); err == nil {
		data.SelectedDiet = diet
	}

	if c.Query("find") != "" {
		data.Searched = true
		data.Result = h.search(c, form)
	}

	if h.limiter != nil {
		left, _, err := h.limiter.Remaining(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Printf("[PageHandler] Failed to read remaining searches: %v", err)
		} else {
			data.SearchesLeft = &left
		}
	}

	if h.history != nil {
		recent, err := h.history.Recent(c.Request.Context(), recentSearches)
		if err != nil {
			log.Printf("[PageHandler] Failed to load recent searches: %v", err)
		}
		data.Recent = recent
	}

	c.HTML(http.StatusOK, "index.html", data)
}

func (h *PageHandler) search(c *gin.Context, form searchForm) *service.SearchResult {
	query, err := form.Query()
	if err != nil {
		return &service.SearchResult{Notices: []service.Notice{{
			Level:   service.NoticeError,
			Message: "Invalid search: " + err.Error(),
		}}}
	}

	if h.limiter != nil && query.Validate() == nil {
		allowed, _, reset, err := h.limiter.IsAllowed(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Printf("[PageHandler] Rate limit check failed: %v", err)
		} else if !allowed {
			return &service.SearchResult{Query: query, Notices: []service.Notice{{
				Level:   service.NoticeWarning,
				Message: fmt.Sprintf("Too many searches. Please try again after %s.", reset.Format("15:04 MST")),
			}}}
		}
	}

	return h.finder.Find(c.Request.Context(), query)
}
