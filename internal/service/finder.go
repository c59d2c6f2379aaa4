package service

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/pageza/pantry-finder/backend/internal/types"
)

const DefaultWorkers = 4

// NoticeLevel selects the banner style of a Notice.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a message shown to the user above the results.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// ErrorNotice turns a provider error into the message shown to the user.
func ErrorNotice(err error) Notice {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return Notice{Level: NoticeError, Message: "HTTP error occurred: " + err.Error()}
	}
	return Notice{Level: NoticeError, Message: "Error occurred: " + err.Error()}
}

// RecipeResult is a search hit together with its display-ready details.
type RecipeResult struct {
	Recipe        types.Recipe       `json:"recipe"`
	Instructions  types.Instructions `json:"instructions"`
	Steps         []string           `json:"steps"`
	Nutrition     types.Nutrition    `json:"nutrition"`
	NutritionHTML template.HTML      `json:"-"`
}

// SearchResult is everything one search renders.
type SearchResult struct {
	Query   types.SearchQuery `json:"query"`
	Recipes []RecipeResult    `json:"recipes"`
	Notices []Notice          `json:"notices"`
}

func (r *SearchResult) notify(level NoticeLevel, msg string) {
	r.Notices = append(r.Notices, Notice{Level: level, Message: msg})
}

// Finder runs a search and fetches per-recipe details on a bounded worker pool.
type Finder struct {
	client  IRecipeClient
	history IHistoryService
	workers int
}

// NewFinder creates a Finder. history may be nil.
func NewFinder(client IRecipeClient, history IHistoryService, workers int) *Finder {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Finder{client: client, history: history, workers: workers}
}

// Find never fails: problems are reported as notices and degrade to empty results.
func (f *Finder) Find(ctx context.Context, query types.SearchQuery) *SearchResult {
	result := &SearchResult{Query: query, Recipes: []RecipeResult{}, Notices: []Notice{}}

	if err := query.Validate(); err != nil {
		if errors.Is(err, types.ErrNoIngredients) {
			result.notify(NoticeError, "Please enter some ingredients to search for recipes.")
		} else {
			result.notify(NoticeError, fmt.Sprintf("Invalid search: %v", err))
		}
		return result
	}

	recipes, err := f.client.Search(ctx, query)
	if err != nil {
		result.Notices = append(result.Notices, ErrorNotice(err))
	} else {
		f.record(ctx, query, len(recipes))
	}

	if len(recipes) == 0 {
		result.notify(NoticeWarning, "No recipes found based on your search.")
		return result
	}

	result.notify(NoticeSuccess, fmt.Sprintf("Found %d recipes based on your search!", len(recipes)))
	result.Recipes = f.fetchDetails(ctx, recipes, result)
	return result
}

// fetchDetails loads nutrition and instructions for every recipe. Results and
// notices are kept in search order regardless of completion order.
func (f *Finder) fetchDetails(ctx context.Context, recipes []types.Recipe, result *SearchResult) []RecipeResult {
	details := make([]RecipeResult, len(recipes))
	notices := make([][]Notice, len(recipes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i, recipe := range recipes {
		g.Go(func() error {
			details[i], notices[i] = f.details(gctx, recipe)
			return nil
		})
	}
	_ = g.Wait()

	for _, n := range notices {
		result.Notices = append(result.Notices, n...)
	}
	return details
}

func (f *Finder) details(ctx context.Context, recipe types.Recipe) (RecipeResult, []Notice) {
	var notices []Notice

	nutrition, err := f.client.GetNutrition(ctx, recipe.ID)
	if err != nil {
		notices = append(notices, ErrorNotice(err))
	}

	instructions, err := f.client.GetInstructions(ctx, recipe.ID)
	if err != nil {
		notices = append(notices, ErrorNotice(err))
	}

	return RecipeResult{
		Recipe:        recipe,
		Instructions:  instructions,
		Steps:         FormatInstructions(instructions),
		Nutrition:     nutrition,
		NutritionHTML: FormatNutrition(nutrition),
	}, notices
}

func (f *Finder) record(ctx context.Context, query types.SearchQuery, count int) {
	if f.history == nil {
		return
	}
	if err := f.history.Record(ctx, query, count); err != nil {
		log.Printf("[Finder] Failed to record search history: %v", err)
	}
}
