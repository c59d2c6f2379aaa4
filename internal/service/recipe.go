package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pageza/pantry-finder/backend/internal/cache"
	"github.com/pageza/pantry-finder/backend/internal/types"
)

const (
	defaultBaseURL = "https://api.spoonacular.com"
	defaultTimeout = 15 * time.Second

	// maxResponseBytes bounds how much of a provider response is read.
	maxResponseBytes = 4 << 20

	endpointSearch       = "search"
	endpointInstructions = "instructions"
	endpointNutrition    = "nutrition"
)

// HTTPStatusError is returned when the provider answers with a non-2xx status.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Path       string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("%s for %s", e.Status, e.Path)
	if detail := e.detail(); detail != "" {
		msg += ": " + detail
	}
	return msg
}

// detail extracts the provider's "message" field, falling back to a body prefix.
func (e *HTTPStatusError) detail() string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200]
	}
	return body
}

// RecipeClientConfig holds the provider settings; the API key is passed in explicitly.
type RecipeClientConfig struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	CacheTTL          time.Duration
}

// RecipeClient talks to the Spoonacular recipe API
type RecipeClient struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	cache    ResponseCache
	cacheTTL time.Duration
	limiter  *rate.Limiter
}

// NewRecipeClient creates a new RecipeClient. A nil cache disables caching.
func NewRecipeClient(cfg RecipeClientConfig, responseCache ResponseCache) *RecipeClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if responseCache == nil {
		responseCache = cache.NopCache{}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := int(math.Ceil(cfg.RequestsPerSecond))
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &RecipeClient{
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		cache:    responseCache,
		cacheTTL: cfg.CacheTTL,
		limiter:  limiter,
	}
}

// Search finds recipes using the given ingredients. On any failure it returns
// an empty slice together with the error; excluded ingredients are filtered out
// of successful results.
func (c *RecipeClient) Search(ctx context.Context, query types.SearchQuery) ([]types.Recipe, error) {
	if err := query.Validate(); err != nil {
		return []types.Recipe{}, err
	}

	params := url.Values{}
	params.Set("ingredients", strings.Join(query.Ingredients, ","))
	params.Set("number", strconv.Itoa(query.MaxResults))
	if query.Diet != types.DietNone {
		params.Set("diet", string(query.Diet))
	}

	var recipes []types.Recipe
	if err := c.get(ctx, endpointSearch, "/recipes/findByIngredients", params, &recipes); err != nil {
		log.Printf("[RecipeClient] Search for %v failed: %v", query.Ingredients, err)
		return []types.Recipe{}, err
	}
	if recipes == nil {
		recipes = []types.Recipe{}
	}

	if len(query.Excluded) > 0 {
		before := len(recipes)
		recipes = FilterExcluded(recipes, query.Excluded)
		recipesExcluded.Add(float64(before - len(recipes)))
	}

	return recipes, nil
}

// GetInstructions returns the steps of the recipe's first instruction set.
func (c *RecipeClient) GetInstructions(ctx context.Context, recipeID int) (types.Instructions, error) {
	var sets []types.InstructionSet
	path := fmt.Sprintf("/recipes/%d/analyzedInstructions", recipeID)
	if err := c.get(ctx, endpointInstructions, path, url.Values{}, &sets); err != nil {
		log.Printf("[RecipeClient] Instructions for recipe %d failed: %v", recipeID, err)
		return types.Instructions{}, err
	}

	if len(sets) == 0 || len(sets[0].Steps) == 0 {
		return types.Instructions{}, nil
	}
	return types.Instructions(sets[0].Steps), nil
}

// GetNutrition returns the nutrition widget summary of a recipe.
func (c *RecipeClient) GetNutrition(ctx context.Context, recipeID int) (types.Nutrition, error) {
	var nutrition types.Nutrition
	path := fmt.Sprintf("/recipes/%d/nutritionWidget.json", recipeID)
	if err := c.get(ctx, endpointNutrition, path, url.Values{}, &nutrition); err != nil {
		log.Printf("[RecipeClient] Nutrition for recipe %d failed: %v", recipeID, err)
		return types.Nutrition{}, err
	}
	return nutrition, nil
}

// get performs one cached, throttled GET and decodes the JSON body into out.
func (c *RecipeClient) get(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	key := cacheKey(path, params)

	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		log.Printf("[RecipeClient] Cache lookup failed for %s: %v", path, err)
	} else if ok {
		if err := json.Unmarshal(data, out); err == nil {
			cacheLookups.WithLabelValues(endpoint, "hit").Inc()
			return nil
		}
		log.Printf("[RecipeClient] Ignoring unreadable cache entry for %s", path)
	}
	cacheLookups.WithLabelValues(endpoint, "miss").Inc()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		providerRequests.WithLabelValues(endpoint, "error").Inc()
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			// keep the API key out of logs and user-facing messages
			urlErr.URL = c.baseURL + path
		}
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	providerDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	providerRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Path:       path,
			Body:       string(body),
		}
	}
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
		log.Printf("[RecipeClient] Failed to cache response for %s: %v", path, err)
	}

	return nil
}

// cacheKey identifies a request by path and parameters, never by API key.
func cacheKey(path string, params url.Values) string {
	key := strings.TrimPrefix(path, "/")
	if encoded := params.Encode(); encoded != "" {
		key += "?" + encoded
	}
	return key
}
