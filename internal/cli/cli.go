// Package cli implements the recipes terminal client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/pageza/pantry-finder/backend/config"
	"github.com/pageza/pantry-finder/backend/internal/cache"
	"github.com/pageza/pantry-finder/backend/internal/export"
	"github.com/pageza/pantry-finder/backend/internal/service"
	"github.com/pageza/pantry-finder/backend/internal/types"
)

// Command builds the root command. Results are printed to out.
func Command(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "recipes",
		Usage:  "Find recipes for the ingredients you have",
		Writer: out,
		Description: `Searches the Spoonacular API for recipes that use the given ingredients and
prints each match with its ingredient lists, nutrition facts and instructions.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "ingredients",
				Aliases:  []string{"i"},
				Usage:    "Ingredients you have (comma-separated)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "exclude",
				Aliases: []string{"x"},
				Usage:   "Ingredients to exclude (comma-separated)",
			},
			&cli.StringFlag{
				Name:  "diet",
				Value: types.DietNone.Label(),
				Usage: fmt.Sprintf("Dietary preference (supported values: %s)", dietLabels()),
			},
			&cli.IntFlag{
				Name:    "number",
				Aliases: []string{"n"},
				Value:   types.DefaultResults,
				Usage:   fmt.Sprintf("Number of recipes to fetch (%d-%d)", types.MinResults, types.MaxResults),
			},
			&cli.StringFlag{
				Name:  "xlsx",
				Usage: "Also write the results to this spreadsheet file",
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Spoonacular API key",
				Sources: cli.EnvVars("SPOONACULAR_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "base-url",
				Value:   config.DefaultSpoonacularURL,
				Usage:   "Recipe provider base URL",
				Sources: cli.EnvVars("SPOONACULAR_BASE_URL"),
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: service.DefaultWorkers,
				Usage: "Concurrent detail requests",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 15 * time.Second,
				Usage: "Per-request timeout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query, err := buildQueryFromCmd(cmd)
			if err != nil {
				return fmt.Errorf("error parsing search parameters: %w", err)
			}

			client := service.NewRecipeClient(service.RecipeClientConfig{
				APIKey:   cmd.String("api-key"),
				BaseURL:  cmd.String("base-url"),
				Timeout:  cmd.Duration("timeout"),
				CacheTTL: time.Hour,
			}, cache.NewMemoryCache())

			finder := service.NewFinder(client, nil, int(cmd.Int("workers")))
			result := finder.Find(ctx, query)
			printResult(out, result)

			if path := cmd.String("xlsx"); path != "" && len(result.Recipes) > 0 {
				if err := export.SaveXLSX(path, result.Recipes); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %d recipes to %s\n", len(result.Recipes), path)
			}

			if len(result.Recipes) == 0 && hasErrors(result) {
				return errors.New("search failed")
			}
			return nil
		},
	}
}

func buildQueryFromCmd(cmd *cli.Command) (types.SearchQuery, error) {
	diet, err := types.ParseDiet(cmd.String("diet"))
	if err != nil {
		return types.SearchQuery{}, err
	}

	query := types.SearchQuery{
		Ingredients: types.ParseList(cmd.String("ingredients")),
		Excluded:    types.ParseList(cmd.String("exclude")),
		Diet:        diet,
		MaxResults:  int(cmd.Int("number")),
	}
	if err := query.Validate(); err != nil {
		return types.SearchQuery{}, err
	}
	return query, nil
}

func printResult(out io.Writer, result *service.SearchResult) {
	for _, n := range result.Notices {
		fmt.Fprintf(out, "[%s] %s\n", n.Level, n.Message)
	}

	for _, r := range result.Recipes {
		fmt.Fprintf(out, "\n== %s (id %d)\n", r.Recipe.Title, r.Recipe.ID)
		if r.Recipe.Image != "" {
			fmt.Fprintf(out, "   Image: %s\n", r.Recipe.Image)
		}
		fmt.Fprintf(out, "   Ingredients you have: %s\n", ingredientNames(r.Recipe.UsedIngredients))
		if len(r.Recipe.MissedIngredients) > 0 {
			fmt.Fprintf(out, "   Missing Ingredients: %s\n", ingredientNames(r.Recipe.MissedIngredients))
		}
		if text := service.FormatNutritionText(r.Nutrition); text != "" {
			fmt.Fprintf(out, "   Nutrition Facts: %s\n", text)
		}
		if len(r.Steps) > 0 {
			fmt.Fprintln(out, "   Instructions:")
			for _, step := range r.Steps {
				fmt.Fprintf(out, "     %s\n", step)
			}
		}
	}
}

func ingredientNames(ings []types.Ingredient) string {
	names := make([]string, 0, len(ings))
	for _, ing := range ings {
		names = append(names, ing.Name)
	}
	return strings.Join(names, ", ")
}

func hasErrors(result *service.SearchResult) bool {
	for _, n := range result.Notices {
		if n.Level == service.NoticeError {
			return true
		}
	}
	return false
}

func dietLabels() string {
	labels := make([]string, 0, len(types.Diets()))
	for _, d := range types.Diets() {
		labels = append(labels, d.Label())
	}
	return strings.Join(labels, ", ")
}
