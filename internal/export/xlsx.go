// Package export writes search results to spreadsheet files.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pageza/pantry-finder/backend/internal/service"
	"github.com/pageza/pantry-finder/backend/internal/types"
)

const (
	RecipesSheet      = "Recipes"
	InstructionsSheet = "Instructions"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	recipesHeader = []interface{}{
		"ID", "Title", "Used Ingredients", "Missed Ingredients", "Likes",
		"Calories (kcal)", "Protein (g)", "Carbs (g)", "Fat (g)", "Image",
	}
	instructionsHeader = []interface{}{"Recipe ID", "Title", "Step", "Instruction"}
)

// WriteXLSX writes one row per recipe to the Recipes sheet and one row per
// step to the Instructions sheet, in result order.
func WriteXLSX(w io.Writer, results []service.RecipeResult) error {
	f, err := newWorkbook(results)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the same workbook as WriteXLSX to path.
func SaveXLSX(path string, results []service.RecipeResult) error {
	f, err := newWorkbook(results)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func newWorkbook(results []service.RecipeResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", RecipesSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(InstructionsSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeRecipes(f, results); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write %s sheet: %w", RecipesSheet, err)
	}
	if err := writeInstructions(f, results); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write %s sheet: %w", InstructionsSheet, err)
	}
	return f, nil
}

func writeRecipes(f *excelize.File, results []service.RecipeResult) error {
	sw, err := f.NewStreamWriter(RecipesSheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", recipesHeader); err != nil {
		return err
	}

	for i, r := range results {
		row := []interface{}{
			r.Recipe.ID,
			r.Recipe.Title,
			joinNames(r.Recipe.UsedIngredients),
			joinNames(r.Recipe.MissedIngredients),
			r.Recipe.Likes,
			nutrient(r.Nutrition.Calories),
			nutrient(r.Nutrition.Protein),
			nutrient(r.Nutrition.Carbs),
			nutrient(r.Nutrition.Fat),
			r.Recipe.Image,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func writeInstructions(f *excelize.File, results []service.RecipeResult) error {
	sw, err := f.NewStreamWriter(InstructionsSheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", instructionsHeader); err != nil {
		return err
	}

	rowNum := 2
	for _, r := range results {
		for _, step := range r.Instructions {
			cell, _ := excelize.CoordinatesToCellName(1, rowNum)
			if err := sw.SetRow(cell, []interface{}{r.Recipe.ID, r.Recipe.Title, step.Number, step.Step}); err != nil {
				return err
			}
			rowNum++
		}
	}
	return sw.Flush()
}

func joinNames(ings []types.Ingredient) string {
	names := make([]string, 0, len(ings))
	for _, ing := range ings {
		names = append(names, ing.Name)
	}
	return strings.Join(names, ", ")
}

// nutrient leaves missing values blank rather than writing N/A into a numeric column.
func nutrient(v types.NutrientValue) string {
	if !v.Set {
		return ""
	}
	return v.Value
}
