package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/pantry-finder/backend/internal/types"
)

func TestFormatNutrition(t *testing.T) {
	assert.Equal(t, "", string(FormatNutrition(types.Nutrition{})))

	got := FormatNutrition(types.Nutrition{Calories: types.NewNutrientValue(100)})
	assert.Equal(t,
		"<p>Calories: 100 kcal</p><p>Protein: N/A g</p><p>Carbs: N/A g</p><p>Fat: N/A g</p>",
		string(got))
}

func TestFormatNutrition_ReceivedWidgetWithoutFields(t *testing.T) {
	got := FormatNutrition(types.Nutrition{Received: true})
	assert.Equal(t,
		"<p>Calories: N/A kcal</p><p>Protein: N/A g</p><p>Carbs: N/A g</p><p>Fat: N/A g</p>",
		string(got))
}

func TestFormatNutrition_EscapesValues(t *testing.T) {
	n := types.Nutrition{Fat: types.NutrientValue{Value: "<b>9</b>", Set: true}}
	assert.Contains(t, string(FormatNutrition(n)), "<p>Fat: &lt;b&gt;9&lt;/b&gt; g</p>")
}

func TestFormatNutritionText(t *testing.T) {
	assert.Equal(t, "", FormatNutritionText(types.Nutrition{}))
	n := types.Nutrition{
		Calories: types.NewNutrientValue(584),
		Protein:  types.NewNutrientValue(35),
		Carbs:    types.NewNutrientValue(83),
		Fat:      types.NewNutrientValue(12.5),
	}
	assert.Equal(t, "Calories: 584 kcal | Protein: 35 g | Carbs: 83 g | Fat: 12.5 g", FormatNutritionText(n))
}

func TestFormatInstructions(t *testing.T) {
	assert.Empty(t, FormatInstructions(types.Instructions{}))
	assert.Empty(t, FormatInstructions(nil))

	steps := types.Instructions{
		{Number: 1, Step: "Preheat the oven."},
		{Number: 2, Step: "Roast the vegetables."},
	}
	assert.Equal(t, []string{
		"Step 1: Preheat the oven.",
		"Step 2: Roast the vegetables.",
	}, FormatInstructions(steps))
}
