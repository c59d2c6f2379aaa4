package service

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/pageza/pantry-finder/backend/internal/types"
)

// FormatInstructions renders steps as "Step N: description" in their original order.
func FormatInstructions(steps types.Instructions) []string {
	formatted := make([]string, 0, len(steps))
	for _, s := range steps {
		formatted = append(formatted, fmt.Sprintf("Step %d: %s", s.Number, s.Step))
	}
	return formatted
}

// FormatNutrition renders the four nutrition fields as paragraphs, or nothing
// when the nutrition data is empty. Missing fields show as N/A.
func FormatNutrition(n types.Nutrition) template.HTML {
	if n.IsEmpty() {
		return ""
	}

	var b strings.Builder
	for _, line := range nutritionLines(n) {
		b.WriteString("<p>")
		b.WriteString(template.HTMLEscapeString(line))
		b.WriteString("</p>")
	}
	return template.HTML(b.String())
}

// FormatNutritionText is the single-line form used by the terminal client.
func FormatNutritionText(n types.Nutrition) string {
	if n.IsEmpty() {
		return ""
	}
	return strings.Join(nutritionLines(n), " | ")
}

func nutritionLines(n types.Nutrition) []string {
	return []string{
		fmt.Sprintf("Calories: %s kcal", n.Calories),
		fmt.Sprintf("Protein: %s g", n.Protein),
		fmt.Sprintf("Carbs: %s g", n.Carbs),
		fmt.Sprintf("Fat: %s g", n.Fat),
	}
}
