package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Search limits accepted by the provider's findByIngredients endpoint.
const (
	MinResults     = 1
	MaxResults     = 10
	DefaultResults = 5
)

var (
	ErrNoIngredients = errors.New("at least one ingredient is required")
	ErrMaxResults    = fmt.Errorf("number of recipes must be between %d and %d", MinResults, MaxResults)
	ErrUnknownDiet   = errors.New("unknown dietary preference")
)

// Diet is a dietary restriction understood by the recipe provider.
type Diet string

const (
	DietNone       Diet = ""
	DietGlutenFree Diet = "gluten free"
	DietVegetarian Diet = "vegetarian"
	DietVegan      Diet = "vegan"
	DietDairyFree  Diet = "dairy free"
)

// Diets returns the selectable options in display order, "none" first.
func Diets() []Diet {
	return []Diet{DietNone, DietGlutenFree, DietVegetarian, DietVegan, DietDairyFree}
}

// Label is the text shown for the diet in a dropdown.
func (d Diet) Label() string {
	if d == DietNone {
		return "none"
	}
	return string(d)
}

// ParseDiet maps user input onto a Diet. Empty input and "none" mean no restriction.
func ParseDiet(s string) (Diet, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return DietNone, nil
	}
	for _, d := range Diets() {
		if string(d) == s {
			return d, nil
		}
	}
	return DietNone, fmt.Errorf("%w: %q", ErrUnknownDiet, s)
}

// SearchQuery is built per search from the sidebar form (or CLI flags).
type SearchQuery struct {
	Ingredients []string `json:"ingredients"`
	Excluded    []string `json:"excluded"`
	Diet        Diet     `json:"diet"`
	MaxResults  int      `json:"max_results"`
}

// Validate checks the query before any provider call is made.
func (q SearchQuery) Validate() error {
	if len(q.Ingredients) == 0 {
		return ErrNoIngredients
	}
	if q.MaxResults < MinResults || q.MaxResults > MaxResults {
		return ErrMaxResults
	}
	return nil
}

// ParseList splits comma-separated user input, trimming blanks and dropping empty entries.
func ParseList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Ingredient is a used or missed ingredient entry of a search result.
type Ingredient struct {
	ID       int     `json:"id,omitempty"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Original string  `json:"original,omitempty"`
}

// Recipe represents one findByIngredients result
type Recipe struct {
	ID                    int          `json:"id"`
	Title                 string       `json:"title"`
	Image                 string       `json:"image"`
	UsedIngredientCount   int          `json:"usedIngredientCount"`
	MissedIngredientCount int          `json:"missedIngredientCount"`
	Likes                 int          `json:"likes"`
	UsedIngredients       []Ingredient `json:"usedIngredients"`
	MissedIngredients     []Ingredient `json:"missedIngredients"`
}

// IngredientNames returns the names of used and missed ingredients, used first.
func (r Recipe) IngredientNames() []string {
	names := make([]string, 0, len(r.UsedIngredients)+len(r.MissedIngredients))
	for _, ing := range r.UsedIngredients {
		names = append(names, ing.Name)
	}
	for _, ing := range r.MissedIngredients {
		names = append(names, ing.Name)
	}
	return names
}

// Step is a single numbered cooking step.
type Step struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

// InstructionSet is one group of steps as returned by analyzedInstructions.
type InstructionSet struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// Instructions are the steps of a recipe's first instruction set.
type Instructions []Step

// NutrientValue holds a nutrition widget field, which the provider sends
// either as a number or as a string carrying a unit suffix ("12g").
type NutrientValue struct {
	Value string
	Set   bool
}

// NewNutrientValue returns a present value formatted from a number.
func NewNutrientValue(v float64) NutrientValue {
	return NutrientValue{Value: strconv.FormatFloat(v, 'f', -1, 64), Set: true}
}

func (n *NutrientValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NutrientValue{}
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*n = NewNutrientValue(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("invalid nutrient value %s", string(data))
	}
	str = strings.TrimSpace(str)
	if str == "" {
		*n = NutrientValue{}
		return nil
	}
	*n = NutrientValue{Value: stripUnit(str), Set: true}
	return nil
}

// stripUnit drops a trailing unit ("12g" to "12") only when a number remains,
// so values such as "N/A" pass through unchanged.
func stripUnit(s string) string {
	trimmed := strings.TrimSpace(strings.TrimRightFunc(s, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}))
	if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
		return s
	}
	return trimmed
}

func (n NutrientValue) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// String renders the value, or "N/A" when the provider did not send it.
func (n NutrientValue) String() string {
	if !n.Set {
		return "N/A"
	}
	return n.Value
}

// Nutrition is the subset of the nutrition widget the page displays.
type Nutrition struct {
	Calories NutrientValue `json:"calories"`
	Protein  NutrientValue `json:"protein"`
	Carbs    NutrientValue `json:"carbs"`
	Fat      NutrientValue `json:"fat"`

	// Received is set when the provider sent a non-empty widget, even one
	// carrying none of the four fields.
	Received bool `json:"-"`
}

func (n *Nutrition) UnmarshalJSON(data []byte) error {
	type plain Nutrition
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	*n = Nutrition(p)
	n.Received = len(keys) > 0
	return nil
}

// IsEmpty reports whether there is nothing to show: no widget was received
// and none of the four fields is present.
func (n Nutrition) IsEmpty() bool {
	return !n.Received && !n.Calories.Set && !n.Protein.Set && !n.Carbs.Set && !n.Fat.Set
}
