package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/pantry-finder/backend/internal/types"
)

func recipe(id int, used []string, missed []string) types.Recipe {
	r := types.Recipe{ID: id}
	for _, n := range used {
		r.UsedIngredients = append(r.UsedIngredients, types.Ingredient{Name: n})
	}
	for _, n := range missed {
		r.MissedIngredients = append(r.MissedIngredients, types.Ingredient{Name: n})
	}
	return r
}

func ids(recipes []types.Recipe) []int {
	out := make([]int, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterExcluded(t *testing.T) {
	recipes := []types.Recipe{
		recipe(1, []string{"chicken", "rice"}, []string{"egg"}),
		recipe(2, []string{"chicken"}, []string{"peanut"}),
		recipe(3, []string{"peanut", "rice"}, nil),
		recipe(4, []string{"Rice"}, []string{"Soy Sauce"}),
	}

	tests := []struct {
		name     string
		excluded []string
		want     []int
	}{
		{"no exclusions keeps everything", nil, []int{1, 2, 3, 4}},
		{"blank terms are ignored", []string{" ", ""}, []int{1, 2, 3, 4}},
		{"missed ingredient excludes", []string{"egg"}, []int{2, 3, 4}},
		{"used or missed ingredient excludes", []string{"peanut"}, []int{1, 4}},
		{"matching is case-insensitive", []string{"SOY SAUCE"}, []int{1, 2, 3}},
		{"terms are trimmed", []string{"  egg "}, []int{2, 3, 4}},
		{"partial names do not match", []string{"nut", "soy"}, []int{1, 2, 3, 4}},
		{"any term excludes", []string{"egg", "rice"}, []int{2}},
		{"no overlap keeps everything", []string{"shrimp"}, []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterExcluded(recipes, tt.excluded)))
		})
	}
}

func TestFilterExcluded_Idempotent(t *testing.T) {
	recipes := []types.Recipe{
		recipe(1, []string{"chicken"}, []string{"peanut"}),
		recipe(2, []string{"chicken"}, []string{"lime"}),
		recipe(3, []string{"tofu"}, nil),
	}
	excluded := []string{"peanut", "tofu"}

	once := FilterExcluded(recipes, excluded)
	twice := FilterExcluded(once, excluded)
	assert.Equal(t, once, twice)
	assert.Equal(t, []int{2}, ids(twice))
}

func TestFilterExcluded_Empty(t *testing.T) {
	assert.Empty(t, FilterExcluded([]types.Recipe{}, []string{"peanut"}))
}
