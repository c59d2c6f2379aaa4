package service

import (
	"strings"

	"github.com/pageza/pantry-finder/backend/internal/types"
)

// FilterExcluded drops every recipe whose used or missed ingredients contain
// an excluded term. Matching is case-insensitive on the full ingredient name,
// so "nut" does not exclude "peanut".
func FilterExcluded(recipes []types.Recipe, excluded []string) []types.Recipe {
	terms := make(map[string]struct{}, len(excluded))
	for _, term := range excluded {
		if term = normalizeName(term); term != "" {
			terms[term] = struct{}{}
		}
	}
	if len(terms) == 0 {
		return recipes
	}

	filtered := make([]types.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		if !containsAny(recipe, terms) {
			filtered = append(filtered, recipe)
		}
	}
	return filtered
}

func containsAny(recipe types.Recipe, terms map[string]struct{}) bool {
	for _, name := range recipe.IngredientNames() {
		if _, ok := terms[normalizeName(name)]; ok {
			return true
		}
	}
	return false
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
