package planner

import "diet-planner/internal/catalog"

// CountDiversity returns the number of distinct ingredient names across the
// given meals. Repeated meals never double-count an ingredient.
func CountDiversity(meals []catalog.MealTemplate) int {
	seen := make(map[string]struct{})
	for _, meal := range meals {
		for _, ing := range meal.Ingredients {
			seen[ing] = struct{}{}
		}
	}
	return len(seen)
}
