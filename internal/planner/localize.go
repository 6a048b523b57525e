package planner

import (
	"strings"

	"diet-planner/internal/catalog"
	"diet-planner/internal/region"
)

// Localize resolves a template's placeholders into a concrete meal for one
// day. The seasonal vegetable rotates with the day index so repeated
// templates surface different vegetables across the week. The input template
// is never modified; the catalog stays shared and read-only.
func Localize(tmpl catalog.MealTemplate, dayIndex int, season region.Season, stapleDesc string) catalog.MealTemplate {
	out := tmpl.Clone()

	if len(season.Veggies) > 0 && hasVegetableSlot(&out) {
		veggie := season.Veggies[dayIndex%len(season.Veggies)]
		out.Description = strings.ReplaceAll(out.Description, catalog.VegetablePlaceholder, veggie)
		for i, step := range out.Recipe {
			out.Recipe[i] = strings.ReplaceAll(step, catalog.VegetablePlaceholder, veggie)
		}
		for i := range out.IngredientDetails {
			if out.IngredientDetails[i].Seasonal {
				out.IngredientDetails[i].Name = veggie
			}
		}
	}

	out.Description = strings.ReplaceAll(out.Description, catalog.StaplePlaceholder, stapleDesc)
	return out
}

func hasVegetableSlot(m *catalog.MealTemplate) bool {
	if strings.Contains(m.Description, catalog.VegetablePlaceholder) {
		return true
	}
	for _, step := range m.Recipe {
		if strings.Contains(step, catalog.VegetablePlaceholder) {
			return true
		}
	}
	for _, ing := range m.IngredientDetails {
		if ing.Seasonal {
			return true
		}
	}
	return false
}
