package planner

import (
	"strings"
	"testing"

	"diet-planner/internal/catalog"
	"diet-planner/internal/region"
)

func seasonFixture() region.Season {
	return region.Season{Key: "summer", Name: "夏季", Veggies: []string{"黄瓜", "番茄", "苦瓜"}}
}

func placeholderMeal() catalog.MealTemplate {
	return catalog.MealTemplate{
		Name:        "清蒸鱼套餐",
		Description: "清蒸鱼配{staple}和清炒{vegetable}",
		Calories:    520,
		Ingredients: []string{"鲈鱼", "时蔬"},
		Recipe:      []string{"鱼上锅蒸8分钟", "清炒{vegetable}"},
		IngredientDetails: []catalog.IngredientDetail{
			{Name: "鲈鱼", Amount: 300, Unit: "g", Category: "肉蛋"},
			{Name: "时蔬", Amount: 200, Unit: "g", Category: "蔬菜", Seasonal: true},
		},
		PrepTime:   25,
		Complexity: catalog.ComplexityMedium,
	}
}

func TestLocalize(t *testing.T) {
	season := seasonFixture()

	t.Run("SubstitutesAllFields", func(t *testing.T) {
		got := Localize(placeholderMeal(), 0, season, "杂粮饭/糙米饭")

		if got.Description != "清蒸鱼配杂粮饭/糙米饭和清炒黄瓜" {
			t.Errorf("Unexpected description: %s", got.Description)
		}
		if got.Recipe[1] != "清炒黄瓜" {
			t.Errorf("Unexpected recipe step: %s", got.Recipe[1])
		}
		if got.IngredientDetails[1].Name != "黄瓜" {
			t.Errorf("Seasonal detail not substituted: %s", got.IngredientDetails[1].Name)
		}
		if got.IngredientDetails[1].Amount != 200 || got.IngredientDetails[1].Category != "蔬菜" {
			t.Error("Substitution must keep amount and category")
		}
	})

	t.Run("RotatesByDayIndex", func(t *testing.T) {
		seen := map[int]string{}
		for day := 0; day < 4; day++ {
			got := Localize(placeholderMeal(), day, season, "杂粮饭/糙米饭")
			seen[day] = got.IngredientDetails[1].Name
		}
		if seen[0] != "黄瓜" || seen[1] != "番茄" || seen[2] != "苦瓜" {
			t.Errorf("Unexpected rotation: %v", seen)
		}
		if seen[3] != "黄瓜" {
			t.Errorf("Rotation must wrap around, day 3 got %s", seen[3])
		}
	})

	t.Run("DoesNotMutateTemplate", func(t *testing.T) {
		tmpl := placeholderMeal()
		_ = Localize(tmpl, 2, season, "杂粮馒头/全麦面")

		if !strings.Contains(tmpl.Description, catalog.VegetablePlaceholder) {
			t.Error("Template description was mutated")
		}
		if tmpl.IngredientDetails[1].Name != "时蔬" {
			t.Error("Template ingredient detail was mutated")
		}
	})

	t.Run("NoPlaceholderNoChange", func(t *testing.T) {
		plain := catalog.MealTemplate{
			Name:        "煮玉米",
			Description: "水煮甜玉米",
			Recipe:      []string{"玉米煮10分钟"},
		}
		got := Localize(plain, 3, season, "杂粮饭/糙米饭")
		if got.Description != plain.Description || got.Recipe[0] != plain.Recipe[0] {
			t.Error("Meal without placeholders must pass through unchanged")
		}
	})
}
