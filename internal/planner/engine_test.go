package planner

import (
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"diet-planner/internal/catalog"
	"diet-planner/internal/profile"
)

var seafoodKeywords = []string{"虾", "鱼", "蟹", "贝", "鱿鱼"}

func summerClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)
	}
}

func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	return NewEngine(cat, WithRand(rand.New(rand.NewSource(seed))), WithNow(summerClock()))
}

func guangzhouProfile() profile.UserProfile {
	return profile.UserProfile{
		Age:           24,
		Gender:        profile.GenderMale,
		Height:        175,
		Weight:        70,
		ActivityLevel: profile.ActivityLight,
		Goal:          profile.GoalMaintain,
		City:          "广州",
		Allergies:     []string{"海鲜"},
		Dislikes:      "",
		CookingTime:   profile.CookingLimited,
	}
}

func TestGenerateWeeklyPlan_EndToEnd(t *testing.T) {
	engine := newTestEngine(t, 1)
	plan, err := engine.GenerateWeeklyPlan(guangzhouProfile())
	if err != nil {
		t.Fatalf("GenerateWeeklyPlan failed: %v", err)
	}

	t.Run("Targets", func(t *testing.T) {
		if plan.DailyCalorieTarget != 2308 {
			t.Errorf("Expected daily target 2308, got %d", plan.DailyCalorieTarget)
		}
		if plan.BMI != 22.9 {
			t.Errorf("Expected BMI 22.9, got %v", plan.BMI)
		}
	})

	t.Run("SevenLabeledDays", func(t *testing.T) {
		if len(plan.DailyPlans) != 7 {
			t.Fatalf("Expected 7 days, got %d", len(plan.DailyPlans))
		}
		for i, day := range plan.DailyPlans {
			if day.Day != dayLabels[i] {
				t.Errorf("Day %d labeled %q, want %q", i, day.Day, dayLabels[i])
			}
			if len(day.Breakfast) != 1 || len(day.Lunch) != 1 || len(day.Dinner) != 1 {
				t.Errorf("Day %d missing a required slot", i)
			}
		}
	})

	t.Run("NoSeafoodAnywhere", func(t *testing.T) {
		for _, day := range plan.DailyPlans {
			for _, meal := range day.Meals() {
				for _, kw := range seafoodKeywords {
					if strings.Contains(meal.Name, kw) {
						t.Errorf("Meal name %q contains excluded keyword %q", meal.Name, kw)
					}
					for _, ing := range meal.Ingredients {
						if strings.Contains(ing, kw) {
							t.Errorf("Meal %q ingredient %q contains excluded keyword %q", meal.Name, ing, kw)
						}
					}
				}
			}
		}
	})

	t.Run("SnacksAboveThreshold", func(t *testing.T) {
		for i, day := range plan.DailyPlans {
			if len(day.Snacks) == 0 {
				t.Errorf("Day %d has no snack despite target %d", i, plan.DailyCalorieTarget)
			}
		}
	})

	t.Run("LimitedModeRepetition", func(t *testing.T) {
		distinct := func(pick func(DailyPlan) string) int {
			names := map[string]struct{}{}
			for _, day := range plan.DailyPlans {
				names[pick(day)] = struct{}{}
			}
			return len(names)
		}
		if n := distinct(func(d DailyPlan) string { return d.Breakfast[0].Name }); n != 3 {
			t.Errorf("Expected exactly 3 distinct breakfasts in limited mode, got %d", n)
		}
		if n := distinct(func(d DailyPlan) string { return d.Lunch[0].Name }); n != 4 {
			t.Errorf("Expected exactly 4 distinct lunches in limited mode, got %d", n)
		}
		if n := distinct(func(d DailyPlan) string { return d.Dinner[0].Name }); n != 4 {
			t.Errorf("Expected exactly 4 distinct dinners in limited mode, got %d", n)
		}
	})

	t.Run("PlaceholdersResolved", func(t *testing.T) {
		check := func(meal catalog.MealTemplate) {
			if strings.Contains(meal.Description, catalog.VegetablePlaceholder) ||
				strings.Contains(meal.Description, catalog.StaplePlaceholder) {
				t.Errorf("Meal %q description still carries a placeholder: %s", meal.Name, meal.Description)
			}
			for _, step := range meal.Recipe {
				if strings.Contains(step, catalog.VegetablePlaceholder) {
					t.Errorf("Meal %q recipe step still carries a placeholder: %s", meal.Name, step)
				}
			}
			for _, ing := range meal.IngredientDetails {
				if ing.Name == "时蔬" || ing.Name == "混合时蔬" {
					t.Errorf("Meal %q kept generic seasonal ingredient %q", meal.Name, ing.Name)
				}
			}
		}
		for _, day := range plan.DailyPlans {
			for _, meal := range day.Meals() {
				check(meal)
			}
		}
		for _, pool := range [][]catalog.MealTemplate{plan.MealPools.Breakfast, plan.MealPools.Lunch, plan.MealPools.Dinner, plan.MealPools.Snacks} {
			for _, meal := range pool {
				check(meal)
			}
		}
	})

	t.Run("TotalCalories", func(t *testing.T) {
		for i, day := range plan.DailyPlans {
			sum := 0
			for _, meal := range day.Meals() {
				sum += meal.Calories
			}
			if day.TotalCalories != sum {
				t.Errorf("Day %d total %d does not match meal sum %d", i, day.TotalCalories, sum)
			}
		}
	})

	t.Run("SeasonalAdvice", func(t *testing.T) {
		if plan.SeasonalAdvice.Season != "夏季" {
			t.Errorf("Expected 夏季, got %s", plan.SeasonalAdvice.Season)
		}
		if !strings.Contains(plan.SeasonalAdvice.Tips, "针对广东地区(广州)") {
			t.Errorf("Expected province advice for 广州, got: %s", plan.SeasonalAdvice.Tips)
		}
	})

	t.Run("ShoppingListGrouped", func(t *testing.T) {
		if len(plan.ShoppingList) == 0 {
			t.Fatal("Expected a non-empty shopping list")
		}
		lastRank := -1
		for _, item := range plan.ShoppingList {
			r := categoryRank(item.Category)
			if r < lastRank {
				t.Fatalf("Shopping list out of category order at %q", item.Name)
			}
			lastRank = r
		}
	})

	t.Run("WeeklyDiversityIsUnion", func(t *testing.T) {
		var all []catalog.MealTemplate
		for _, day := range plan.DailyPlans {
			all = append(all, day.Meals()...)
		}
		if plan.WeeklyDiversityCount != CountDiversity(all) {
			t.Errorf("Weekly diversity %d does not match union %d", plan.WeeklyDiversityCount, CountDiversity(all))
		}
	})

	t.Run("FixedText", func(t *testing.T) {
		if plan.Disclaimer == "" {
			t.Error("Missing disclaimer")
		}
		if len(plan.Sources) != 1 || plan.Sources[0].Title != "中国居民膳食指南 (2022)" {
			t.Errorf("Unexpected sources: %+v", plan.Sources)
		}
		if plan.NutritionSummary.Protein != "15%-20%" || plan.NutritionSummary.Carbs != "50%-65%" {
			t.Errorf("Unexpected nutrition summary: %+v", plan.NutritionSummary)
		}
	})
}

func TestGenerateWeeklyPlan_Deterministic(t *testing.T) {
	p := guangzhouProfile()
	p.CookingTime = profile.CookingAbundant

	planA, err := newTestEngine(t, 42).GenerateWeeklyPlan(p)
	if err != nil {
		t.Fatalf("GenerateWeeklyPlan failed: %v", err)
	}
	planB, err := newTestEngine(t, 42).GenerateWeeklyPlan(p)
	if err != nil {
		t.Fatalf("GenerateWeeklyPlan failed: %v", err)
	}

	a, _ := json.Marshal(planA)
	b, _ := json.Marshal(planB)
	if string(a) != string(b) {
		t.Error("Same seed must produce identical plans")
	}
}

func TestGenerateWeeklyPlan_NoSnacksBelowThreshold(t *testing.T) {
	p := profile.UserProfile{
		Age: 30, Gender: profile.GenderFemale, Height: 160, Weight: 50,
		ActivityLevel: profile.ActivitySedentary, Goal: profile.GoalLose,
		CookingTime: profile.CookingLimited,
	}

	plan, err := newTestEngine(t, 1).GenerateWeeklyPlan(p)
	if err != nil {
		t.Fatalf("GenerateWeeklyPlan failed: %v", err)
	}
	if plan.DailyCalorieTarget > snackCalorieThreshold {
		t.Fatalf("Test profile target %d unexpectedly above threshold", plan.DailyCalorieTarget)
	}
	for i, day := range plan.DailyPlans {
		if len(day.Snacks) != 0 {
			t.Errorf("Day %d has snacks below the calorie threshold", i)
		}
	}
}

func TestGenerateWeeklyPlan_NoEligibleMeals(t *testing.T) {
	raw := `{
		"breakfast": [{"name": "虾仁粥", "description": "", "calories": 300, "ingredients": ["虾仁", "大米"], "prepTime": 20, "complexity": "easy"}],
		"lunch": [{"name": "青椒肉丝", "description": "", "calories": 500, "ingredients": ["猪肉", "青椒"], "prepTime": 20, "complexity": "easy"}],
		"dinner": [{"name": "清炒时蔬", "description": "", "calories": 300, "ingredients": ["青菜"], "prepTime": 10, "complexity": "easy"}],
		"snacks": []
	}`
	cat, err := catalog.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}

	p := guangzhouProfile()
	engine := NewEngine(cat, WithNow(summerClock()))
	_, err = engine.GenerateWeeklyPlan(p)
	if err == nil {
		t.Fatal("Expected an error when filtering empties a slot")
	}

	var noMeals *NoEligibleMealsError
	if !errors.As(err, &noMeals) {
		t.Fatalf("Expected NoEligibleMealsError, got %T: %v", err, err)
	}
	if noMeals.Slot != catalog.SlotBreakfast {
		t.Errorf("Expected breakfast slot, got %s", noMeals.Slot)
	}
}

func TestGenerateWeeklyPlan_InvalidProfile(t *testing.T) {
	p := guangzhouProfile()
	p.Age = 5

	if _, err := newTestEngine(t, 1).GenerateWeeklyPlan(p); err == nil {
		t.Fatal("Expected a validation error for age 5")
	}
}
