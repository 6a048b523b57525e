package planner

import (
	"diet-planner/internal/catalog"
	"diet-planner/internal/nutrition"
	"diet-planner/internal/profile"
)

// DailyPlan holds one day's selected meals. Breakfast, lunch and dinner each
// carry exactly one localized meal; snacks carry zero to two.
type DailyPlan struct {
	Day            string                 `json:"day"`
	Breakfast      []catalog.MealTemplate `json:"breakfast"`
	Lunch          []catalog.MealTemplate `json:"lunch"`
	Dinner         []catalog.MealTemplate `json:"dinner"`
	Snacks         []catalog.MealTemplate `json:"snacks"`
	TotalCalories  int                    `json:"totalCalories"`
	Tips           string                 `json:"tips"`
	DiversityCount int                    `json:"diversityCount"`
}

// Meals returns every meal of the day in slot order.
func (d *DailyPlan) Meals() []catalog.MealTemplate {
	out := make([]catalog.MealTemplate, 0, 3+len(d.Snacks))
	out = append(out, d.Breakfast...)
	out = append(out, d.Lunch...)
	out = append(out, d.Dinner...)
	out = append(out, d.Snacks...)
	return out
}

// ShoppingItem is one aggregated line of the weekly shopping list.
// Uniqueness key is (name, unit): the same ingredient in different units is
// kept as separate lines.
type ShoppingItem struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
}

// MealPools retains the filtered, localized candidate set per slot so a
// single day can be re-rolled without re-running the whole pipeline.
type MealPools struct {
	Breakfast []catalog.MealTemplate `json:"breakfast"`
	Lunch     []catalog.MealTemplate `json:"lunch"`
	Dinner    []catalog.MealTemplate `json:"dinner"`
	Snacks    []catalog.MealTemplate `json:"snacks"`
}

// NutritionSummary gives the recommended macro energy-ratio ranges.
type NutritionSummary struct {
	Protein string `json:"protein"`
	Fat     string `json:"fat"`
	Carbs   string `json:"carbs"`
}

// SeasonalAdvice carries the season context the plan was generated under.
type SeasonalAdvice struct {
	Season       string   `json:"season"`
	LocalVeggies []string `json:"localVeggies"`
	Tips         string   `json:"tips"`
}

// Source is a reference the dietary advice is based on.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// WeeklyPlan is the aggregate result of plan generation.
type WeeklyPlan struct {
	UserProfile          profile.UserProfile `json:"userProfile"`
	BMI                  float64             `json:"bmi"`
	BMIStatus            nutrition.BMIStatus `json:"bmiStatus"`
	DailyCalorieTarget   int                 `json:"dailyCalorieTarget"`
	NutritionSummary     NutritionSummary    `json:"nutritionSummary"`
	SeasonalAdvice       SeasonalAdvice      `json:"seasonalAdvice"`
	DailyPlans           []DailyPlan         `json:"dailyPlans"`
	ShoppingList         []ShoppingItem      `json:"shoppingList"`
	Disclaimer           string              `json:"disclaimer"`
	Sources              []Source            `json:"sources"`
	WeeklyDiversityCount int                 `json:"weeklyDiversityCount"`
	MealPools            MealPools           `json:"mealPools"`
}
