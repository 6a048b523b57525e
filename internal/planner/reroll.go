package planner

import (
	"fmt"

	"diet-planner/internal/catalog"
)

// RegenerateDay returns a copy of the plan with one day's breakfast, lunch
// and dinner re-drawn from the retained meal pools. Snacks are kept, every
// other day is untouched and the input plan is never mutated. The shopping
// list and weekly diversity count are re-aggregated to match the new meals.
func (e *Engine) RegenerateDay(plan *WeeklyPlan, dayIndex int) (*WeeklyPlan, error) {
	if dayIndex < 0 || dayIndex >= len(plan.DailyPlans) {
		return nil, fmt.Errorf("day index %d out of range [0,%d)", dayIndex, len(plan.DailyPlans))
	}
	switch {
	case len(plan.MealPools.Breakfast) == 0:
		return nil, &NoEligibleMealsError{Slot: catalog.SlotBreakfast}
	case len(plan.MealPools.Lunch) == 0:
		return nil, &NoEligibleMealsError{Slot: catalog.SlotLunch}
	case len(plan.MealPools.Dinner) == 0:
		return nil, &NoEligibleMealsError{Slot: catalog.SlotDinner}
	}

	out := *plan
	out.DailyPlans = append([]DailyPlan(nil), plan.DailyPlans...)

	prev := plan.DailyPlans[dayIndex]
	day := DailyPlan{
		Day:       prev.Day,
		Breakfast: []catalog.MealTemplate{e.drawOther(plan.MealPools.Breakfast, prev.Breakfast)},
		Lunch:     []catalog.MealTemplate{e.drawOther(plan.MealPools.Lunch, prev.Lunch)},
		Dinner:    []catalog.MealTemplate{e.drawOther(plan.MealPools.Dinner, prev.Dinner)},
		Snacks:    prev.Snacks,
		Tips:      prev.Tips,
	}
	for _, meal := range day.Meals() {
		day.TotalCalories += meal.Calories
	}
	day.DiversityCount = CountDiversity(day.Meals())
	out.DailyPlans[dayIndex] = day

	var allMeals []catalog.MealTemplate
	for i := range out.DailyPlans {
		allMeals = append(allMeals, out.DailyPlans[i].Meals()...)
	}
	out.WeeklyDiversityCount = CountDiversity(allMeals)
	out.ShoppingList = AggregateShoppingList(out.DailyPlans)
	return &out, nil
}

// drawOther picks a random pool entry different from the current meal. With
// a single candidate (or a pool of duplicates) the current meal is kept.
func (e *Engine) drawOther(pool []catalog.MealTemplate, current []catalog.MealTemplate) catalog.MealTemplate {
	if len(current) == 0 {
		return pool[e.rng.Intn(len(pool))].Clone()
	}
	cur := current[0]
	hasOther := false
	for _, m := range pool {
		if m.Name != cur.Name {
			hasOther = true
			break
		}
	}
	if !hasOther {
		return cur
	}
	for {
		next := pool[e.rng.Intn(len(pool))]
		if next.Name != cur.Name {
			return next.Clone()
		}
	}
}
