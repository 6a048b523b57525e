package planner

import (
	"testing"

	"diet-planner/internal/catalog"
)

func TestCountDiversity(t *testing.T) {
	meals := []catalog.MealTemplate{
		{Ingredients: []string{"鸡蛋", "番茄"}},
		{Ingredients: []string{"番茄", "面条"}},
		{Ingredients: []string{"鸡蛋"}},
	}

	if got := CountDiversity(meals); got != 3 {
		t.Errorf("Expected union of 3 distinct ingredients, got %d", got)
	}

	if got := CountDiversity(nil); got != 0 {
		t.Errorf("Expected 0 for no meals, got %d", got)
	}

	// repeating the same meal adds nothing
	repeated := []catalog.MealTemplate{meals[0], meals[0], meals[0]}
	if got := CountDiversity(repeated); got != 2 {
		t.Errorf("Expected 2 for repeated meal, got %d", got)
	}
}
