package catalog

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	cat, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cat.Breakfast) == 0 || len(cat.Lunch) == 0 || len(cat.Dinner) == 0 || len(cat.Snacks) == 0 {
		t.Fatalf("Embedded catalog has an empty slot: %d/%d/%d/%d",
			len(cat.Breakfast), len(cat.Lunch), len(cat.Dinner), len(cat.Snacks))
	}

	t.Run("EntriesWellFormed", func(t *testing.T) {
		for _, slot := range []Slot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack} {
			for _, m := range cat.BySlot(slot) {
				if m.Name == "" {
					t.Errorf("%s entry with empty name", slot)
				}
				if m.Calories <= 0 {
					t.Errorf("%s/%s has calories %d", slot, m.Name, m.Calories)
				}
				if len(m.Ingredients) == 0 {
					t.Errorf("%s/%s has no ingredients", slot, m.Name)
				}
				switch m.Complexity {
				case ComplexityEasy, ComplexityMedium, ComplexityHard:
				default:
					t.Errorf("%s/%s has complexity %q", slot, m.Name, m.Complexity)
				}
			}
		}
	})

	t.Run("SeasonalMarkersPresent", func(t *testing.T) {
		found := false
		for _, m := range cat.Lunch {
			for _, ing := range m.IngredientDetails {
				if ing.Seasonal {
					found = true
				}
			}
		}
		if !found {
			t.Error("Expected at least one seasonal ingredient marker among lunches")
		}
	})

	t.Run("PlaceholdersMatchMarkers", func(t *testing.T) {
		// an ingredient-level seasonal marker only makes sense when the
		// description or a recipe step mentions the vegetable slot too
		for _, slot := range []Slot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack} {
			for _, m := range cat.BySlot(slot) {
				hasMarker := false
				for _, ing := range m.IngredientDetails {
					if ing.Seasonal {
						hasMarker = true
					}
				}
				if !hasMarker {
					continue
				}
				inText := strings.Contains(m.Description, VegetablePlaceholder)
				for _, step := range m.Recipe {
					if strings.Contains(step, VegetablePlaceholder) {
						inText = true
					}
				}
				if !inText {
					t.Errorf("%s/%s has a seasonal marker but no %s placeholder", slot, m.Name, VegetablePlaceholder)
				}
			}
		}
	})
}

func TestMealTemplateClone(t *testing.T) {
	orig := MealTemplate{
		Name:        "测试餐",
		Tags:        []string{"家常"},
		Ingredients: []string{"青菜"},
		Recipe:      []string{"清炒"},
		IngredientDetails: []IngredientDetail{
			{Name: "青菜", Amount: 100, Unit: "g", Category: "蔬菜"},
		},
	}

	clone := orig.Clone()
	clone.Tags[0] = "改"
	clone.Ingredients[0] = "改"
	clone.Recipe[0] = "改"
	clone.IngredientDetails[0].Name = "改"

	if orig.Tags[0] != "家常" || orig.Ingredients[0] != "青菜" ||
		orig.Recipe[0] != "清炒" || orig.IngredientDetails[0].Name != "青菜" {
		t.Error("Clone must not share backing arrays with the original")
	}
}

func TestCatalogAppendAndBySlot(t *testing.T) {
	cat := &Catalog{}
	cat.Append(SlotDinner, MealTemplate{Name: "新菜"})

	if len(cat.BySlot(SlotDinner)) != 1 {
		t.Fatalf("Expected 1 dinner, got %d", len(cat.BySlot(SlotDinner)))
	}
	if got := cat.BySlot(Slot("brunch")); got != nil {
		t.Errorf("Unknown slot must return nil, got %v", got)
	}
}
