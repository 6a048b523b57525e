package storage

import (
	"os"
	"path/filepath"
	"testing"

	"diet-planner/internal/catalog"
)

func TestTemplateStore(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewTemplateStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create TemplateStore: %v", err)
	}

	tmpl := catalog.MealTemplate{
		Name:        "番茄鸡蛋面",
		Description: "家常番茄鸡蛋面",
		Calories:    450,
		Ingredients: []string{"番茄", "鸡蛋", "面条"},
		Recipe:      []string{"炒番茄鸡蛋", "下面条"},
		IngredientDetails: []catalog.IngredientDetail{
			{Name: "番茄", Amount: 150, Unit: "g", Category: "蔬菜"},
			{Name: "鸡蛋", Amount: 1, Unit: "个", Category: "肉蛋"},
		},
		PrepTime:   15,
		Complexity: catalog.ComplexityEasy,
	}

	t.Run("CheckExists-False", func(t *testing.T) {
		if store.Exists(catalog.SlotLunch, tmpl.Name) {
			t.Errorf("Expected template '%s' to not exist, but it does", tmpl.Name)
		}
	})

	t.Run("Save", func(t *testing.T) {
		if err := store.Save(catalog.SlotLunch, tmpl); err != nil {
			t.Fatalf("Failed to save template: %v", err)
		}

		filePath := filepath.Join(tempDir, "lunch_番茄鸡蛋面.json")
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			t.Errorf("Expected file '%s' to be created, but it wasn't", filePath)
		}
	})

	t.Run("CheckExists-True", func(t *testing.T) {
		if !store.Exists(catalog.SlotLunch, tmpl.Name) {
			t.Errorf("Expected template '%s' to exist, but it doesn't", tmpl.Name)
		}
	})

	t.Run("Load", func(t *testing.T) {
		loaded, err := store.Load(catalog.SlotLunch, tmpl.Name)
		if err != nil {
			t.Fatalf("Failed to load template: %v", err)
		}

		if loaded.Name != tmpl.Name {
			t.Errorf("Expected name '%s', got '%s'", tmpl.Name, loaded.Name)
		}
		if loaded.Calories != 450 {
			t.Errorf("Expected 450 calories, got %d", loaded.Calories)
		}
		if len(loaded.IngredientDetails) != 2 {
			t.Errorf("Expected 2 ingredient details, got %d", len(loaded.IngredientDetails))
		}
	})

	t.Run("Load-NotFound", func(t *testing.T) {
		_, err := store.Load(catalog.SlotDinner, "不存在的菜")
		if err == nil {
			t.Fatal("Expected an error for loading a missing template, got nil")
		}
	})

	t.Run("LoadAll", func(t *testing.T) {
		second := tmpl
		second.Name = "燕麦粥"
		if err := store.Save(catalog.SlotBreakfast, second); err != nil {
			t.Fatalf("Failed to save second template: %v", err)
		}

		cat, err := store.LoadAll()
		if err != nil {
			t.Fatalf("Failed to load all templates: %v", err)
		}
		if len(cat.Lunch) != 1 {
			t.Errorf("Expected 1 lunch template, got %d", len(cat.Lunch))
		}
		if len(cat.Breakfast) != 1 {
			t.Errorf("Expected 1 breakfast template, got %d", len(cat.Breakfast))
		}
		if len(cat.Dinner) != 0 {
			t.Errorf("Expected 0 dinner templates, got %d", len(cat.Dinner))
		}
	})

	t.Run("LoadAll-EmptyDir", func(t *testing.T) {
		empty, err := NewTemplateStore(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}
		cat, err := empty.LoadAll()
		if err != nil {
			t.Fatalf("Expected no error for empty overlay, got %v", err)
		}
		if len(cat.Breakfast)+len(cat.Lunch)+len(cat.Dinner)+len(cat.Snacks) != 0 {
			t.Error("Expected empty catalog from empty overlay")
		}
	})
}
