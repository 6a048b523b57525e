package catalog

import (
	"reflect"
	"testing"
)

func TestExpandAllergen(t *testing.T) {
	if got := ExpandAllergen("海鲜"); !reflect.DeepEqual(got, []string{"虾", "鱼", "蟹", "贝", "鱿鱼"}) {
		t.Errorf("Unexpected expansion for 海鲜: %v", got)
	}
	if got := ExpandAllergen("坚果"); len(got) != 5 {
		t.Errorf("Expected 5 keywords for 坚果, got %v", got)
	}
	if got := ExpandAllergen("芒果"); !reflect.DeepEqual(got, []string{"芒果"}) {
		t.Errorf("Unknown label must match literally, got %v", got)
	}
}

func TestSplitDislikes(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"香菜,肥肉", []string{"香菜", "肥肉"}},
		{"香菜，肥肉", []string{"香菜", "肥肉"}},
		{"香菜 肥肉\t内脏", []string{"香菜", "肥肉", "内脏"}},
		{"香菜，，  肥肉", []string{"香菜", "肥肉"}},
		{"", nil},
		{" ，, ", nil},
	}
	for _, tc := range cases {
		if got := SplitDislikes(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitDislikes(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFilterMeals(t *testing.T) {
	meals := []MealTemplate{
		{Name: "清蒸鲈鱼", Ingredients: []string{"鲈鱼", "姜"}},
		{Name: "宫保鸡丁", Ingredients: []string{"鸡胸肉", "花生"}},
		{Name: "香菜牛肉", Ingredients: []string{"牛肉", "香菜"}},
		{Name: "清炒时蔬", Ingredients: []string{"青菜"}},
	}

	t.Run("AllergenSynonyms", func(t *testing.T) {
		got := FilterMeals(meals, []string{"海鲜"}, "")
		if len(got) != 3 {
			t.Fatalf("Expected 3 meals after 海鲜 filter, got %d", len(got))
		}
		for _, m := range got {
			if m.Name == "清蒸鲈鱼" {
				t.Error("清蒸鲈鱼 must be excluded by 海鲜")
			}
		}
	})

	t.Run("NutSynonymHitsPeanut", func(t *testing.T) {
		got := FilterMeals(meals, []string{"坚果"}, "")
		for _, m := range got {
			if m.Name == "宫保鸡丁" {
				t.Error("宫保鸡丁 must be excluded by 坚果 (花生)")
			}
		}
	})

	t.Run("Dislikes", func(t *testing.T) {
		got := FilterMeals(meals, nil, "香菜, 青菜")
		if len(got) != 2 {
			t.Fatalf("Expected 2 meals after dislikes, got %d", len(got))
		}
	})

	t.Run("OrderPreserved", func(t *testing.T) {
		got := FilterMeals(meals, []string{"海鲜"}, "")
		want := []string{"宫保鸡丁", "香菜牛肉", "清炒时蔬"}
		for i, m := range got {
			if m.Name != want[i] {
				t.Fatalf("Order not preserved: position %d is %s, want %s", i, m.Name, want[i])
			}
		}
	})

	t.Run("InputUntouched", func(t *testing.T) {
		_ = FilterMeals(meals, []string{"海鲜", "坚果"}, "香菜")
		if len(meals) != 4 {
			t.Error("FilterMeals must not modify the input slice")
		}
	})

	t.Run("WholeCatalogSeafoodExclusion", func(t *testing.T) {
		cat, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		keywords := ExpandAllergen("海鲜")
		for _, slot := range []Slot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack} {
			for _, m := range FilterMeals(cat.BySlot(slot), []string{"海鲜"}, "") {
				for _, kw := range keywords {
					if mealMatchesKeyword(&m, kw) {
						t.Errorf("%s/%s survived the 海鲜 filter but matches %q", slot, m.Name, kw)
					}
				}
			}
		}
	})
}
