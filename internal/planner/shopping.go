package planner

import "sort"

// ingredientAliases folds spelling variants of the same purchasable item
// into one shopping-list line.
var ingredientAliases = map[string]string{
	"牛奶": "纯牛奶",
}

// categoryOrder is the fixed display priority of shopping-list categories.
var categoryOrder = []string{"蔬菜", "肉蛋", "水果", "主食", "其他"}

func categoryRank(category string) int {
	for i, c := range categoryOrder {
		if c == category {
			return i
		}
	}
	return len(categoryOrder)
}

// AggregateShoppingList flattens every meal of the week into a shopping
// list: amounts are summed per (normalized name, unit), lines are grouped by
// category priority and keep insertion order within a category.
func AggregateShoppingList(days []DailyPlan) []ShoppingItem {
	type key struct {
		name string
		unit string
	}
	index := make(map[key]int)
	var items []ShoppingItem

	for di := range days {
		for _, meal := range days[di].Meals() {
			for _, ing := range meal.IngredientDetails {
				name := ing.Name
				if alias, ok := ingredientAliases[name]; ok {
					name = alias
				}
				category := ing.Category
				if category == "" {
					category = "其他"
				}

				k := key{name: name, unit: ing.Unit}
				if i, ok := index[k]; ok {
					items[i].Amount += ing.Amount
					continue
				}
				index[k] = len(items)
				items = append(items, ShoppingItem{
					Name:     name,
					Amount:   ing.Amount,
					Unit:     ing.Unit,
					Category: category,
				})
			}
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return categoryRank(items[i].Category) < categoryRank(items[j].Category)
	})
	return items
}
