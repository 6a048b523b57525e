package catalog

import "strings"

// allergenSynonyms expands a declared allergy label into the keywords it
// covers. Labels without an entry are matched literally. Matching is
// deliberately over-broad: a substring hit anywhere excludes the meal.
var allergenSynonyms = map[string][]string{
	"海鲜": {"虾", "鱼", "蟹", "贝", "鱿鱼"},
	"坚果": {"核桃", "杏仁", "腰果", "花生", "芝麻"},
}

// ExpandAllergen returns the keyword set an allergy label stands for.
func ExpandAllergen(label string) []string {
	if keywords, ok := allergenSynonyms[label]; ok {
		return keywords
	}
	return []string{label}
}

// SplitDislikes tokenizes the free-text dislikes field on commas (ASCII and
// full-width) and whitespace.
func SplitDislikes(dislikes string) []string {
	fields := strings.FieldsFunc(dislikes, func(r rune) bool {
		return r == ',' || r == '，' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '　'
	})
	var tokens []string
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func mealMatchesKeyword(m *MealTemplate, keyword string) bool {
	for _, ing := range m.Ingredients {
		if strings.Contains(ing, keyword) {
			return true
		}
	}
	return strings.Contains(m.Name, keyword) || strings.Contains(m.Description, keyword)
}

// FilterMeals removes templates that conflict with the declared allergies or
// dislikes. The input slice is not modified and relative order is preserved.
func FilterMeals(meals []MealTemplate, allergies []string, dislikes string) []MealTemplate {
	dislikeTokens := SplitDislikes(dislikes)

	out := make([]MealTemplate, 0, len(meals))
	for i := range meals {
		m := &meals[i]
		if mealHasAllergen(m, allergies) {
			continue
		}
		if mealHasDislike(m, dislikeTokens) {
			continue
		}
		out = append(out, *m)
	}
	return out
}

func mealHasAllergen(m *MealTemplate, allergies []string) bool {
	for _, label := range allergies {
		for _, keyword := range ExpandAllergen(label) {
			if mealMatchesKeyword(m, keyword) {
				return true
			}
		}
	}
	return false
}

func mealHasDislike(m *MealTemplate, tokens []string) bool {
	for _, token := range tokens {
		if mealMatchesKeyword(m, token) {
			return true
		}
	}
	return false
}
