package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed meals.json
var mealsJSON []byte

// Placeholder tokens used in descriptions and recipe steps. The localizer
// replaces them with a concrete seasonal vegetable or regional staple.
const (
	VegetablePlaceholder = "{vegetable}"
	StaplePlaceholder    = "{staple}"
)

// Slot identifies one of the four meal slots of a day.
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
	SlotSnack     Slot = "snack"
)

// Complexity is the preparation difficulty tier of a meal.
type Complexity string

const (
	ComplexityEasy   Complexity = "easy"
	ComplexityMedium Complexity = "medium"
	ComplexityHard   Complexity = "hard"
)

// IngredientDetail is one line of a meal's quantified ingredient list.
// Seasonal marks entries whose name is a generic placeholder that the
// localizer swaps for a concrete seasonal vegetable.
type IngredientDetail struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
	Seasonal bool    `json:"seasonal,omitempty"`
}

// MealTemplate is a catalog entry. Templates are authored once and never
// mutated; all per-plan variation happens on copies (see Clone).
type MealTemplate struct {
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	Calories          int                `json:"calories"`
	Tags              []string           `json:"tags"`
	Ingredients       []string           `json:"ingredients"`
	Recipe            []string           `json:"recipe"`
	IngredientDetails []IngredientDetail `json:"ingredientDetails"`
	PrepTime          int                `json:"prepTime"`
	Complexity        Complexity         `json:"complexity"`
}

// HasTag reports whether the template carries the given tag.
func (m *MealTemplate) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the template.
func (m *MealTemplate) Clone() MealTemplate {
	out := *m
	out.Tags = append([]string(nil), m.Tags...)
	out.Ingredients = append([]string(nil), m.Ingredients...)
	out.Recipe = append([]string(nil), m.Recipe...)
	out.IngredientDetails = append([]IngredientDetail(nil), m.IngredientDetails...)
	return out
}

// Catalog is the curated meal database, one candidate list per slot.
// A loaded catalog is read-only and safe for concurrent use.
type Catalog struct {
	Breakfast []MealTemplate `json:"breakfast"`
	Lunch     []MealTemplate `json:"lunch"`
	Dinner    []MealTemplate `json:"dinner"`
	Snacks    []MealTemplate `json:"snacks"`
}

// BySlot returns the candidate list for a slot.
func (c *Catalog) BySlot(slot Slot) []MealTemplate {
	switch slot {
	case SlotBreakfast:
		return c.Breakfast
	case SlotLunch:
		return c.Lunch
	case SlotDinner:
		return c.Dinner
	case SlotSnack:
		return c.Snacks
	default:
		return nil
	}
}

// Append adds a template to the given slot's candidate list.
func (c *Catalog) Append(slot Slot, tmpl MealTemplate) {
	switch slot {
	case SlotBreakfast:
		c.Breakfast = append(c.Breakfast, tmpl)
	case SlotLunch:
		c.Lunch = append(c.Lunch, tmpl)
	case SlotDinner:
		c.Dinner = append(c.Dinner, tmpl)
	case SlotSnack:
		c.Snacks = append(c.Snacks, tmpl)
	}
}

// Load parses the embedded meal database into a fresh Catalog.
func Load() (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(mealsJSON, &c); err != nil {
		return nil, fmt.Errorf("failed to parse embedded meal database: %w", err)
	}
	return &c, nil
}

// Parse decodes a catalog from raw JSON, used for test fixtures and the
// clipped-template overlay.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return &c, nil
}
