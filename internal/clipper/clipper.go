package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"diet-planner/internal/catalog"
	"diet-planner/internal/llm"
	"diet-planner/internal/storage"

	"github.com/PuerkitoBio/goquery"
)

// Clipper fetches a recipe page and turns it into a meal template for the
// catalog overlay.
type Clipper struct {
	store      *storage.TemplateStore
	textGen    llm.TextGenerator
	httpClient *http.Client
}

// extractedMeal is the shape the model must return. The slot is part of the
// response so one prompt covers all meal types.
type extractedMeal struct {
	Slot catalog.Slot         `json:"slot"`
	Meal catalog.MealTemplate `json:"meal"`
}

// NewClipper creates a new Clipper instance.
func NewClipper(store *storage.TemplateStore, textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		store:      store,
		textGen:    textGen,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL, extracts a meal template using the model, and
// saves it to the overlay store.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*catalog.MealTemplate, catalog.Slot, error) {
	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`你是菜谱结构化专家。从下面的网页内容中提取一道菜，输出严格的 JSON：
{
  "slot": "breakfast|lunch|dinner|snack",
  "meal": {
    "name": "菜名",
    "description": "一句话描述",
    "calories": 400,
    "tags": ["家常"],
    "ingredients": ["食材1", "食材2"],
    "recipe": ["步骤1", "步骤2"],
    "ingredientDetails": [{"name": "食材1", "amount": 100, "unit": "g", "category": "蔬菜"}],
    "prepTime": 20,
    "complexity": "easy|medium|hard"
  }
}
category 只能取 蔬菜/肉蛋/水果/主食/其他。calories 为整份估算值。

网页内容：
%s
`, content)

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, "", fmt.Errorf("ai extraction failed: %w", err)
	}

	var extracted extractedMeal
	if err := json.Unmarshal([]byte(resp.Content), &extracted); err != nil {
		return nil, "", fmt.Errorf("failed to parse AI response: %w. Response: %s", err, resp.Content)
	}
	if err := validateExtracted(&extracted); err != nil {
		return nil, "", fmt.Errorf("extracted meal rejected: %w", err)
	}

	if err := c.store.Save(extracted.Slot, extracted.Meal); err != nil {
		return nil, "", fmt.Errorf("failed to save template: %w", err)
	}

	return &extracted.Meal, extracted.Slot, nil
}

func validateExtracted(e *extractedMeal) error {
	switch e.Slot {
	case catalog.SlotBreakfast, catalog.SlotLunch, catalog.SlotDinner, catalog.SlotSnack:
	default:
		return fmt.Errorf("invalid slot %q", e.Slot)
	}
	switch {
	case e.Meal.Name == "":
		return fmt.Errorf("missing meal name")
	case e.Meal.Calories <= 0:
		return fmt.Errorf("invalid calories %d", e.Meal.Calories)
	case len(e.Meal.Ingredients) == 0:
		return fmt.Errorf("no ingredients")
	}
	switch e.Meal.Complexity {
	case catalog.ComplexityEasy, catalog.ComplexityMedium, catalog.ComplexityHard:
	default:
		return fmt.Errorf("invalid complexity %q", e.Meal.Complexity)
	}
	return nil
}

func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}
