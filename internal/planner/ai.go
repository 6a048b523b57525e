package planner

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"diet-planner/internal/llm"
	"diet-planner/internal/profile"
)

//go:embed ai_prompt.md
var aiPrompt string

// GenerationMeta holds operational metadata for an AI generation.
type GenerationMeta struct {
	Usage   llm.TokenUsage
	Latency time.Duration
}

// AIGenerator produces a weekly plan through a language model instead of the
// deterministic pipeline. The response must satisfy the same structural
// contract as engine output; anything malformed is rejected so callers can
// fall back.
type AIGenerator struct {
	textGen llm.TextGenerator
}

func NewAIGenerator(textGen llm.TextGenerator) *AIGenerator {
	return &AIGenerator{textGen: textGen}
}

// GenerateWeeklyPlan prompts the model with the user profile and parses the
// returned plan. All failures are reported as *ExternalGenerationError.
func (g *AIGenerator) GenerateWeeklyPlan(ctx context.Context, p profile.UserProfile) (*WeeklyPlan, GenerationMeta, error) {
	start := time.Now()
	if err := p.Validate(); err != nil {
		return nil, GenerationMeta{}, fmt.Errorf("validating profile: %w", err)
	}

	prompt, err := buildPlanPrompt(p)
	if err != nil {
		return nil, GenerationMeta{}, &ExternalGenerationError{Err: err}
	}

	resp, err := g.textGen.GenerateContent(ctx, prompt)
	meta := GenerationMeta{Usage: resp.Usage, Latency: time.Since(start)}
	if err != nil {
		return nil, meta, &ExternalGenerationError{Err: err}
	}

	plan := &WeeklyPlan{}
	if err := json.Unmarshal([]byte(resp.Content), plan); err != nil {
		return nil, meta, &ExternalGenerationError{Err: fmt.Errorf("failed to parse plan: %w", err)}
	}
	if err := validatePlanShape(plan); err != nil {
		return nil, meta, &ExternalGenerationError{Err: err}
	}

	plan.UserProfile = p
	meta.Latency = time.Since(start)
	return plan, meta, nil
}

// validatePlanShape enforces the structural contract on a model response:
// seven days, each with at least one breakfast, lunch and dinner.
func validatePlanShape(plan *WeeklyPlan) error {
	if len(plan.DailyPlans) != planDays {
		return fmt.Errorf("expected %d daily plans, got %d", planDays, len(plan.DailyPlans))
	}
	for i, day := range plan.DailyPlans {
		switch {
		case len(day.Breakfast) == 0:
			return fmt.Errorf("day %d has no breakfast", i+1)
		case len(day.Lunch) == 0:
			return fmt.Errorf("day %d has no lunch", i+1)
		case len(day.Dinner) == 0:
			return fmt.Errorf("day %d has no dinner", i+1)
		}
	}
	return nil
}

func buildPlanPrompt(p profile.UserProfile) (string, error) {
	tmpl, err := template.New("plan").Parse(aiPrompt)
	if err != nil {
		return "", err
	}

	data := struct {
		profile.UserProfile
		AllergyList string
	}{
		UserProfile: p,
		AllergyList: strings.Join(p.Allergies, "、"),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
