package planner

import (
	"fmt"

	"diet-planner/internal/catalog"
)

// NoEligibleMealsError reports that allergy/dislike filtering eliminated
// every candidate for a required slot. It is always propagated: the engine
// never substitutes an unsafe meal or silently skips a day.
type NoEligibleMealsError struct {
	Slot catalog.Slot
}

func (e *NoEligibleMealsError) Error() string {
	return fmt.Sprintf("no eligible meals for slot %s: allergy and dislike filters excluded every candidate", e.Slot)
}

// ExternalGenerationError wraps a failure of the AI-backed generation path
// (transport, model or response-shape errors). Callers fall back to the
// deterministic engine when they see one.
type ExternalGenerationError struct {
	Err error
}

func (e *ExternalGenerationError) Error() string {
	return fmt.Sprintf("external plan generation failed: %v", e.Err)
}

func (e *ExternalGenerationError) Unwrap() error {
	return e.Err
}
