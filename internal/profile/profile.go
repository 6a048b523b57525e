// Package profile defines the user's biometric and preference profile, its
// validation rules, and the share-link encoding used to pass a profile
// between devices.
package profile

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Gender is the biological sex used by the BMR formula.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel scales BMR into total daily energy expenditure.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Goal shifts the calorie target relative to TDEE.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// CookingTime expresses how much time the user can spend cooking per day.
type CookingTime string

const (
	CookingAbundant CookingTime = "abundant"
	CookingLimited  CookingTime = "limited"
)

// UserProfile is the immutable input to plan generation, created once per
// submission and validated before it reaches the engine.
type UserProfile struct {
	Age           int           `json:"age" validate:"gte=10,lte=100"`
	Gender        Gender        `json:"gender" validate:"oneof=male female"`
	Height        float64       `json:"height" validate:"gte=100,lte=250"`
	Weight        float64       `json:"weight" validate:"gte=30,lte=200"`
	ActivityLevel ActivityLevel `json:"activityLevel" validate:"oneof=sedentary light moderate active very_active"`
	Goal          Goal          `json:"goal" validate:"oneof=lose maintain gain"`
	City          string        `json:"city"`
	Allergies     []string      `json:"allergies"`
	Dislikes      string        `json:"dislikes"`
	CookingTime   CookingTime   `json:"cookingTime" validate:"oneof=abundant limited"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks all declared field ranges and enum values. The engine
// assumes a validated profile; callers must reject invalid submissions here.
func (p *UserProfile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}
