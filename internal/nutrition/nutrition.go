// Package nutrition holds the pure calorie and BMI calculations. All
// functions are total: range validation happens upstream in the profile
// package.
package nutrition

import (
	"math"

	"diet-planner/internal/profile"
)

// BMIStatus classifies a BMI value. Thresholds are the Chinese adult
// cutoffs (24/28), not the WHO global ones.
type BMIStatus string

const (
	StatusUnderweight BMIStatus = "underweight"
	StatusNormal      BMIStatus = "normal"
	StatusOverweight  BMIStatus = "overweight"
	StatusObese       BMIStatus = "obese"
)

var activityMultipliers = map[profile.ActivityLevel]float64{
	profile.ActivitySedentary:  1.2,
	profile.ActivityLight:      1.375,
	profile.ActivityModerate:   1.55,
	profile.ActivityActive:     1.725,
	profile.ActivityVeryActive: 1.9,
}

// BMR estimates the basal metabolic rate in kcal/day (Mifflin-St Jeor).
func BMR(p profile.UserProfile) float64 {
	bmr := 10*p.Weight + 6.25*p.Height - 5*float64(p.Age)
	if p.Gender == profile.GenderMale {
		return bmr + 5
	}
	return bmr - 161
}

// TDEE scales BMR by the activity multiplier, rounded to the nearest kcal.
func TDEE(bmr float64, level profile.ActivityLevel) int {
	return int(math.Round(bmr * activityMultipliers[level]))
}

// TargetCalories adjusts TDEE for the user's goal.
func TargetCalories(tdee int, goal profile.Goal) int {
	switch goal {
	case profile.GoalLose:
		return tdee - 500
	case profile.GoalGain:
		return tdee + 500
	default:
		return tdee
	}
}

// BMI computes the body mass index rounded to one decimal and classifies it.
// Classification uses the rounded value, so 23.95 reports as 24.0/overweight.
func BMI(heightCm, weightKg float64) (float64, BMIStatus) {
	heightM := heightCm / 100
	bmi := math.Round(weightKg/(heightM*heightM)*10) / 10

	switch {
	case bmi < 18.5:
		return bmi, StatusUnderweight
	case bmi < 24:
		return bmi, StatusNormal
	case bmi < 28:
		return bmi, StatusOverweight
	default:
		return bmi, StatusObese
	}
}

// Targets bundles every derived nutritional number for a profile.
type Targets struct {
	BMR            float64   `json:"bmr"`
	TDEE           int       `json:"tdee"`
	TargetCalories int       `json:"targetCalories"`
	BMI            float64   `json:"bmi"`
	BMIStatus      BMIStatus `json:"bmiStatus"`
}

// ComputeTargets runs the full profile → target-calories pipeline.
func ComputeTargets(p profile.UserProfile) Targets {
	bmr := BMR(p)
	tdee := TDEE(bmr, p.ActivityLevel)
	bmi, status := BMI(p.Height, p.Weight)
	return Targets{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: TargetCalories(tdee, p.Goal),
		BMI:            bmi,
		BMIStatus:      status,
	}
}
