package service

import (
	"fmt"
	"math"

	"github.com/ccorchooo/CalAIFree/internal/model"
)

var activityMultipliers = map[string]float64{
	model.ActivitySedentary:   1.2,
	model.ActivityLight:       1.375,
	model.ActivityModerate:    1.55,
	model.ActivityVeryActive:  1.725,
	model.ActivityExtraActive: 1.9,
}

var goalAdjustments = map[string]float64{
	model.GoalLose:     -500,
	model.GoalMaintain: 0,
	model.GoalGain:     300,
}

const defaultCalorieGoal = 2000

type GoalInput struct {
	Age           int
	WeightKg      float64
	HeightCm      float64
	Gender        string
	ActivityLevel string
	Goal          string
}

func (in GoalInput) validate() error {
	if in.Gender != model.GenderMale && in.Gender != model.GenderFemale {
		return fmt.Errorf("invalid gender %q (expected male or female)", in.Gender)
	}
	if _, ok := activityMultipliers[in.ActivityLevel]; !ok {
		return fmt.Errorf("invalid activity level %q (expected sedentary, light, moderate, very_active, or extra_active)", in.ActivityLevel)
	}
	if _, ok := goalAdjustments[in.Goal]; !ok {
		return fmt.Errorf("invalid goal %q (expected lose, maintain, or gain)", in.Goal)
	}
	if in.Age < 0 || in.WeightKg < 0 || in.HeightCm < 0 {
		return fmt.Errorf("age, weight, and height must be >= 0")
	}
	return nil
}

// BMR is the Mifflin-St Jeor estimate. Zero when any of age, weight, or
// height is missing.
func BMR(age int, weightKg, heightCm float64, gender string) float64 {
	if age == 0 || weightKg == 0 || heightCm == 0 {
		return 0
	}
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == model.GenderMale {
		return bmr + 5
	}
	return bmr - 161
}

func TDEE(age int, weightKg, heightCm float64, gender, activityLevel string) float64 {
	bmr := BMR(age, weightKg, heightCm, gender)
	if bmr == 0 {
		return 0
	}
	return bmr * activityMultipliers[activityLevel]
}

// MacroSplit divides a calorie goal 40% carbs / 30% protein / 30% fat at
// 4, 4, and 9 kcal per gram, rounded to the nearest gram.
func MacroSplit(calorieGoal int) model.Macros {
	cg := float64(calorieGoal)
	return model.Macros{
		Carbs:   int(math.Round(cg * 0.40 / 4)),
		Protein: int(math.Round(cg * 0.30 / 4)),
		Fats:    int(math.Round(cg * 0.30 / 9)),
	}
}

// ComputeGoals derives the daily calorie goal (goal-adjusted TDEE rounded to
// the nearest 10 kcal, defaulting to 2000 when TDEE is zero) and its macro
// split.
func ComputeGoals(in GoalInput) (int, model.Macros, error) {
	if err := in.validate(); err != nil {
		return 0, model.Macros{}, err
	}
	tdee := TDEE(in.Age, in.WeightKg, in.HeightCm, in.Gender, in.ActivityLevel)
	calorieGoal := defaultCalorieGoal
	if tdee != 0 {
		adjusted := tdee + goalAdjustments[in.Goal]
		calorieGoal = int(math.Round(adjusted/10)) * 10
	}
	return calorieGoal, MacroSplit(calorieGoal), nil
}

// BuildProfile computes goals and assembles the full profile record.
// Settings saves replace the profile wholesale with the same construction.
func BuildProfile(in GoalInput) (model.UserProfile, error) {
	calorieGoal, macros, err := ComputeGoals(in)
	if err != nil {
		return model.UserProfile{}, err
	}
	return model.UserProfile{
		Age:           in.Age,
		Weight:        in.WeightKg,
		Height:        in.HeightCm,
		Gender:        in.Gender,
		ActivityLevel: in.ActivityLevel,
		CalorieGoal:   calorieGoal,
		MacroGoals:    macros,
	}, nil
}

// DeriveGoal reverse-maps a stored profile to the goal selection that best
// explains its calorie goal, for settings pre-fill. Lossy: any goal within
// 200 kcal of TDEE reads as maintain.
func DeriveGoal(p model.UserProfile) string {
	tdee := TDEE(p.Age, p.Weight, p.Height, p.Gender, p.ActivityLevel)
	if tdee == 0 {
		return model.GoalMaintain
	}
	diff := float64(p.CalorieGoal) - tdee
	if diff < -200 {
		return model.GoalLose
	}
	if diff > 200 {
		return model.GoalGain
	}
	return model.GoalMaintain
}
