package model

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

const (
	ActivitySedentary   = "sedentary"
	ActivityLight       = "light"
	ActivityModerate    = "moderate"
	ActivityVeryActive  = "very_active"
	ActivityExtraActive = "extra_active"
)

const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

// Macros are macronutrient amounts in grams. Used both as goals and as
// measured totals.
type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fats    int `json:"fats"`
}

type MealAnalysis struct {
	MealName    string   `json:"mealName"`
	Ingredients []string `json:"ingredients"`
	Calories    int      `json:"calories"`
	Macros      Macros   `json:"macros"`
	HealthScore int      `json:"healthScore"`
	Reasoning   string   `json:"reasoning"`
}

// HistoryItem is one logged, analyzed meal capture. ID is the capture time
// in Unix milliseconds; Image is a JPEG data URL. Immutable after creation.
type HistoryItem struct {
	ID        string       `json:"id"`
	Image     string       `json:"image"`
	Analysis  MealAnalysis `json:"analysis"`
	CreatedAt time.Time    `json:"createdAt"`
}

type UserProfile struct {
	Age           int     `json:"age"`
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activityLevel"`
	CalorieGoal   int     `json:"calorieGoal"`
	MacroGoals    Macros  `json:"macroGoals"`
}

type StreakState struct {
	StreakCount int       `json:"streakCount"`
	LastDate    time.Time `json:"lastDate"`
}

// ChatMessage is session-scoped only and never persisted.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)
